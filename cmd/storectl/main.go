// Command storectl is the operator tool of the storefront backend: schema
// migrations, gateway signatures for support cases and admin password hashes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/adapter/gateway/razorpay"
	"github.com/MikeRez0/inarashop/internal/adapter/storage"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/utils"
	"github.com/spf13/cobra"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(stderr, "Error:", ee.msg)
			return ee.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Operator commands for the storefront backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newMigrateCmd(), newSignCmd(), newHashPasswordCmd(), newAmountCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	conf, err := config.LoadEnv()
	if err != nil {
		return nil, codeError(3, "config: %s", err)
	}
	return conf, nil
}

func newMigrateCmd() *cobra.Command {
	var dsn string

	resolveDSN := func() (string, error) {
		if dsn != "" {
			return dsn, nil
		}
		conf, err := loadConfig()
		if err != nil {
			return "", err
		}
		if conf.Database.DSN == "" {
			return "", codeError(3, "database dsn is required: use --dsn or DATABASE_URI")
		}
		return conf.Database.DSN, nil
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database connection string (default DATABASE_URI)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDSN()
			if err != nil {
				return err
			}
			if err := storage.Migrate(d); err != nil {
				return codeError(2, "%s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the last migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDSN()
			if err != nil {
				return err
			}
			if err := storage.Rollback(d, steps); err != nil {
				return codeError(2, "%s", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reverted %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to revert")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDSN()
			if err != nil {
				return err
			}
			v, dirty, err := storage.MigrationVersion(d)
			if err != nil {
				return codeError(2, "%s", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d dirty=%t\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func newSignCmd() *cobra.Command {
	var secret string

	verifier := func() (*razorpay.Verifier, error) {
		if secret != "" {
			return razorpay.NewVerifier(secret, secret), nil
		}
		conf, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return razorpay.NewVerifier(conf.Gateway.KeySecret, conf.Gateway.WebhookSecret), nil
	}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute gateway signatures",
	}
	cmd.PersistentFlags().StringVar(&secret, "secret", "",
		"Signing secret (default RAZORPAY_KEY_SECRET or RAZORPAY_WEBHOOK_SECRET)")

	payment := &cobra.Command{
		Use:   "payment <remote-order-id> <remote-payment-id>",
		Short: "Signature the checkout widget returns for a payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := verifier()
			if err != nil {
				return err
			}
			signature, err := v.SignPayment(args[0], args[1])
			if err != nil {
				return codeError(3, "sign payment: %s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signature)
			return nil
		},
	}

	webhook := &cobra.Command{
		Use:   "webhook <body-file>",
		Short: "X-Razorpay-Signature value for a callback body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := verifier()
			if err != nil {
				return err
			}
			body, err := os.ReadFile(args[0])
			if err != nil {
				return codeError(3, "read body: %s", err)
			}
			signature, err := v.SignWebhook(body)
			if err != nil {
				return codeError(3, "sign webhook: %s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signature)
			return nil
		},
	}

	cmd.AddCommand(payment, webhook)
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return codeError(3, "password must not be empty")
			}
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return codeError(1, "hash password: %s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newAmountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "amount <value>",
		Short: "Show the minor units a checkout amount is charged as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minor, err := domain.NormalizeAmount(args[0])
			if err != nil {
				return codeError(3, "%s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), minor)
			return nil
		},
	}
}
