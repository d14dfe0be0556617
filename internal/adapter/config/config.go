package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Redis    *Redis
	Admin    *Admin
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

const GatewayModeLive = "live"
const GatewayModeSandbox = "sandbox"

type App struct {
	LogLevel     string        `env:"LOG_LEVEL"`
	Mode         string        `env:"APP_MODE"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"`
}

// Database uses the in-memory store when DSN is empty.
type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Gateway struct {
	Mode          string        `env:"GATEWAY_MODE"`
	Address       string        `env:"GATEWAY_ADDRESS"`
	KeyID         string        `env:"RAZORPAY_KEY_ID"`
	KeySecret     string        `env:"RAZORPAY_KEY_SECRET"`
	WebhookSecret string        `env:"RAZORPAY_WEBHOOK_SECRET"`
	Currency      string        `env:"GATEWAY_CURRENCY"`
	Timeout       time.Duration `env:"GATEWAY_TIMEOUT"`
}

// Redis enables checkout idempotency keys shared between instances.
type Redis struct {
	Address        string        `env:"REDIS_ADDRESS"`
	Password       string        `env:"REDIS_PASSWORD"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL"`
}

type Admin struct {
	Username     string        `env:"ADMIN_USERNAME"`
	PasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	TokenKey     string        `env:"ADMIN_TOKEN_KEY"`
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL"`
}

func defaults() *Config {
	return &Config{
		Database: &Database{},
		HTTP:     &HTTP{HostString: "localhost:8080"},
		Gateway: &Gateway{
			Mode:     GatewayModeLive,
			Address:  "https://api.razorpay.com",
			Currency: "INR",
			Timeout:  10 * time.Second,
		},
		Redis: &Redis{IdempotencyTTL: 24 * time.Hour},
		Admin: &Admin{TokenTTL: 7 * 24 * time.Hour},
		App: &App{
			LogLevel:     "error",
			Mode:         AppModeDevelop,
			StoreTimeout: 5 * time.Second,
		},
	}
}

// NewConfig reads command line flags, environment variables take precedence.
func NewConfig() (*Config, error) {
	c := defaults()

	flag.StringVar(&c.Database.DSN, "d", c.Database.DSN, "Database string")
	flag.StringVar(&c.HTTP.HostString, "a", c.HTTP.HostString, "HTTP server endpoint")
	flag.StringVar(&c.Gateway.Mode, "g", c.Gateway.Mode, "Payment gateway mode: live / sandbox")
	flag.StringVar(&c.Gateway.Address, "r", c.Gateway.Address, "Payment gateway address")
	flag.StringVar(&c.Redis.Address, "c", c.Redis.Address, "Redis address for idempotency keys")
	flag.StringVar(&c.App.LogLevel, "l", c.App.LogLevel, "Log level")
	flag.StringVar(&c.App.Mode, "m", c.App.Mode, "PROD / DEV")
	flag.Parse()

	if err := c.parseEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadEnv builds the configuration from defaults and environment only.
func LoadEnv() (*Config, error) {
	c := defaults()
	if err := c.parseEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) parseEnv() error {
	err := env.Parse(c.Database)
	if err != nil {
		return fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(c.HTTP)
	if err != nil {
		return fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(c.Gateway)
	if err != nil {
		return fmt.Errorf("error parsing gateway config: %w", err)
	}
	err = env.Parse(c.Redis)
	if err != nil {
		return fmt.Errorf("error parsing redis config: %w", err)
	}
	err = env.Parse(c.Admin)
	if err != nil {
		return fmt.Errorf("error parsing admin config: %w", err)
	}
	err = env.Parse(c.App)
	if err != nil {
		return fmt.Errorf("error parsing app config: %w", err)
	}

	if c.Gateway.Mode != GatewayModeLive && c.Gateway.Mode != GatewayModeSandbox {
		return fmt.Errorf("unknown gateway mode %q", c.Gateway.Mode)
	}
	return nil
}
