package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeRez0/inarashop/internal/adapter/auth"
	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/adapter/gateway/razorpay"
	"github.com/MikeRez0/inarashop/internal/adapter/gateway/sandbox"
	handler "github.com/MikeRez0/inarashop/internal/adapter/handler/http"
	"github.com/MikeRez0/inarashop/internal/adapter/logger"
	"github.com/MikeRez0/inarashop/internal/adapter/storage"
	"github.com/MikeRez0/inarashop/internal/adapter/storage/idempotency"
	"github.com/MikeRez0/inarashop/internal/adapter/storage/memory"
	"github.com/MikeRez0/inarashop/internal/adapter/storage/repository"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/MikeRez0/inarashop/internal/core/service"
	"go.uber.org/zap"
)

const sandboxKeySecret = "sandbox_key_secret"

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo port.Repository
	if conf.Database.DSN == "" {
		log.Warn("DATABASE_URI is empty, orders are kept in memory")
		repo = memory.NewRepository()
	} else {
		db, err := storage.NewDBStorage(ctx, conf.Database)
		if err != nil {
			log.Error("database error", zap.Error(err))
			return
		}
		defer db.Close()

		err = db.RunMigrations()
		if err != nil {
			log.Error("database migration error", zap.Error(err))
			return
		}

		repo, err = repository.NewRepository(db)
		if err != nil {
			log.Error("order repo creating error", zap.Error(err))
			return
		}
	}

	var keys port.CheckoutKeyStore
	if conf.Redis.Address == "" {
		keys = memory.NewKeyStore(conf.Redis.IdempotencyTTL)
	} else {
		client, err := idempotency.NewRedisClient(ctx, conf.Redis)
		if err != nil {
			log.Error("redis error", zap.Error(err))
			return
		}
		defer client.Close()
		keys = idempotency.NewRedisStore(client, conf.Redis.IdempotencyTTL)
	}

	gateway, verifier, err := newGateway(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		log.Error("gateway creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New(conf.Admin)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}
	if conf.Admin.Username == "" || conf.Admin.PasswordHash == "" {
		log.Warn("admin credentials are not configured, admin API is unavailable")
	}

	svc, err := service.NewService(repo, gateway, verifier, keys, tokenService, service.Settings{
		Currency:       conf.Gateway.Currency,
		GatewayTimeout: conf.Gateway.Timeout,
		StoreTimeout:   conf.App.StoreTimeout,
		Admin: domain.Admin{
			Username:     conf.Admin.Username,
			PasswordHash: conf.Admin.PasswordHash,
		},
	}, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	paymentHandler, err := handler.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	adminHandler, err := handler.NewAdminHandler(svc, log.Named("Admin handler"))
	if err != nil {
		log.Error("admin handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := handler.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	productHandler, err := handler.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}

	r, err := handler.NewRouter(conf.App, log.Named("Router"), tokenService,
		paymentHandler, adminHandler, orderHandler, productHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	srv := &http.Server{
		Addr:              conf.HTTP.HostString,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("address", conf.HTTP.HostString),
		zap.String("gateway", conf.Gateway.Mode))
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("router serve error", zap.Error(err))
		return
	}
}

func newGateway(conf *config.Gateway, log *zap.Logger) (port.PaymentGateway, port.SignatureVerifier, error) {
	if conf.Mode == config.GatewayModeSandbox {
		secret := conf.KeySecret
		if secret == "" {
			log.Warn("RAZORPAY_KEY_SECRET is empty, sandbox uses a built-in secret")
			secret = sandboxKeySecret
		}
		verifier := razorpay.NewVerifier(secret, conf.WebhookSecret)
		return sandbox.New(conf.KeyID, verifier, log), verifier, nil
	}

	if conf.KeyID == "" || conf.KeySecret == "" {
		log.Warn("gateway keys are not configured, online checkout will fail")
	}
	if conf.WebhookSecret == "" {
		log.Warn("RAZORPAY_WEBHOOK_SECRET is empty, gateway callbacks will be rejected")
	}
	client, err := razorpay.NewClient(conf, log)
	if err != nil {
		return nil, nil, err
	}
	return client, razorpay.NewVerifier(conf.KeySecret, conf.WebhookSecret), nil
}
