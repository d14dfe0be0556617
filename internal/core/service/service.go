package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"go.uber.org/zap"
)

const (
	defaultCurrency       = "INR"
	defaultGatewayTimeout = 10 * time.Second
	defaultStoreTimeout   = 5 * time.Second

	reserveMargin = 5 * time.Second
)

type Settings struct {
	Currency       string
	GatewayTimeout time.Duration
	StoreTimeout   time.Duration
	Admin          domain.Admin
}

type Service struct {
	repo         port.Repository
	gateway      port.PaymentGateway
	verifier     port.SignatureVerifier
	keys         port.CheckoutKeyStore
	tokenService port.TokenService
	settings     Settings
	logger       *zap.Logger
}

func NewService(repo port.Repository,
	gateway port.PaymentGateway,
	verifier port.SignatureVerifier,
	keys port.CheckoutKeyStore,
	tokenService port.TokenService,
	settings Settings,
	logger *zap.Logger) (*Service, error) {
	if settings.Currency == "" {
		settings.Currency = defaultCurrency
	}
	if settings.GatewayTimeout <= 0 {
		settings.GatewayTimeout = defaultGatewayTimeout
	}
	if settings.StoreTimeout <= 0 {
		settings.StoreTimeout = defaultStoreTimeout
	}

	return &Service{
		repo:         repo,
		gateway:      gateway,
		verifier:     verifier,
		keys:         keys,
		tokenService: tokenService,
		settings:     settings,
		logger:       logger,
	}, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.settings.StoreTimeout)
}

// repoError passes domain data errors through and reports everything else,
// timeouts included, as ErrStorage.
func (s *Service) repoError(op string, err error) error {
	if errors.Is(err, domain.ErrDataNotFound) ||
		errors.Is(err, domain.ErrNoUpdatedData) ||
		errors.Is(err, domain.ErrConflictingData) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Error(op+" timed out", zap.Duration("timeout", s.settings.StoreTimeout))
	} else {
		s.logger.Error(op, zap.Error(err))
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

var _ port.Service = (*Service)(nil)
