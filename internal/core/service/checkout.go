package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCheckoutOrder opens a remote gateway order and persists a matching
// PENDING order. A non-empty idempotency key makes repeated submissions
// return the first result instead of opening another remote order.
func (s *Service) CreateCheckoutOrder(ctx context.Context,
	checkout *domain.Checkout, idempotencyKey string) (*domain.CheckoutResult, error) {
	if checkout.PaymentMethod == "" {
		checkout.PaymentMethod = domain.PaymentMethodOnline
	}
	if err := checkout.Validate(); err != nil {
		return nil, err
	}
	amount, err := checkout.AmountMinor()
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		return s.createCheckoutOrder(ctx, checkout, amount)
	}

	reserved, previous, err := s.keys.Reserve(ctx, idempotencyKey, s.reserveHold())
	if err != nil {
		return nil, s.repoError("Reserve idempotency key", err)
	}
	if !reserved {
		if previous != nil {
			s.logger.Debug("Replay checkout result",
				zap.String("key", idempotencyKey), zap.String("order", string(previous.OrderID)))
			return previous, nil
		}
		return nil, domain.ErrDuplicateRequest
	}

	result, err := s.createCheckoutOrder(ctx, checkout, amount)
	if err != nil {
		if relErr := s.keys.Release(context.WithoutCancel(ctx), idempotencyKey); relErr != nil {
			s.logger.Error("Release idempotency key", zap.String("key", idempotencyKey), zap.Error(relErr))
		}
		return nil, err
	}
	if err := s.keys.Complete(context.WithoutCancel(ctx), idempotencyKey, result); err != nil {
		s.logger.Error("Store checkout result", zap.String("key", idempotencyKey), zap.Error(err))
		if relErr := s.keys.Release(context.WithoutCancel(ctx), idempotencyKey); relErr != nil {
			s.logger.Error("Release idempotency key", zap.String("key", idempotencyKey), zap.Error(relErr))
		}
	}
	return result, nil
}

// reserveHold is how long an unfinished checkout keeps its idempotency key.
func (s *Service) reserveHold() time.Duration {
	return s.settings.GatewayTimeout + s.settings.StoreTimeout + reserveMargin
}

func (s *Service) createCheckoutOrder(ctx context.Context,
	checkout *domain.Checkout, amount int64) (*domain.CheckoutResult, error) {
	now := time.Now()
	order := &domain.Order{
		ID:            domain.OrderID(uuid.NewString()),
		Items:         checkout.Items,
		Customer:      checkout.Customer,
		ShippingFee:   checkout.ShippingFee,
		Subtotal:      checkout.Subtotal,
		Total:         checkout.Total,
		AmountMinor:   amount,
		Currency:      s.settings.Currency,
		PaymentMethod: checkout.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var remote *domain.GatewayOrder
	if order.PaymentMethod == domain.PaymentMethodOnline {
		var err error
		remote, err = s.createGatewayOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		order.PaymentOrderID = remote.ID
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	created, err := s.repo.CreatePendingOrder(storeCtx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			s.logger.Error("Remote order already mapped to another order",
				zap.String("paymentOrderId", order.PaymentOrderID))
			return nil, fmt.Errorf("%w: remote order %s", domain.ErrConflictingData, order.PaymentOrderID)
		}
		return nil, s.repoError("Create pending order", err)
	}

	s.logger.Info("Order created",
		zap.String("order", string(created.ID)),
		zap.String("paymentOrderId", created.PaymentOrderID),
		zap.Int64("amount", created.AmountMinor))

	return &domain.CheckoutResult{
		OrderID:      created.ID,
		GatewayOrder: remote,
		KeyID:        s.gateway.KeyID(),
	}, nil
}

func (s *Service) createGatewayOrder(ctx context.Context, order *domain.Order) (*domain.GatewayOrder, error) {
	gatewayCtx, cancel := context.WithTimeout(ctx, s.settings.GatewayTimeout)
	defer cancel()

	remote, err := s.gateway.CreateOrder(gatewayCtx, domain.GatewayOrderRequest{
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
		Receipt:     receipt(order.ID),
	})
	if err != nil {
		s.logger.Error("Create gateway order", zap.String("order", string(order.ID)), zap.Error(err))
		if errors.Is(err, domain.ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if remote == nil || remote.ID == "" {
		s.logger.Error("Gateway returned order without id", zap.String("order", string(order.ID)))
		return nil, fmt.Errorf("%w: empty remote order id", domain.ErrGateway)
	}
	return remote, nil
}

// receipt fits the provider's 40 character receipt limit.
func receipt(id domain.OrderID) string {
	return "rcpt_" + strings.ReplaceAll(string(id), "-", "")
}
