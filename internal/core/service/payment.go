package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"go.uber.org/zap"
)

// VerifyPayment checks the gateway signature and moves the order to PAID.
// Repeating the call with the same valid identifiers succeeds without
// touching the order again.
func (s *Service) VerifyPayment(ctx context.Context,
	paymentOrderID, paymentID, signature string) (domain.OrderID, error) {
	switch {
	case paymentOrderID == "":
		return "", domain.FieldError("remoteOrderId", "is required")
	case paymentID == "":
		return "", domain.FieldError("remotePaymentId", "is required")
	case signature == "":
		return "", domain.FieldError("signature", "is required")
	}

	ok, err := s.verifier.VerifyPayment(paymentOrderID, paymentID, signature)
	if err != nil {
		s.logger.Error("Verify payment signature", zap.Error(err))
		return "", err
	}
	if !ok {
		s.logger.Warn("Payment signature mismatch, possible tampering",
			zap.String("paymentOrderId", paymentOrderID),
			zap.String("paymentId", paymentID))
		return "", domain.ErrInvalidSignature
	}

	order, err := s.finalizePayment(ctx, paymentOrderID, domain.PaymentConfirmation{
		PaymentID: paymentID,
		Signature: signature,
	})
	if err != nil {
		return "", err
	}
	return order.ID, nil
}

func (s *Service) finalizePayment(ctx context.Context,
	paymentOrderID string, payment domain.PaymentConfirmation) (*domain.Order, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	order, err := s.repo.MarkOrderPaidIfPending(storeCtx, paymentOrderID, payment)
	if err == nil {
		s.logger.Info("Order paid",
			zap.String("order", string(order.ID)),
			zap.String("paymentOrderId", paymentOrderID),
			zap.String("paymentId", payment.PaymentID))
		return order, nil
	}
	if !errors.Is(err, domain.ErrNoUpdatedData) {
		return nil, s.repoError("Mark order paid", err)
	}

	// nothing matched: either no such order or it is PAID already
	order, err = s.repo.ReadOrderByPaymentOrderID(storeCtx, paymentOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("No local order for verified payment",
				zap.String("paymentOrderId", paymentOrderID),
				zap.String("paymentId", payment.PaymentID))
			return nil, domain.ErrOrderNotFound
		}
		return nil, s.repoError("Read order by payment order", err)
	}

	if order.PaymentStatus != domain.PaymentStatusPaid {
		s.logger.Error("Order was neither updated nor paid",
			zap.String("order", string(order.ID)),
			zap.String("paymentStatus", string(order.PaymentStatus)))
		return nil, domain.ErrInternal
	}
	if order.PaymentID != payment.PaymentID {
		s.logger.Warn("Order already paid by another payment",
			zap.String("order", string(order.ID)),
			zap.String("paidWith", order.PaymentID),
			zap.String("paymentId", payment.PaymentID))
	}
	return order, nil
}

// HandleGatewayEvent applies a signed provider callback. Events for unknown
// orders are acknowledged so the provider stops redelivering them.
func (s *Service) HandleGatewayEvent(ctx context.Context, body []byte, signature string) error {
	if signature == "" {
		return domain.FieldError("signature", "is required")
	}
	ok, err := s.verifier.VerifyWebhook(body, signature)
	if err != nil {
		s.logger.Error("Verify webhook signature", zap.Error(err))
		return err
	}
	if !ok {
		s.logger.Warn("Webhook signature mismatch, possible tampering")
		return domain.ErrInvalidSignature
	}

	event, err := s.gateway.ParseEvent(body)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	switch event.Type {
	case domain.GatewayEventPaymentCaptured, domain.GatewayEventOrderPaid:
		_, err := s.finalizePayment(ctx, event.PaymentOrderID, domain.PaymentConfirmation{
			PaymentID: event.PaymentID,
			Signature: signature,
		})
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil
		}
		return err

	case domain.GatewayEventPaymentFailed:
		storeCtx, cancel := s.storeContext(ctx)
		defer cancel()

		order, err := s.repo.MarkOrderFailedIfPending(storeCtx, event.PaymentOrderID)
		if err != nil {
			if errors.Is(err, domain.ErrNoUpdatedData) {
				s.logger.Info("Payment failure ignored, order is not pending",
					zap.String("paymentOrderId", event.PaymentOrderID))
				return nil
			}
			return s.repoError("Mark order failed", err)
		}
		s.logger.Warn("Order payment failed",
			zap.String("order", string(order.ID)),
			zap.String("paymentOrderId", event.PaymentOrderID),
			zap.String("paymentId", event.PaymentID))
		return nil

	default:
		s.logger.Debug("Gateway event skipped", zap.String("event", string(event.Type)))
		return nil
	}
}
