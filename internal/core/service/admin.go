package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/utils"
	"go.uber.org/zap"
)

func (s *Service) LoginAdmin(ctx context.Context, username string, password string) (string, error) {
	admin := s.settings.Admin
	if admin.Username == "" || admin.PasswordHash == "" {
		s.logger.Error("Admin credentials are not configured")
		return "", domain.ErrInvalidCredentials
	}
	if username != admin.Username {
		return "", domain.ErrInvalidCredentials
	}

	err := utils.ComparePassword(password, admin.PasswordHash)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(&admin)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	list, err := s.repo.ListOrders(storeCtx)
	if err != nil {
		return nil, s.repoError("List orders", err)
	}
	return list, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	order, err := s.repo.ReadOrder(storeCtx, orderID)
	if err != nil {
		return nil, s.repoError("Read order", err)
	}
	return order, nil
}

// UpdateOrderStatus advances fulfilment. Online orders are confirmed only
// after payment.
func (s *Service) UpdateOrderStatus(ctx context.Context,
	orderID domain.OrderID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.FieldError("status", "is not a known order status")
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	o, err := s.repo.ReadOrder(storeCtx, orderID)
	if err != nil {
		return nil, s.repoError("Read order", err)
	}
	if o.Status == status {
		return o, nil
	}
	if !o.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, o.Status, status)
	}
	if status == domain.OrderStatusConfirmed &&
		o.PaymentMethod == domain.PaymentMethodOnline &&
		o.PaymentStatus != domain.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: order is not paid", domain.ErrInvalidStatusTransition)
	}

	updated, err := s.repo.UpdateOrderStatus(storeCtx, orderID, o.Status, status)
	if err != nil {
		if errors.Is(err, domain.ErrNoUpdatedData) {
			return nil, fmt.Errorf("%w: status changed concurrently", domain.ErrInvalidStatusTransition)
		}
		return nil, s.repoError("Update order status", err)
	}

	s.logger.Info("Order status updated",
		zap.String("order", string(orderID)),
		zap.String("from", string(o.Status)),
		zap.String("to", string(status)))
	return updated, nil
}
