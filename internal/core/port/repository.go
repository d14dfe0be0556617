package port

import (
	"context"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreatePendingOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// MarkOrderPaidIfPending atomically moves the order referenced by the
	// remote order id to PAID/CONFIRMED unless it is PAID already.
	// Returns domain.ErrNoUpdatedData when no row matched.
	MarkOrderPaidIfPending(ctx context.Context,
		paymentOrderID string, payment domain.PaymentConfirmation) (*domain.Order, error)
	MarkOrderFailedIfPending(ctx context.Context, paymentOrderID string) (*domain.Order, error)
	ReadOrderByPaymentOrderID(ctx context.Context, paymentOrderID string) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context,
		orderID domain.OrderID, from domain.OrderStatus, to domain.OrderStatus) (*domain.Order, error)

	// Product
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ReadProduct(ctx context.Context, productID domain.ProductID) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID domain.ProductID) error
}
