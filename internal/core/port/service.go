package port

import (
	"context"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

type Service interface {
	CreateCheckoutOrder(ctx context.Context,
		checkout *domain.Checkout, idempotencyKey string) (*domain.CheckoutResult, error)
	VerifyPayment(ctx context.Context,
		paymentOrderID, paymentID, signature string) (domain.OrderID, error)
	HandleGatewayEvent(ctx context.Context, body []byte, signature string) error

	LoginAdmin(ctx context.Context, username string, password string) (string, error)

	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context,
		orderID domain.OrderID, status domain.OrderStatus) (*domain.Order, error)

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, productID domain.ProductID) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID domain.ProductID) error
}
