package port

import (
	"context"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error)
	KeyID() string
	ParseEvent(body []byte) (*domain.GatewayEvent, error)
}

type SignatureVerifier interface {
	VerifyPayment(orderID, paymentID, signature string) (bool, error)
	VerifyWebhook(body []byte, signature string) (bool, error)
}
