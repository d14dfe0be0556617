package domain

// GatewayOrderRequest is what the payment provider needs to open a remote order.
type GatewayOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// GatewayOrder is a remote order owned by the payment provider.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// CheckoutResult is returned to the storefront after a checkout.
// GatewayOrder is nil for cash on delivery.
type CheckoutResult struct {
	OrderID      OrderID       `json:"orderId"`
	GatewayOrder *GatewayOrder `json:"order,omitempty"`
	KeyID        string        `json:"keyId"`
}

type GatewayEventType string

const (
	GatewayEventPaymentCaptured GatewayEventType = "payment.captured"
	GatewayEventPaymentFailed   GatewayEventType = "payment.failed"
	GatewayEventOrderPaid       GatewayEventType = "order.paid"
)

// GatewayEvent is the part of a provider callback the store acts on.
type GatewayEvent struct {
	Type           GatewayEventType
	PaymentOrderID string
	PaymentID      string
}
