package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderID string

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether fulfilment may move from s to next.
// DELIVERED and CANCELLED are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodCOD    PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodOnline || m == PaymentMethodCOD
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Pincode string
}

type Order struct {
	ID          OrderID
	Items       []OrderItem
	Customer    Customer
	ShippingFee decimal.Decimal
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	AmountMinor int64
	Currency    string

	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	PaymentOrderID   string
	PaymentID        string
	PaymentSignature string

	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentConfirmation is the gateway evidence recorded when an order is paid.
type PaymentConfirmation struct {
	PaymentID string
	Signature string
}
