package domain

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

// Checkout is a storefront order submission.
type Checkout struct {
	Items         []OrderItem
	Customer      Customer
	ShippingFee   decimal.Decimal
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	Amount        string // raw client amount, unit unknown; empty means Total
	PaymentMethod PaymentMethod
}

// Validate returns the first missing or invalid field wrapped in ErrValidation.
func (c *Checkout) Validate() error {
	if len(c.Items) == 0 {
		return FieldError("items", "must contain at least one item")
	}
	for i, item := range c.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case strings.TrimSpace(item.ProductID) == "":
			return FieldError(field+".productId", "is required")
		case strings.TrimSpace(item.Title) == "":
			return FieldError(field+".title", "is required")
		case item.Quantity < 1:
			return FieldError(field+".quantity", "must be at least 1")
		case item.Price.Sign() < 0:
			return FieldError(field+".price", "must not be negative")
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"customerName", c.Customer.Name},
		{"phone", c.Customer.Phone},
		{"address", c.Customer.Address},
		{"pincode", c.Customer.Pincode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return FieldError(r.name, "is required")
		}
	}

	if c.ShippingFee.Sign() < 0 {
		return FieldError("shippingFee", "must not be negative")
	}
	if c.Subtotal.Sign() <= 0 {
		return FieldError("subtotal", "must be positive")
	}
	if c.Total.Sign() <= 0 {
		return FieldError("total", "must be positive")
	}
	if !c.PaymentMethod.Valid() {
		return FieldError("paymentMethod", "must be ONLINE or COD")
	}

	return nil
}

// AmountMinor normalizes the amount to charge, falling back to Total.
func (c *Checkout) AmountMinor() (int64, error) {
	if strings.TrimSpace(c.Amount) == "" {
		return NormalizeDecimalAmount(c.Total)
	}
	return NormalizeAmount(c.Amount)
}
