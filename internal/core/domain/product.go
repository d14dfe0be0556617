package domain

import (
	"strings"
	"time"

	"github.com/govalues/decimal"
)

type ProductID string

type Product struct {
	ID             ProductID
	Title          string
	Price          decimal.Decimal
	Description    string
	ImageURL       string
	Category       string
	InStock        bool
	IsTopSelling   bool
	IsOfferProduct bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return FieldError("title", "is required")
	}
	if p.Price.Sign() < 0 {
		return FieldError("price", "must not be negative")
	}
	return nil
}
