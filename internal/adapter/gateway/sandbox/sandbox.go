// Package sandbox is an in-process payment gateway for local runs and tests.
// It opens orders without network calls and can settle them with correctly
// signed payments.
package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MikeRez0/inarashop/internal/adapter/gateway/razorpay"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultKeyID = "rzp_test_sandbox"

type Gateway struct {
	mu     sync.Mutex
	orders map[string]domain.GatewayOrder
	keyID  string
	signer *razorpay.Verifier
	logger *zap.Logger

	// NewID generates remote ids, replaceable to simulate collisions.
	NewID func(prefix string) string
}

func New(keyID string, signer *razorpay.Verifier, logger *zap.Logger) *Gateway {
	if keyID == "" {
		keyID = DefaultKeyID
	}
	return &Gateway{
		orders: make(map[string]domain.GatewayOrder),
		keyID:  keyID,
		signer: signer,
		logger: logger,
		NewID:  newID,
	}
}

func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

func (g *Gateway) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.AmountMinor < 100 {
		return nil, fmt.Errorf("order amount less than minimum amount allowed")
	}

	order := domain.GatewayOrder{
		ID:       g.NewID("order"),
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}

	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()

	g.logger.Debug("Sandbox order created", zap.String("id", order.ID), zap.Int64("amount", order.Amount))
	return &order, nil
}

func (g *Gateway) ParseEvent(body []byte) (*domain.GatewayEvent, error) {
	return razorpay.ParseEvent(body)
}

// Pay settles a sandbox order and returns what the checkout widget would
// hand to the storefront: the payment id and its signature.
func (g *Gateway) Pay(orderID string) (string, string, error) {
	g.mu.Lock()
	order, ok := g.orders[orderID]
	if ok {
		order.Status = "paid"
		g.orders[orderID] = order
	}
	g.mu.Unlock()
	if !ok {
		return "", "", fmt.Errorf("sandbox order %s not found", orderID)
	}

	paymentID := g.NewID("pay")
	signature, err := g.signer.SignPayment(orderID, paymentID)
	if err != nil {
		return "", "", err
	}
	return paymentID, signature, nil
}
