package sandbox_test

import (
	"context"
	"strings"
	"testing"

	"github.com/MikeRez0/inarashop/internal/adapter/gateway/razorpay"
	"github.com/MikeRez0/inarashop/internal/adapter/gateway/sandbox"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGateway_CreateAndPay(t *testing.T) {
	verifier := razorpay.NewVerifier("key_secret", "")
	g := sandbox.New("", verifier, zap.NewNop())
	assert.Equal(t, sandbox.DefaultKeyID, g.KeyID())

	order, err := g.CreateOrder(context.Background(), domain.GatewayOrderRequest{
		AmountMinor: 80000, Currency: "INR", Receipt: "rcpt_1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.ID, "order_"))
	assert.Equal(t, int64(80000), order.Amount)

	paymentID, signature, err := g.Pay(order.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(paymentID, "pay_"))

	ok, err := verifier.VerifyPayment(order.ID, paymentID, signature)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGateway_Errors(t *testing.T) {
	g := sandbox.New("rzp_test_x", razorpay.NewVerifier("key_secret", ""), zap.NewNop())

	_, err := g.CreateOrder(context.Background(), domain.GatewayOrderRequest{AmountMinor: 99})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.CreateOrder(ctx, domain.GatewayOrderRequest{AmountMinor: 1000})
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = g.Pay("order_missing")
	assert.Error(t, err)
}
