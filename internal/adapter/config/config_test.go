package config_test

import (
	"testing"
	"time"

	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	conf, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, config.GatewayModeLive, conf.Gateway.Mode)
	assert.Equal(t, "INR", conf.Gateway.Currency)
	assert.Equal(t, 10*time.Second, conf.Gateway.Timeout)
	assert.Equal(t, 5*time.Second, conf.App.StoreTimeout)
	assert.Equal(t, 24*time.Hour, conf.Redis.IdempotencyTTL)
	assert.Equal(t, config.AppModeDevelop, conf.App.Mode)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://shop@localhost/shop")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")
	t.Setenv("GATEWAY_MODE", config.GatewayModeSandbox)
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("ADMIN_USERNAME", "kanhaadmin")

	conf, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres://shop@localhost/shop", conf.Database.DSN)
	assert.Equal(t, "rzp_test_key", conf.Gateway.KeyID)
	assert.Equal(t, "secret", conf.Gateway.KeySecret)
	assert.Equal(t, config.GatewayModeSandbox, conf.Gateway.Mode)
	assert.Equal(t, 3*time.Second, conf.Gateway.Timeout)
	assert.Equal(t, "kanhaadmin", conf.Admin.Username)
}

func TestLoadEnv_BadGatewayMode(t *testing.T) {
	t.Setenv("GATEWAY_MODE", "stripe")

	_, err := config.LoadEnv()
	assert.Error(t, err)
}
