package stripe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
)

func validConfig() config.StripeConfig {
	return config.StripeConfig{
		APIKey:     "sk_test_abc",
		SuccessURL: "https://hub.test/ok",
		CancelURL:  "https://hub.test/cancel",
	}
}

func TestNewClientValidatesKeyForEnvironment(t *testing.T) {
	ctx := context.Background()

	cfg := validConfig()
	cfg.APIKey = ""
	_, err := NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, errAPIKeyRequired)

	cfg = validConfig()
	cfg.APIKey = "sk_live_123"
	_, err = NewClient(ctx, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sk_test_")

	cfg = validConfig()
	cfg.Env = "staging"
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, errInvalidStripeEnv)

	cfg = validConfig()
	cfg.Env = "LIVE"
	cfg.APIKey = "rk_live_123"
	c, err := NewClient(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "live", c.Environment())
}

func TestNewClientRejectsRelativeRedirects(t *testing.T) {
	cfg := validConfig()
	cfg.CancelURL = "/portal/store"
	_, err := NewClient(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancel")
}

func TestNewClientDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Currency = " USD "
	c, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment())
	assert.NotNil(t, c.API())
	assert.Equal(t, CheckoutSettings{
		Currency:   "usd",
		SuccessURL: "https://hub.test/ok",
		CancelURL:  "https://hub.test/cancel",
	}, c.Checkout())
}

func TestNilClientAccessors(t *testing.T) {
	var c *Client
	assert.Nil(t, c.API())
	assert.Equal(t, "", c.Environment())
	assert.Equal(t, CheckoutSettings{}, c.Checkout())
}
