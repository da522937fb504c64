package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

// keyPrefixes lists the secret and restricted key prefixes accepted per environment.
var keyPrefixes = map[string][]string{
	testEnv: {"sk_test_", "rk_test_"},
	liveEnv: {"sk_live_", "rk_live_"},
}

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// CheckoutSettings are the hosted checkout parameters shared by every session.
type CheckoutSettings struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Client holds the configured Stripe key and checkout settings.
type Client struct {
	api         *stripe.Client
	environment string
	checkout    CheckoutSettings
}

// NewClient validates the key against the environment and sets stripe.Key,
// which the resource packages (checkout/session) read.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env := cfg.Environment()
	prefixes, ok := keyPrefixes[env]
	if !ok {
		return nil, errInvalidStripeEnv
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	if !hasAnyPrefix(apiKey, prefixes) {
		return nil, fmt.Errorf("stripe environment %q requires a %s key", env, strings.Join(prefixes, " or "))
	}

	settings := CheckoutSettings{
		Currency:   strings.ToLower(strings.TrimSpace(cfg.Currency)),
		SuccessURL: strings.TrimSpace(cfg.SuccessURL),
		CancelURL:  strings.TrimSpace(cfg.CancelURL),
	}
	if settings.Currency == "" {
		settings.Currency = "usd"
	}
	for name, raw := range map[string]string{"success": settings.SuccessURL, "cancel": settings.CancelURL} {
		if err := requireAbsoluteURL(raw); err != nil {
			return nil, fmt.Errorf("stripe %s url: %w", name, err)
		}
	}

	stripe.Key = apiKey
	logg.Info(logg.WithField(ctx, "stripe_env", env), "stripe client initialized")

	return &Client{api: stripe.NewClient(apiKey), environment: env, checkout: settings}, nil
}

// API returns the underlying Stripe API client.
func (c *Client) API() *stripe.Client {
	if c == nil {
		return nil
	}
	return c.api
}

// Environment reports "test" or "live".
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

func (c *Client) Checkout() CheckoutSettings {
	if c == nil {
		return CheckoutSettings{}
	}
	return c.checkout
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func requireAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q must be an absolute URL", raw)
	}
	return nil
}
