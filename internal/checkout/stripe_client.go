package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	pkgstripe "github.com/angelmondragon/partnerhub-backend/pkg/stripe"
)

// SessionCreator is the subset of Stripe used to open hosted checkout.
type SessionCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeSessions struct{}

// NewStripeSessions returns a SessionCreator backed by the initialized Stripe client.
func NewStripeSessions(api *pkgstripe.Client) SessionCreator {
	if api == nil {
		return nil
	}
	return &stripeSessions{}
}

func (s *stripeSessions) Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if params != nil {
		params.Context = ctx
	}
	return session.New(params)
}
