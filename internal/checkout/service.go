package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/internal/products"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const maxLines = 50

var hundred = decimal.NewFromInt(100)

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type partnerLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

// Service opens hosted checkout sessions for the partner store.
type Service interface {
	CreateSession(ctx context.Context, input Input) (*SessionDTO, error)
}

// ServiceParams wires the checkout service.
type ServiceParams struct {
	Products   productLoader
	Partners   partnerLoader
	Sessions   SessionCreator
	Currency   string
	SuccessURL string
	CancelURL  string
	Logger     *logger.Logger
}

type service struct {
	products   productLoader
	partners   partnerLoader
	sessions   SessionCreator
	currency   string
	successURL string
	cancelURL  string
	logg       *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.Partners == nil {
		return nil, fmt.Errorf("partner loader required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("checkout session creator required")
	}
	if strings.TrimSpace(params.SuccessURL) == "" || strings.TrimSpace(params.CancelURL) == "" {
		return nil, fmt.Errorf("checkout redirect urls required")
	}
	currency := strings.ToLower(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = "usd"
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		products:   params.Products,
		partners:   params.Partners,
		sessions:   params.Sessions,
		currency:   currency,
		successURL: params.SuccessURL,
		cancelURL:  params.CancelURL,
		logg:       logg,
	}, nil
}

// CreateSession prices each item at the partner price and opens a Stripe
// payment-mode session. Only active, partner-approved products can be bought.
func (s *service) CreateSession(ctx context.Context, input Input) (*SessionDTO, error) {
	items, err := mergeItems(input.Items)
	if err != nil {
		return nil, err
	}

	partner, err := s.partners.FindByID(ctx, input.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	rows, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	lines := make([]LineDTO, 0, len(items))
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		CustomerEmail:     stripe.String(partner.Email),
		ClientReferenceID: stripe.String(partner.ID.String()),
	}
	total := decimal.Zero
	for _, it := range items {
		product, ok := byID[it.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", it.ProductID))
		}
		if !product.IsActive || !product.PartnerApproved {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %s is not available to partners", product.SKU))
		}
		unit := products.PartnerPrice(product.Price)
		cents := unit.Mul(hundred).Round(0).IntPart()
		if cents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %s has no price", product.SKU))
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(lineTotal)

		lines = append(lines, LineDTO{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(it.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.currency),
				UnitAmount: stripe.Int64(cents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(product.Name),
				},
			},
		})
	}
	params.AddMetadata("partner_id", partner.ID.String())
	params.AddMetadata("partner_code", partner.PartnerCode)

	logCtx := s.logg.WithPartnerID(ctx, partner.ID.String())
	sess, err := s.sessions.Create(ctx, params)
	if err != nil {
		s.logg.Error(logCtx, "stripe checkout session failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeProvider, err, "create checkout session")
	}
	s.logg.Info(s.logg.WithField(logCtx, "checkout_session_id", sess.ID), "checkout session created")

	return &SessionDTO{
		SessionID: sess.ID,
		URL:       sess.URL,
		Currency:  s.currency,
		Total:     total,
		Lines:     lines,
	}, nil
}

// mergeItems folds repeated products into one line, preserving first-seen order.
func mergeItems(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	out := make([]Item, 0, len(items))
	index := map[uuid.UUID]int{}
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
		}
		if it.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	if len(out) > maxLines {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d products per checkout", maxLines))
	}
	return out, nil
}
