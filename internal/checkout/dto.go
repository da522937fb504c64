package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line sent by the portal store.
type Item struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=999"`
}

// Input starts a checkout for a partner.
type Input struct {
	PartnerID uuid.UUID
	Items     []Item
}

// LineDTO echoes a priced line back to the portal.
type LineDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SessionDTO is the hosted checkout handle returned to the portal.
type SessionDTO struct {
	SessionID string          `json:"session_id"`
	URL       string          `json:"url"`
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	Lines     []LineDTO       `json:"lines"`
}
