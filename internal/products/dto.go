package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
)

// ProductDTO is the product payload returned by every listing.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	PartnerPrice    decimal.Decimal  `json:"partner_price"`
	MSRP            *decimal.Decimal `json:"msrp,omitempty"`
	MarkupPercent   *decimal.Decimal `json:"markup_percent,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	Tags            []string         `json:"tags"`
	IsActive        bool             `json:"is_active"`
	PartnerApproved bool             `json:"partner_approved"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// FromModel maps a product row and derives its partner price.
func FromModel(m models.Product) ProductDTO {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ProductDTO{
		ID:              m.ID,
		SKU:             m.SKU,
		Name:            m.Name,
		Description:     m.Description,
		Category:        m.Category,
		Price:           m.Price,
		PartnerPrice:    PartnerPrice(m.Price),
		MSRP:            m.MSRP,
		MarkupPercent:   m.MarkupPercent,
		ImageURL:        m.ImageURL,
		Tags:            tags,
		IsActive:        m.IsActive,
		PartnerApproved: m.PartnerApproved,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ListFilter narrows product listings.
type ListFilter struct {
	Category     string
	Search       string
	ActiveOnly   bool
	ApprovedOnly bool
}

// ProductInput carries a full product definition for create.
type ProductInput struct {
	SKU           string
	Name          string
	Description   *string
	Category      string
	Price         decimal.Decimal
	MSRP          *decimal.Decimal
	MarkupPercent *decimal.Decimal
	ImageURL      *string
	Tags          []string
	IsActive      *bool
}

// UpdateInput carries the mutable product fields. Nil fields are left alone.
type UpdateInput struct {
	Name          *string
	Description   *string
	Category      *string
	Price         *decimal.Decimal
	MSRP          *decimal.Decimal
	MarkupPercent *decimal.Decimal
	ImageURL      *string
	Tags          *[]string
	IsActive      *bool
}

// ImportRow is one parsed spreadsheet row. Numeric cells arrive as text.
type ImportRow struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	MSRP        string   `json:"msrp,omitempty"`
	Markup      string   `json:"markup_percent,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
