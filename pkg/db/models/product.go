package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a store catalog entry. PartnerApproved replaces the admin UI's
// browser-local approval set so it survives across devices.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SKU             string           `gorm:"column:sku;uniqueIndex;not null"`
	Name            string           `gorm:"column:name;not null"`
	Description     *string          `gorm:"column:description;type:text"`
	Category        string           `gorm:"column:category;not null"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	MSRP            *decimal.Decimal `gorm:"column:msrp;type:numeric(12,2)"`
	MarkupPercent   *decimal.Decimal `gorm:"column:markup_percent;type:numeric(6,2)"`
	ImageURL        *string          `gorm:"column:image_url"`
	Tags            pq.StringArray   `gorm:"column:tags;type:text[]"`
	IsActive        bool             `gorm:"column:is_active;not null"`
	PartnerApproved bool             `gorm:"column:partner_approved;not null;default:false"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
