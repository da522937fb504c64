package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Commission is revenue share earned by a partner for a period.
type Commission struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID   uuid.UUID              `gorm:"column:partner_id;type:uuid;not null;index"`
	VenueID     *uuid.UUID             `gorm:"column:venue_id;type:uuid"`
	Amount      decimal.Decimal        `gorm:"column:amount;type:numeric(12,2);not null"`
	Status      enums.CommissionStatus `gorm:"column:status;not null"`
	PeriodStart time.Time              `gorm:"column:period_start;not null"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (c *Commission) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// Payment is a payout issued through the payment provider.
type Payment struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID   uuid.UUID           `gorm:"column:partner_id;type:uuid;not null;index"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Status      enums.PaymentStatus `gorm:"column:status;not null"`
	ProviderRef *string             `gorm:"column:provider_ref"`
	PaidAt      *time.Time          `gorm:"column:paid_at"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
