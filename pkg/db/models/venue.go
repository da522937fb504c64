package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Venue is a physical location owned by exactly one partner.
type Venue struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID      uuid.UUID         `gorm:"column:partner_id;type:uuid;not null;index"`
	Name           string            `gorm:"column:name;not null"`
	AddressLine1   string            `gorm:"column:address_line1;not null"`
	City           string            `gorm:"column:city;not null"`
	State          string            `gorm:"column:state;not null"`
	PostalCode     *string           `gorm:"column:postal_code"`
	DeviceCount    int               `gorm:"column:device_count;not null;default:0"`
	Status         enums.VenueStatus `gorm:"column:status;not null"`
	TrialStartDate *time.Time        `gorm:"column:trial_start_date"`
	TrialEndDate   *time.Time        `gorm:"column:trial_end_date"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Venue) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// Device is hardware deployed at a venue.
type Device struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID   uuid.UUID          `gorm:"column:partner_id;type:uuid;not null;index"`
	VenueID     uuid.UUID          `gorm:"column:venue_id;type:uuid;not null;index"`
	Serial      string             `gorm:"column:serial;uniqueIndex;not null"`
	Status      enums.DeviceStatus `gorm:"column:status;not null"`
	DataUsageMB decimal.Decimal    `gorm:"column:data_usage_mb;type:numeric(14,2);not null;default:0"`
	LastSeenAt  *time.Time         `gorm:"column:last_seen_at"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (d *Device) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
