package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Prospect is a CRM lead that may later convert into a Partner.
type Prospect struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Type               enums.PartnerType    `gorm:"column:type;not null;index"`
	Status             enums.ProspectStatus `gorm:"column:status;not null;index"`
	CompanyName        string               `gorm:"column:company_name;not null"`
	ContactName        string               `gorm:"column:contact_name;not null"`
	Email              string               `gorm:"column:email;not null"`
	Phone              *string              `gorm:"column:phone"`
	Source             *string              `gorm:"column:source"`
	Notes              *string              `gorm:"column:notes;type:text"`
	EstimatedValue     *decimal.Decimal     `gorm:"column:estimated_value;type:numeric(12,2)"`
	ConvertedPartnerID *uuid.UUID           `gorm:"column:converted_partner_id;type:uuid"`
	InvitedAt          *time.Time           `gorm:"column:invited_at"`
	Activities         []ProspectActivity   `gorm:"foreignKey:ProspectID"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Prospect) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ProspectActivity is an immutable CRM log entry.
type ProspectActivity struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProspectID uuid.UUID `gorm:"column:prospect_id;type:uuid;not null;index"`
	Kind       string    `gorm:"column:kind;not null"`
	Summary    string    `gorm:"column:summary;type:text;not null"`
	ActorID    *string   `gorm:"column:actor_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (a *ProspectActivity) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
