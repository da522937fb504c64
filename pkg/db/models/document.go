package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// DocumentTemplate maps a template type to its registration at the e-signature
// provider. template_type is unique: re-creating a type replaces the row.
type DocumentTemplate struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	TemplateType       enums.TemplateType `gorm:"column:template_type;uniqueIndex;not null"`
	Name               string             `gorm:"column:name;not null"`
	Slug               string             `gorm:"column:slug;not null"`
	HTML               string             `gorm:"column:html;type:text;not null"`
	DocusealTemplateID string             `gorm:"column:docuseal_template_id;not null"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *DocumentTemplate) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}

// DocumentSubmission is one template sent to one partner for signature.
type DocumentSubmission struct {
	ID                   uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID            uuid.UUID            `gorm:"column:partner_id;type:uuid;not null;index"`
	TemplateType         enums.TemplateType   `gorm:"column:template_type;not null"`
	ExternalSubmissionID string               `gorm:"column:external_submission_id;uniqueIndex;not null"`
	RecipientEmail       string               `gorm:"column:recipient_email;not null"`
	Status               enums.DocumentStatus `gorm:"column:status;not null"`
	CreatedAt            time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *DocumentSubmission) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
