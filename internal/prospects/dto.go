package prospects

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// ListFilter narrows the CRM board.
type ListFilter struct {
	Type   enums.PartnerType
	Status enums.ProspectStatus
	Search string
}

type ProspectDTO struct {
	ID                 uuid.UUID            `json:"id"`
	Type               enums.PartnerType    `json:"type"`
	Status             enums.ProspectStatus `json:"status"`
	CompanyName        string               `json:"company_name"`
	ContactName        string               `json:"contact_name"`
	Email              string               `json:"email"`
	Phone              *string              `json:"phone,omitempty"`
	Source             *string              `json:"source,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	EstimatedValue     *decimal.Decimal     `json:"estimated_value,omitempty"`
	ConvertedPartnerID *uuid.UUID           `json:"converted_partner_id,omitempty"`
	InvitedAt          *time.Time           `json:"invited_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

type ActivityDTO struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	ActorID   *string   `json:"actor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProspectDetailDTO adds the activity timeline.
type ProspectDetailDTO struct {
	ProspectDTO
	Activities []ActivityDTO `json:"activities"`
}

func FromModel(m models.Prospect) ProspectDTO {
	return ProspectDTO{
		ID:                 m.ID,
		Type:               m.Type,
		Status:             m.Status,
		CompanyName:        m.CompanyName,
		ContactName:        m.ContactName,
		Email:              m.Email,
		Phone:              m.Phone,
		Source:             m.Source,
		Notes:              m.Notes,
		EstimatedValue:     m.EstimatedValue,
		ConvertedPartnerID: m.ConvertedPartnerID,
		InvitedAt:          m.InvitedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func activityFromModel(m models.ProspectActivity) ActivityDTO {
	return ActivityDTO{
		ID:        m.ID,
		Kind:      m.Kind,
		Summary:   m.Summary,
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
}

// CreateInput is a new lead.
type CreateInput struct {
	Type           enums.PartnerType
	CompanyName    string
	ContactName    string
	Email          string
	Phone          *string
	Source         *string
	Notes          *string
	EstimatedValue *decimal.Decimal
	ActorID        *string
}

// UpdateInput is a partial edit. Moving Status to won converts the prospect.
type UpdateInput struct {
	Status         *enums.ProspectStatus
	CompanyName    *string
	ContactName    *string
	Email          *string
	Phone          *string
	Source         *string
	Notes          *string
	EstimatedValue *decimal.Decimal
	ActorID        *string
}

// ActivityInput is a manually logged touchpoint.
type ActivityInput struct {
	Kind    string
	Summary string
	ActorID *string
}

// ConversionDTO reports the partner created from a prospect.
type ConversionDTO struct {
	Prospect  ProspectDTO `json:"prospect"`
	PartnerID uuid.UUID   `json:"partner_id"`
}
