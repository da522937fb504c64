package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// CreateResult is the outcome of registering one template.
type CreateResult struct {
	TemplateType enums.TemplateType `json:"template_type"`
	ExternalID   string             `json:"external_id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
}

// BatchResult is one entry of a CreateAll run.
type BatchResult struct {
	TemplateType enums.TemplateType `json:"template_type"`
	Success      bool               `json:"success"`
	ExternalID   string             `json:"external_id,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// BatchSummary counts a CreateAll run.
type BatchSummary struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []BatchResult `json:"results"`
}

// Summarize counts the outcomes of a batch.
func Summarize(results []BatchResult) BatchSummary {
	sum := BatchSummary{Attempted: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			sum.Succeeded++
		} else {
			sum.Failed++
		}
	}
	return sum
}

// TemplateDTO is a stored template registration.
type TemplateDTO struct {
	ID                 uuid.UUID          `json:"id"`
	TemplateType       enums.TemplateType `json:"template_type"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	DocusealTemplateID string             `json:"docuseal_template_id"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// PreviewDTO shows the schema and HTML a template type renders to.
type PreviewDTO struct {
	Schema Schema `json:"schema"`
	HTML   string `json:"html"`
}

// SendInput describes a document to send to a partner.
type SendInput struct {
	TemplateType enums.TemplateType
	PartnerID    uuid.UUID
	Email        string
	Name         string
	ActorID      *string
}

// SubmissionDTO is a document sent for signature.
type SubmissionDTO struct {
	ID                   uuid.UUID            `json:"id"`
	PartnerID            uuid.UUID            `json:"partner_id"`
	TemplateType         enums.TemplateType   `json:"template_type"`
	ExternalSubmissionID string               `json:"external_submission_id"`
	RecipientEmail       string               `json:"recipient_email"`
	Status               enums.DocumentStatus `json:"status"`
	CreatedAt            time.Time            `json:"created_at"`
}

func templateFromModel(m models.DocumentTemplate) TemplateDTO {
	return TemplateDTO{
		ID:                 m.ID,
		TemplateType:       m.TemplateType,
		Name:               m.Name,
		Slug:               m.Slug,
		DocusealTemplateID: m.DocusealTemplateID,
		UpdatedAt:          m.UpdatedAt,
	}
}

func submissionFromModel(m models.DocumentSubmission) *SubmissionDTO {
	return &SubmissionDTO{
		ID:                   m.ID,
		PartnerID:            m.PartnerID,
		TemplateType:         m.TemplateType,
		ExternalSubmissionID: m.ExternalSubmissionID,
		RecipientEmail:       m.RecipientEmail,
		Status:               m.Status,
		CreatedAt:            m.CreatedAt,
	}
}
