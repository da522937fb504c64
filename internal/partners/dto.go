package partners

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/internal/pipeline"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// ListFilter narrows partner listings.
type ListFilter struct {
	Stage string
	Type  enums.PartnerType
}

// PartnerDTO is the API view of a partner.
type PartnerDTO struct {
	ID                   uuid.UUID            `json:"id"`
	PartnerCode          string               `json:"partner_code"`
	Type                 enums.PartnerType    `json:"type"`
	CompanyName          string               `json:"company_name"`
	ContactName          string               `json:"contact_name"`
	Email                string               `json:"email"`
	Phone                *string              `json:"phone,omitempty"`
	City                 *string              `json:"city,omitempty"`
	State                *string              `json:"state,omitempty"`
	PipelineStage        string               `json:"pipeline_stage"`
	PipelineStep         int                  `json:"pipeline_step"`
	InitialReviewStatus  enums.ReviewStatus   `json:"initial_review_status"`
	PostCallReviewStatus enums.ReviewStatus   `json:"post_call_review_status"`
	LOIStatus            enums.DocumentStatus `json:"loi_status"`
	ContractStatus       enums.DocumentStatus `json:"contract_status"`
	NDAStatus            enums.DocumentStatus `json:"nda_status"`
	SkipReason           *string              `json:"skip_reason,omitempty"`
	SkippedStages        []string             `json:"skipped_stages"`
	TrialStartDate       *time.Time           `json:"trial_start_date,omitempty"`
	TrialEndDate         *time.Time           `json:"trial_end_date,omitempty"`
	TipaltiPayeeID       *string              `json:"tipalti_payee_id,omitempty"`
	TipaltiStatus        *string              `json:"tipalti_status,omitempty"`
	ProspectID           *uuid.UUID           `json:"prospect_id,omitempty"`
	Notes                *string              `json:"notes,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// VenueSummary is the compact venue row shown on the partner detail page.
type VenueSummary struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	DeviceCount int               `json:"device_count"`
	Status      enums.VenueStatus `json:"status"`
}

// ActivityDTO is a single audit entry.
type ActivityDTO struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	FromStage     string    `json:"from_stage,omitempty"`
	ToStage       string    `json:"to_stage,omitempty"`
	SkipReason    *string   `json:"skip_reason,omitempty"`
	SkippedStages []string  `json:"skipped_stages,omitempty"`
	ActorID       *string   `json:"actor_id,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PartnerDetailDTO bundles a partner with its venues and audit trail.
type PartnerDetailDTO struct {
	PartnerDTO
	Venues     []VenueSummary `json:"venues"`
	Activities []ActivityDTO  `json:"activities"`
}

// FromModel maps a partner row to its API view.
func FromModel(m *models.Partner) *PartnerDTO {
	if m == nil {
		return nil
	}
	skipped := []string(m.SkippedStages)
	if skipped == nil {
		skipped = []string{}
	}
	return &PartnerDTO{
		ID:                   m.ID,
		PartnerCode:          m.PartnerCode,
		Type:                 m.Type,
		CompanyName:          m.CompanyName,
		ContactName:          m.ContactName,
		Email:                m.Email,
		Phone:                m.Phone,
		City:                 m.City,
		State:                m.State,
		PipelineStage:        m.PipelineStage,
		PipelineStep:         pipeline.CurrentStep(m.PipelineStage),
		InitialReviewStatus:  m.InitialReviewStatus,
		PostCallReviewStatus: m.PostCallReviewStatus,
		LOIStatus:            m.LOIStatus,
		ContractStatus:       m.ContractStatus,
		NDAStatus:            m.NDAStatus,
		SkipReason:           m.SkipReason,
		SkippedStages:        skipped,
		TrialStartDate:       m.TrialStartDate,
		TrialEndDate:         m.TrialEndDate,
		TipaltiPayeeID:       m.TipaltiPayeeID,
		TipaltiStatus:        m.TipaltiStatus,
		ProspectID:           m.ProspectID,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func venueSummaries(rows []models.Venue) []VenueSummary {
	out := make([]VenueSummary, 0, len(rows))
	for _, v := range rows {
		out = append(out, VenueSummary{
			ID:          v.ID,
			Name:        v.Name,
			City:        v.City,
			State:       v.State,
			DeviceCount: v.DeviceCount,
			Status:      v.Status,
		})
	}
	return out
}

func activityDTOs(rows []models.PartnerActivity) []ActivityDTO {
	out := make([]ActivityDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, ActivityDTO{
			ID:            a.ID,
			Kind:          a.Kind,
			FromStage:     a.FromStage,
			ToStage:       a.ToStage,
			SkipReason:    a.SkipReason,
			SkippedStages: []string(a.SkippedStages),
			ActorID:       a.ActorID,
			Note:          a.Note,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out
}
