package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/pipeline"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// AdminPartnerList returns partners, optionally filtered by ?stage= and ?type=.
func AdminPartnerList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := partners.ListFilter{Stage: strings.TrimSpace(r.URL.Query().Get("stage"))}
		if filter.Stage != "" && !pipeline.IsValidStage(filter.Stage) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown pipeline stage"))
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			pt, err := enums.ParsePartnerType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid partner type"))
				return
			}
			filter.Type = pt
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminPartnerGet(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type partnerUpdateRequest struct {
	CompanyName    *string `json:"company_name,omitempty" validate:"omitempty,min=1"`
	ContactName    *string `json:"contact_name,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	TrialStartDate *string `json:"trial_start_date,omitempty"`
	TrialEndDate   *string `json:"trial_end_date,omitempty"`
	TipaltiPayeeID *string `json:"tipalti_payee_id,omitempty"`
	TipaltiStatus  *string `json:"tipalti_status,omitempty"`
}

func (p partnerUpdateRequest) toInput() partners.UpdateInput {
	return partners.UpdateInput{
		CompanyName:    p.CompanyName,
		ContactName:    p.ContactName,
		Email:          p.Email,
		Phone:          p.Phone,
		City:           p.City,
		State:          p.State,
		Notes:          p.Notes,
		TrialStartDate: p.TrialStartDate,
		TrialEndDate:   p.TrialEndDate,
		TipaltiPayeeID: p.TipaltiPayeeID,
		TipaltiStatus:  p.TipaltiStatus,
	}
}

// AdminPartnerUpdate applies a partial update. Pipeline and review fields are
// only reachable through approve, deny and stage.
func AdminPartnerUpdate(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload partnerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type approveRequest struct {
	ReviewType  string  `json:"review_type" validate:"required"`
	TargetStage *string `json:"target_stage,omitempty"`
	SkipReason  *string `json:"skip_reason,omitempty"`
}

// AdminPartnerApprove approves a review. A target stage must be forward of the
// partner's current stage.
func AdminPartnerApprove(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload approveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reviewType, err := enums.ParseReviewType(payload.ReviewType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid review type"))
			return
		}

		input := partners.ApproveInput{
			ReviewType: reviewType,
			SkipReason: payload.SkipReason,
			ActorID:    actorID(r),
		}
		if payload.TargetStage != nil && strings.TrimSpace(*payload.TargetStage) != "" {
			target := strings.TrimSpace(*payload.TargetStage)
			current, err := svc.Get(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if !isSelectable(current.PipelineStage, target) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "target stage must be ahead of the current stage").
					WithDetails(map[string]any{"current_stage": current.PipelineStage, "target_stage": target}))
				return
			}
			input.TargetStage = &target
		}

		updated, err := svc.Approve(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func isSelectable(current, target string) bool {
	for _, st := range pipeline.SelectableTargets(current) {
		if st.ID == target {
			return true
		}
	}
	return false
}

type denyRequest struct {
	ReviewType string  `json:"review_type" validate:"required"`
	Note       *string `json:"note,omitempty"`
}

func AdminPartnerDeny(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload denyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reviewType, err := enums.ParseReviewType(payload.ReviewType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid review type"))
			return
		}
		updated, err := svc.Deny(r.Context(), id, partners.DenyInput{ReviewType: reviewType, Note: payload.Note, ActorID: actorID(r)})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type stageRequest struct {
	Stage string  `json:"stage" validate:"required"`
	Note  *string `json:"note,omitempty"`
}

// AdminPartnerSetStage is the manual override; any registry stage or inactive is accepted.
func AdminPartnerSetStage(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload stageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.SetStage(r.Context(), id, partners.SetStageInput{Stage: strings.TrimSpace(payload.Stage), Note: payload.Note, ActorID: actorID(r)})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// PipelineStages lists the registry, and with ?current= the selectable targets.
func PipelineStages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if current := strings.TrimSpace(r.URL.Query().Get("current")); current != "" {
			responses.WriteSuccess(w, pipeline.SelectableTargets(current))
			return
		}
		responses.WriteSuccess(w, pipeline.Stages())
	}
}

type applicationRequest struct {
	Type        string  `json:"type" validate:"required"`
	CompanyName string  `json:"company_name" validate:"required,max=200"`
	ContactName string  `json:"contact_name" validate:"required,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=120"`
	State       *string `json:"state,omitempty" validate:"omitempty,max=60"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// PublicApplication is the unauthenticated partner intake form; new partners
// start at the application stage.
func PublicApplication(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload applicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pt, err := enums.ParsePartnerType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid partner type"))
			return
		}
		created, err := svc.Create(r.Context(), partners.CreateInput{
			Type:        pt,
			CompanyName: validators.SanitizeString(payload.CompanyName, 200),
			ContactName: validators.SanitizeString(payload.ContactName, 200),
			Email:       payload.Email,
			Phone:       payload.Phone,
			City:        payload.City,
			State:       payload.State,
			Notes:       payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"id":             created.ID,
			"partner_code":   created.PartnerCode,
			"pipeline_stage": created.PipelineStage,
		})
	}
}
