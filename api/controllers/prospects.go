package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/prospects"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// AdminProspectList filters by ?type=, ?status= and a free-text ?search=.
func AdminProspectList(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := prospects.ListFilter{Search: validators.SanitizeString(q.Get("search"), 100)}
		if raw := strings.TrimSpace(q.Get("type")); raw != "" {
			pt, err := enums.ParsePartnerType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid prospect type"))
				return
			}
			filter.Type = pt
		}
		if raw := strings.TrimSpace(q.Get("status")); raw != "" {
			st, err := enums.ParseProspectStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid prospect status"))
				return
			}
			filter.Status = st
		}
		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminProspectGet(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
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

type prospectCreateRequest struct {
	Type           string           `json:"type" validate:"required"`
	CompanyName    string           `json:"company_name" validate:"required,max=200"`
	ContactName    string           `json:"contact_name" validate:"required,max=200"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          *string          `json:"phone,omitempty"`
	Source         *string          `json:"source,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
}

func AdminProspectCreate(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload prospectCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pt, err := enums.ParsePartnerType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid prospect type"))
			return
		}
		created, err := svc.Create(r.Context(), prospects.CreateInput{
			Type:           pt,
			CompanyName:    payload.CompanyName,
			ContactName:    payload.ContactName,
			Email:          payload.Email,
			Phone:          payload.Phone,
			Source:         payload.Source,
			Notes:          payload.Notes,
			EstimatedValue: payload.EstimatedValue,
			ActorID:        actorID(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type prospectPatchRequest struct {
	Status         *string          `json:"status,omitempty"`
	CompanyName    *string          `json:"company_name,omitempty" validate:"omitempty,min=1,max=200"`
	ContactName    *string          `json:"contact_name,omitempty"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	Source         *string          `json:"source,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
}

// AdminProspectPatch updates a prospect; moving it to won converts it.
func AdminProspectPatch(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload prospectPatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := prospects.UpdateInput{
			CompanyName:    payload.CompanyName,
			ContactName:    payload.ContactName,
			Email:          payload.Email,
			Phone:          payload.Phone,
			Source:         payload.Source,
			Notes:          payload.Notes,
			EstimatedValue: payload.EstimatedValue,
			ActorID:        actorID(r),
		}
		if payload.Status != nil {
			st, err := enums.ParseProspectStatus(strings.TrimSpace(*payload.Status))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid prospect status"))
				return
			}
			input.Status = &st
		}
		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type prospectActivityRequest struct {
	Kind    string `json:"kind" validate:"required"`
	Summary string `json:"summary" validate:"required,max=2000"`
}

func AdminProspectActivity(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload prospectActivityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.AddActivity(r.Context(), id, prospects.ActivityInput{
			Kind:    strings.ToLower(strings.TrimSpace(payload.Kind)),
			Summary: payload.Summary,
			ActorID: actorID(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// AdminProspectInvite emails the prospect a portal sign-up link.
func AdminProspectInvite(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Invite(r.Context(), id, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminProspectConvert(svc prospects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Convert(r.Context(), id, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
