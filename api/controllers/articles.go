package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/articles"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// AdminArticleList returns articles, filtered by ?status= when given.
func AdminArticleList(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("status")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type articleUpdateRequest struct {
	ID              uuid.UUID `json:"id" validate:"required"`
	Status          *string   `json:"status,omitempty"`
	Title           *string   `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Excerpt         *string   `json:"excerpt,omitempty"`
	Body            *string   `json:"body,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
}

// AdminArticleUpdate moderates or edits an article identified in the body.
func AdminArticleUpdate(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload articleUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := articles.UpdateInput{
			Title:           payload.Title,
			Excerpt:         payload.Excerpt,
			Body:            payload.Body,
			RejectionReason: payload.RejectionReason,
		}
		if payload.Status != nil {
			status, err := enums.ParseArticleStatus(strings.TrimSpace(*payload.Status))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid article status"))
				return
			}
			input.Status = &status
		}
		updated, err := svc.Update(r.Context(), payload.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminArticleDelete removes the article named by ?id=.
func AdminArticleDelete(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(r.URL.Query().Get("id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true, "id": id})
	}
}

// PublicArticleList serves published articles only.
func PublicArticleList(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListPublished(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type articleSubmitRequest struct {
	AuthorName string  `json:"author_name,omitempty" validate:"omitempty,max=120"`
	Title      string  `json:"title" validate:"required,max=300"`
	Excerpt    *string `json:"excerpt,omitempty" validate:"omitempty,max=1000"`
	Body       string  `json:"body" validate:"required"`
}

// PortalArticleSubmit queues a partner-written article for moderation.
func PortalArticleSubmit(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := partnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload articleSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Submit(r.Context(), articles.SubmitInput{
			PartnerID:  pid,
			AuthorName: payload.AuthorName,
			Title:      payload.Title,
			Excerpt:    payload.Excerpt,
			Body:       payload.Body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
