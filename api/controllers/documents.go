package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/documents"
	"github.com/angelmondragon/partnerhub-backend/pkg/docuseal"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const (
	webhookSecretHeader = "X-DocuSeal-Secret"
	webhookReplayScope  = "docuseal"
	webhookReplayTTL    = 72 * time.Hour
	maxWebhookBody      = 1 << 20
)

func AdminTemplateList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListTemplates(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminTemplatePreview renders a template type without calling the provider.
func AdminTemplatePreview(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := enums.ParseTemplateType(chi.URLParam(r, "type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid template type"))
			return
		}
		preview, err := svc.Preview(t)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

type createTemplateRequest struct {
	TemplateType string `json:"template_type" validate:"required"`
}

func AdminTemplateCreate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTemplateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		t, err := enums.ParseTemplateType(payload.TemplateType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid template type"))
			return
		}
		result, err := svc.CreateTemplate(r.Context(), t)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminTemplateCreateAll registers every template type; per-type failures are
// reported in the body with a 200.
func AdminTemplateCreateAll(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, documents.Summarize(svc.CreateAll(r.Context())))
	}
}

type sendDocumentRequest struct {
	TemplateType string    `json:"template_type" validate:"required"`
	PartnerID    uuid.UUID `json:"partner_id" validate:"required"`
	Email        string    `json:"email,omitempty" validate:"omitempty,email"`
	Name         string    `json:"name,omitempty"`
}

func AdminDocumentSend(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendDocumentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		t, err := enums.ParseTemplateType(payload.TemplateType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationErr(err, "invalid template type"))
			return
		}
		sub, err := svc.SendDocument(r.Context(), documents.SendInput{
			TemplateType: t,
			PartnerID:    payload.PartnerID,
			Email:        payload.Email,
			Name:         payload.Name,
			ActorID:      actorID(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sub)
	}
}

// ReplayGuard remembers processed webhook deliveries.
type ReplayGuard interface {
	ClaimOnce(ctx context.Context, scope, id string, ttl time.Duration) (bool, error)
	ReleaseClaim(ctx context.Context, scope, id string) error
}

// DocuSealWebhook applies submitter events to submissions and partners.
// Redelivered events are acknowledged without reprocessing.
func DocuSealWebhook(svc documents.Service, guard ReplayGuard, secret string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if !docuseal.VerifySecret(secret, strings.TrimSpace(r.Header.Get(webhookSecretHeader))) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook secret"))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read webhook body"))
			return
		}
		evt, err := docuseal.ParseWebhook(body)
		if err != nil {
			responses.WriteError(ctx, logg, w, validationErr(err, "invalid webhook payload"))
			return
		}

		deliveryID := fmt.Sprintf("%s:%d:%d", evt.EventType, evt.Data.SubmissionID, evt.Data.ID)
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{"event_type": evt.EventType, "submission_id": evt.Data.SubmissionID})
		}
		if guard != nil {
			first, err := guard.ClaimOnce(ctx, webhookReplayScope, deliveryID, webhookReplayTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check webhook replay"))
				return
			}
			if !first {
				if logg != nil {
					logg.Info(ctx, "docuseal.webhook.duplicate")
				}
				responses.WriteSuccess(w, map[string]any{"received": true, "duplicate": true})
				return
			}
		}

		if err := svc.HandleWebhook(ctx, *evt); err != nil {
			if guard != nil {
				if relErr := guard.ReleaseClaim(ctx, webhookReplayScope, deliveryID); relErr != nil && logg != nil {
					logg.Error(ctx, "docuseal.webhook.release_claim", relErr)
				}
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"received": true})
	}
}
