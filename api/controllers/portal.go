package controllers

import (
	"net/http"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/checkout"
	"github.com/angelmondragon/partnerhub-backend/internal/portal"
	"github.com/angelmondragon/partnerhub-backend/internal/venues"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// PortalDashboard returns the signed-in partner's stats, venues, devices and earnings.
func PortalDashboard(svc portal.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := partnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dash, err := svc.Dashboard(r.Context(), pid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dash)
	}
}

func PortalVenueList(svc venues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := partnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), pid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type venueCreateRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	AddressLine1 string  `json:"address_line1" validate:"required,max=200"`
	City         string  `json:"city" validate:"required,max=120"`
	State        string  `json:"state" validate:"required,max=60"`
	PostalCode   *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	DeviceCount  int     `json:"device_count" validate:"min=0,max=1000"`
}

// PortalVenueCreate adds a location for review; it starts pending.
func PortalVenueCreate(svc venues.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := partnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload venueCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), pid, venues.CreateInput{
			Name:         payload.Name,
			AddressLine1: payload.AddressLine1,
			City:         payload.City,
			State:        payload.State,
			PostalCode:   payload.PostalCode,
			DeviceCount:  payload.DeviceCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type checkoutRequest struct {
	Items []checkout.Item `json:"items" validate:"required,min=1,dive"`
}

// PortalCheckout opens a hosted checkout session priced at partner price.
func PortalCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid, err := partnerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session, err := svc.CreateSession(r.Context(), checkout.Input{PartnerID: pid, Items: payload.Items})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}
