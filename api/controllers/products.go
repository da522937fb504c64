package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	"github.com/angelmondragon/partnerhub-backend/api/validators"
	"github.com/angelmondragon/partnerhub-backend/internal/products"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const maxImportRows = 1000

func productFilter(r *http.Request) products.ListFilter {
	q := r.URL.Query()
	return products.ListFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   validators.SanitizeString(q.Get("search"), 100),
	}
}

// AdminProductList returns the whole catalog, inactive rows included.
func AdminProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, func(f *products.ListFilter) {})
}

// PublicProductList returns active products for the storefront.
func PublicProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, func(f *products.ListFilter) { f.ActiveOnly = true })
}

// PortalProductList returns products approved for partner purchase.
func PortalProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, func(f *products.ListFilter) {
		f.ActiveOnly = true
		f.ApprovedOnly = true
	})
}

func listProducts(svc products.Service, logg *logger.Logger, scope func(*products.ListFilter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := productFilter(r)
		scope(&filter)
		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type productCreateRequest struct {
	SKU           string           `json:"sku" validate:"required,max=64"`
	Name          string           `json:"name" validate:"required,max=200"`
	Description   *string          `json:"description,omitempty"`
	Category      string           `json:"category,omitempty" validate:"omitempty,max=80"`
	Price         decimal.Decimal  `json:"price"`
	MSRP          *decimal.Decimal `json:"msrp,omitempty"`
	MarkupPercent *decimal.Decimal `json:"markup_percent,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags          []string         `json:"tags,omitempty" validate:"max=20"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), products.ProductInput{
			SKU:           payload.SKU,
			Name:          payload.Name,
			Description:   payload.Description,
			Category:      payload.Category,
			Price:         payload.Price,
			MSRP:          payload.MSRP,
			MarkupPercent: payload.MarkupPercent,
			ImageURL:      payload.ImageURL,
			Tags:          payload.Tags,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type productUpdateRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=80"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	MSRP          *decimal.Decimal `json:"msrp,omitempty"`
	MarkupPercent *decimal.Decimal `json:"markup_percent,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Tags          *[]string        `json:"tags,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), id, products.UpdateInput{
			Name:          payload.Name,
			Description:   payload.Description,
			Category:      payload.Category,
			Price:         payload.Price,
			MSRP:          payload.MSRP,
			MarkupPercent: payload.MarkupPercent,
			ImageURL:      payload.ImageURL,
			Tags:          payload.Tags,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
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

type productImportRequest struct {
	Rows []products.ImportRow `json:"rows" validate:"required"`
}

// AdminProductImport ingests rows already parsed from a spreadsheet.
func AdminProductImport(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productImportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(payload.Rows) > maxImportRows {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many rows").
				WithDetails(map[string]any{"max": maxImportRows, "got": len(payload.Rows)}))
			return
		}
		result, err := svc.Import(r.Context(), payload.Rows)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type productApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// AdminProductApproval toggles whether partners may purchase the product.
func AdminProductApproval(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productApprovalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.SetApproval(r.Context(), id, *payload.Approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
