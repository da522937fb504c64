package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

// Service exposes catalog operations for the store, admin and portal views.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, rows []ImportRow) (*ImportResult, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds the product service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*product)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	product, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := FromModel(*product)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	updates, err := input.columns()
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
			return nil, mapWriteError(err, "update product")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "delete product")
	}
	return nil
}

// SetApproval toggles whether partners see the product in the portal store.
func (s *service) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*ProductDTO, error) {
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"partner_approved": approved}); err != nil {
		return nil, mapWriteError(err, "set product approval")
	}
	return s.Get(ctx, id)
}

// Import creates every row whose SKU is new. Rows with a SKU already in the
// catalog, or repeated earlier in the same batch, are skipped; invalid rows or
// failed inserts are counted as failed. The batch never aborts.
func (s *service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}
	if len(rows) == 0 {
		return result, nil
	}

	skus := make([]string, 0, len(rows))
	for _, r := range rows {
		if sku := normalizeSKU(r.SKU); sku != "" {
			skus = append(skus, sku)
		}
	}
	seen, err := s.repo.ExistingSKUs(ctx, skus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load existing skus")
	}

	for i, row := range rows {
		line := i + 1
		input, err := row.toInput()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, messageOf(err)))
			continue
		}
		if seen[input.SKU] {
			result.Skipped++
			continue
		}
		product, err := input.toModel()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, messageOf(err)))
			continue
		}
		if err := s.repo.Create(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				seen[input.SKU] = true
				result.Skipped++
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		seen[input.SKU] = true
		result.Created++
	}
	return result, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (in ProductInput) toModel() (*models.Product, error) {
	sku := normalizeSKU(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validatePrice("price", in.Price); err != nil {
		return nil, err
	}
	if in.MSRP != nil {
		if err := validatePrice("msrp", *in.MSRP); err != nil {
			return nil, err
		}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}
	return &models.Product{
		SKU:           sku,
		Name:          name,
		Description:   in.Description,
		Category:      category,
		Price:         in.Price.Round(2),
		MSRP:          in.MSRP,
		MarkupPercent: in.MarkupPercent,
		ImageURL:      in.ImageURL,
		Tags:          pq.StringArray(cleanTags(in.Tags)),
		IsActive:      active,
	}, nil
}

func (in UpdateInput) columns() (map[string]any, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if err := validatePrice("price", *in.Price); err != nil {
			return nil, err
		}
		updates["price"] = in.Price.Round(2)
	}
	if in.MSRP != nil {
		if err := validatePrice("msrp", *in.MSRP); err != nil {
			return nil, err
		}
		updates["msrp"] = *in.MSRP
	}
	if in.MarkupPercent != nil {
		updates["markup_percent"] = *in.MarkupPercent
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.Tags != nil {
		updates["tags"] = pq.StringArray(cleanTags(*in.Tags))
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	return updates, nil
}

func (r ImportRow) toInput() (ProductInput, error) {
	price, err := parseDecimal("price", r.Price, true)
	if err != nil {
		return ProductInput{}, err
	}
	msrp, err := parseDecimal("msrp", r.MSRP, false)
	if err != nil {
		return ProductInput{}, err
	}
	markup, err := parseDecimal("markup_percent", r.Markup, false)
	if err != nil {
		return ProductInput{}, err
	}
	in := ProductInput{
		SKU:           normalizeSKU(r.SKU),
		Name:          r.Name,
		Category:      r.Category,
		MSRP:          msrp,
		MarkupPercent: markup,
		Tags:          r.Tags,
	}
	if price != nil {
		in.Price = *price
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		in.Description = &d
	}
	if u := strings.TrimSpace(r.ImageURL); u != "" {
		in.ImageURL = &u
	}
	if in.SKU == "" {
		return ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	return in, nil
}

func parseDecimal(field, raw string, required bool) (*decimal.Decimal, error) {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		if required {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" is not a number")
	}
	return &d, nil
}

func validatePrice(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, field+" cannot be negative")
	}
	return nil
}

func normalizeSKU(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func messageOf(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}

func mapWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
