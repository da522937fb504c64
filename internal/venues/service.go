package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

type partnerLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

// Service exposes partner-owned venue operations.
type Service interface {
	List(ctx context.Context, partnerID uuid.UUID) ([]VenueDTO, error)
	Create(ctx context.Context, partnerID uuid.UUID, input CreateInput) (*VenueDTO, error)
}

type service struct {
	repo     *Repository
	partners partnerLoader
}

// NewService builds the venue service.
func NewService(repo *Repository, partners partnerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("venue repository required")
	}
	if partners == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	return &service{repo: repo, partners: partners}, nil
}

// CreateInput is a venue submitted from the partner portal.
type CreateInput struct {
	Name         string
	AddressLine1 string
	City         string
	State        string
	PostalCode   *string
	DeviceCount  int
}

// VenueDTO is the API view of a venue.
type VenueDTO struct {
	ID             uuid.UUID         `json:"id"`
	PartnerID      uuid.UUID         `json:"partner_id"`
	Name           string            `json:"name"`
	AddressLine1   string            `json:"address_line1"`
	City           string            `json:"city"`
	State          string            `json:"state"`
	PostalCode     *string           `json:"postal_code,omitempty"`
	DeviceCount    int               `json:"device_count"`
	Status         enums.VenueStatus `json:"status"`
	TrialStartDate *time.Time        `json:"trial_start_date,omitempty"`
	TrialEndDate   *time.Time        `json:"trial_end_date,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// FromModel maps a venue row to its API view.
func FromModel(v models.Venue) VenueDTO {
	return VenueDTO{
		ID:             v.ID,
		PartnerID:      v.PartnerID,
		Name:           v.Name,
		AddressLine1:   v.AddressLine1,
		City:           v.City,
		State:          v.State,
		PostalCode:     v.PostalCode,
		DeviceCount:    v.DeviceCount,
		Status:         v.Status,
		TrialStartDate: v.TrialStartDate,
		TrialEndDate:   v.TrialEndDate,
		CreatedAt:      v.CreatedAt,
	}
}

func (s *service) List(ctx context.Context, partnerID uuid.UUID) ([]VenueDTO, error) {
	rows, err := s.repo.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list venues")
	}
	out := make([]VenueDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, FromModel(v))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, partnerID uuid.UUID, input CreateInput) (*VenueDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.AddressLine1) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "venue name and address are required")
	}
	if input.DeviceCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device count cannot be negative")
	}
	if _, err := s.partners.FindByID(ctx, partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}

	venue := &models.Venue{
		PartnerID:    partnerID,
		Name:         name,
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		City:         strings.TrimSpace(input.City),
		State:        strings.ToUpper(strings.TrimSpace(input.State)),
		PostalCode:   input.PostalCode,
		DeviceCount:  input.DeviceCount,
		Status:       enums.VenueStatusPending,
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create venue")
	}
	dto := FromModel(*venue)
	return &dto, nil
}
