package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/venues"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

type partnerLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

type venueLoader interface {
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Venue, error)
	ListDevicesByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Device, error)
}

type earningsLoader interface {
	ListCommissions(ctx context.Context, partnerID uuid.UUID) ([]models.Commission, error)
	ListPayments(ctx context.Context, partnerID uuid.UUID) ([]models.Payment, error)
}

// Service builds the partner portal views.
type Service interface {
	Dashboard(ctx context.Context, partnerID uuid.UUID) (*DashboardDTO, error)
}

type service struct {
	partners partnerLoader
	venues   venueLoader
	earnings earningsLoader
	now      func() time.Time
}

// NewService builds the portal service.
func NewService(partners partnerLoader, venues venueLoader, earnings earningsLoader) (Service, error) {
	if partners == nil || venues == nil || earnings == nil {
		return nil, fmt.Errorf("portal service requires partner, venue and earnings repositories")
	}
	return &service{partners: partners, venues: venues, earnings: earnings, now: time.Now}, nil
}

// DeviceDTO is a device row on the dashboard.
type DeviceDTO struct {
	ID          uuid.UUID          `json:"id"`
	VenueID     uuid.UUID          `json:"venue_id"`
	Serial      string             `json:"serial"`
	Status      enums.DeviceStatus `json:"status"`
	DataUsageMB decimal.Decimal    `json:"data_usage_mb"`
	LastSeenAt  *time.Time         `json:"last_seen_at,omitempty"`
}

// CommissionDTO is a commission row on the dashboard.
type CommissionDTO struct {
	ID          uuid.UUID              `json:"id"`
	VenueID     *uuid.UUID             `json:"venue_id,omitempty"`
	Amount      decimal.Decimal        `json:"amount"`
	Status      enums.CommissionStatus `json:"status"`
	PeriodStart time.Time              `json:"period_start"`
}

// PaymentDTO is a payout row on the dashboard.
type PaymentDTO struct {
	ID     uuid.UUID           `json:"id"`
	Amount decimal.Decimal     `json:"amount"`
	Status enums.PaymentStatus `json:"status"`
	PaidAt *time.Time          `json:"paid_at,omitempty"`
}

// DashboardDTO is everything the partner portal home page renders.
type DashboardDTO struct {
	Partner     partners.PartnerDTO `json:"partner"`
	Stats       PortalStats         `json:"stats"`
	Venues      []venues.VenueDTO   `json:"venues"`
	Devices     []DeviceDTO         `json:"devices"`
	Commissions []CommissionDTO     `json:"commissions"`
	Payments    []PaymentDTO        `json:"payments"`
}

func (s *service) Dashboard(ctx context.Context, partnerID uuid.UUID) (*DashboardDTO, error) {
	partner, err := s.partners.FindByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	venueRows, err := s.venues.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list venues")
	}
	deviceRows, err := s.venues.ListDevicesByPartner(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list devices")
	}
	commissionRows, err := s.earnings.ListCommissions(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list commissions")
	}
	paymentRows, err := s.earnings.ListPayments(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	out := &DashboardDTO{
		Partner:     *partners.FromModel(partner),
		Stats:       BuildPortalStats(partner, venueRows, deviceRows, commissionRows, paymentRows, s.now()),
		Venues:      make([]venues.VenueDTO, 0, len(venueRows)),
		Devices:     make([]DeviceDTO, 0, len(deviceRows)),
		Commissions: make([]CommissionDTO, 0, len(commissionRows)),
		Payments:    make([]PaymentDTO, 0, len(paymentRows)),
	}
	for _, v := range venueRows {
		out.Venues = append(out.Venues, venues.FromModel(v))
	}
	for _, d := range deviceRows {
		out.Devices = append(out.Devices, DeviceDTO{
			ID:          d.ID,
			VenueID:     d.VenueID,
			Serial:      d.Serial,
			Status:      d.Status,
			DataUsageMB: d.DataUsageMB,
			LastSeenAt:  d.LastSeenAt,
		})
	}
	for _, c := range commissionRows {
		out.Commissions = append(out.Commissions, CommissionDTO{
			ID:          c.ID,
			VenueID:     c.VenueID,
			Amount:      c.Amount,
			Status:      c.Status,
			PeriodStart: c.PeriodStart,
		})
	}
	for _, p := range paymentRows {
		out.Payments = append(out.Payments, PaymentDTO{
			ID:     p.ID,
			Amount: p.Amount,
			Status: p.Status,
			PaidAt: p.PaidAt,
		})
	}
	return out, nil
}
