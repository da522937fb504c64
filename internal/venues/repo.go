package venues

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
)

// Repository handles venue and device persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to venue operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new venue.
func (r *Repository) Create(ctx context.Context, venue *models.Venue) error {
	if venue == nil {
		return fmt.Errorf("venue is required")
	}
	return r.db.WithContext(ctx).Create(venue).Error
}

// ListByPartner returns the venues owned by a partner, oldest first.
func (r *Repository) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Venue, error) {
	var rows []models.Venue
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDevicesByPartner returns every device deployed for a partner.
func (r *Repository) ListDevicesByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Device, error) {
	var rows []models.Device
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("serial ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateDevice persists a device row.
func (r *Repository) CreateDevice(ctx context.Context, device *models.Device) error {
	if device == nil {
		return fmt.Errorf("device is required")
	}
	return r.db.WithContext(ctx).Create(device).Error
}
