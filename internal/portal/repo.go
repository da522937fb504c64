package portal

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
)

// Repository reads the earnings records behind the portal dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to portal reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCommissions returns a partner's commissions, newest period first.
func (r *Repository) ListCommissions(ctx context.Context, partnerID uuid.UUID) ([]models.Commission, error) {
	var rows []models.Commission
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("period_start DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPayments returns a partner's payouts, newest first.
func (r *Repository) ListPayments(ctx context.Context, partnerID uuid.UUID) ([]models.Payment, error) {
	var rows []models.Payment
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
