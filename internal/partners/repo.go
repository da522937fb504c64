package partners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
)

// Repository handles partner persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to partner operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository scoped to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create persists a new partner row.
func (r *Repository) Create(ctx context.Context, partner *models.Partner) error {
	if partner == nil {
		return fmt.Errorf("partner is required")
	}
	return r.db.WithContext(ctx).Create(partner).Error
}

// FindByID loads a partner by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindByEmail loads a partner by contact email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// List returns partners newest first, optionally narrowed to one stage.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Partner, error) {
	q := r.db.WithContext(ctx).Model(&models.Partner{})
	if filter.Stage != "" {
		q = q.Where("pipeline_stage = ?", filter.Stage)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var rows []models.Partner
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFields applies all columns in a single UPDATE statement.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Partner{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendActivity records an audit entry. Entries are never updated.
func (r *Repository) AppendActivity(ctx context.Context, activity *models.PartnerActivity) error {
	if activity == nil {
		return fmt.Errorf("activity is required")
	}
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListActivities returns the audit trail for a partner, oldest first.
func (r *Repository) ListActivities(ctx context.Context, partnerID uuid.UUID) ([]models.PartnerActivity, error) {
	var rows []models.PartnerActivity
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListVenues returns the venues owned by a partner.
func (r *Repository) ListVenues(ctx context.Context, partnerID uuid.UUID) ([]models.Venue, error) {
	var rows []models.Venue
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
