package prospects

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Repository persists CRM prospects and their activity log.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, prospect *models.Prospect) error {
	if prospect == nil {
		return fmt.Errorf("prospect is required")
	}
	return r.db.WithContext(ctx).Create(prospect).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Prospect, error) {
	var prospect models.Prospect
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&prospect).Error; err != nil {
		return nil, err
	}
	return &prospect, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Prospect, error) {
	q := r.db.WithContext(ctx).Model(&models.Prospect{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(company_name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	var rows []models.Prospect
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Prospect{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkConverted links the prospect to partnerID. It reports false when the
// prospect was already linked, so a prospect converts at most once.
func (r *Repository) MarkConverted(ctx context.Context, id, partnerID uuid.UUID, status enums.ProspectStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Prospect{}).
		Where("id = ? AND converted_partner_id IS NULL", id).
		Updates(map[string]any{
			"converted_partner_id": partnerID,
			"status":               status,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AppendActivity inserts a log entry. Entries are never updated or deleted.
func (r *Repository) AppendActivity(ctx context.Context, activity *models.ProspectActivity) error {
	if activity == nil {
		return fmt.Errorf("activity is required")
	}
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *Repository) ListActivities(ctx context.Context, prospectID uuid.UUID) ([]models.ProspectActivity, error) {
	var rows []models.ProspectActivity
	err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
