package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Repository persists template registrations and submissions.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to document operations.
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

// UpsertTemplate inserts or replaces the registration for a template type.
func (r *Repository) UpsertTemplate(ctx context.Context, tpl *models.DocumentTemplate) error {
	if tpl == nil {
		return fmt.Errorf("template is required")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "template_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "html", "docuseal_template_id", "updated_at"}),
		}).
		Create(tpl).Error
}

// FindTemplate loads the registration for a template type.
func (r *Repository) FindTemplate(ctx context.Context, t enums.TemplateType) (*models.DocumentTemplate, error) {
	var tpl models.DocumentTemplate
	if err := r.db.WithContext(ctx).Where("template_type = ?", t).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ListTemplates returns every stored registration ordered by type.
func (r *Repository) ListTemplates(ctx context.Context) ([]models.DocumentTemplate, error) {
	var rows []models.DocumentTemplate
	if err := r.db.WithContext(ctx).
		Omit("html").
		Order("template_type ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateSubmission records a document sent for signature.
func (r *Repository) CreateSubmission(ctx context.Context, sub *models.DocumentSubmission) error {
	if sub == nil {
		return fmt.Errorf("submission is required")
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

// FindSubmissionByExternalID loads a submission by the provider's id.
func (r *Repository) FindSubmissionByExternalID(ctx context.Context, externalID string) (*models.DocumentSubmission, error) {
	var sub models.DocumentSubmission
	if err := r.db.WithContext(ctx).Where("external_submission_id = ?", externalID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubmissionStatus sets the status of one submission.
func (r *Repository) UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status enums.DocumentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.DocumentSubmission{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListSubmissions returns the submissions sent to a partner, newest first.
func (r *Repository) ListSubmissions(ctx context.Context, partnerID uuid.UUID) ([]models.DocumentSubmission, error) {
	var rows []models.DocumentSubmission
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
