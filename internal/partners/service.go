package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/internal/pipeline"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/partnerhub-backend/pkg/db/types"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

// Activity kinds recorded on the partner audit trail.
const (
	ActivityCreated  = "created"
	ActivityApproved = "approved"
	ActivityDenied   = "denied"
	ActivityStageSet = "stage_set"
)

const (
	partnerCodePrefix = "PH-"
	partnerCodeLen    = 8
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes partner pipeline operations. Concurrent writers on the same
// partner race at the row level and the last write wins.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]PartnerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PartnerDetailDTO, error)
	Create(ctx context.Context, input CreateInput) (*PartnerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*PartnerDTO, error)
	Approve(ctx context.Context, id uuid.UUID, input ApproveInput) (*PartnerDTO, error)
	Deny(ctx context.Context, id uuid.UUID, input DenyInput) (*PartnerDTO, error)
	SetStage(ctx context.Context, id uuid.UUID, input SetStageInput) (*PartnerDTO, error)
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService builds the partner service.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateInput captures an application intake or a CRM conversion.
type CreateInput struct {
	Type         enums.PartnerType
	CompanyName  string
	ContactName  string
	Email        string
	Phone        *string
	City         *string
	State        *string
	Notes        *string
	ProspectID   *uuid.UUID
	ActorID      *string
	ActivityNote *string
}

// UpdateInput carries the mutable partner fields. Nil fields are left alone.
type UpdateInput struct {
	CompanyName    *string
	ContactName    *string
	Email          *string
	Phone          *string
	City           *string
	State          *string
	Notes          *string
	TrialStartDate *string
	TrialEndDate   *string
	TipaltiPayeeID *string
	TipaltiStatus  *string
}

// ApproveInput describes a review approval, optionally jumping ahead.
type ApproveInput struct {
	ReviewType  enums.ReviewType
	TargetStage *string
	SkipReason  *string
	ActorID     *string
}

// DenyInput describes a review denial.
type DenyInput struct {
	ReviewType enums.ReviewType
	Note       *string
	ActorID    *string
}

// SetStageInput is a manual stage override.
type SetStageInput struct {
	Stage   string
	Note    *string
	ActorID *string
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]PartnerDTO, error) {
	if filter.Stage != "" && !pipeline.IsValidStage(filter.Stage) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown pipeline stage")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partners")
	}
	out := make([]PartnerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PartnerDetailDTO, error) {
	partner, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	venues, err := s.repo.ListVenues(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partner venues")
	}
	activities, err := s.repo.ListActivities(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list partner activity")
	}
	return &PartnerDetailDTO{
		PartnerDTO: *FromModel(partner),
		Venues:     venueSummaries(venues),
		Activities: activityDTOs(activities),
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*PartnerDTO, error) {
	var partner *models.Partner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := Enroll(ctx, s.repo.WithTx(tx), input)
		partner = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromModel(partner), nil
}

// Enroll validates input and inserts a new partner with its created activity
// through repo. Callers that already hold a transaction pass a tx-bound repo.
func Enroll(ctx context.Context, repo *Repository, input CreateInput) (*models.Partner, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid partner type")
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if strings.TrimSpace(input.CompanyName) == "" || strings.TrimSpace(input.ContactName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company and contact name are required")
	}

	partner := NewPartnerModel(input)
	partner.Email = email

	if err := repo.Create(ctx, partner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
	}
	if err := appendActivity(ctx, repo, partner.ID, ActivityCreated, "", partner.PipelineStage, nil, nil, input.ActorID, input.ActivityNote); err != nil {
		return nil, err
	}
	return partner, nil
}

// NewPartnerModel builds a partner at the start of the pipeline with every
// review and document status at its initial value.
func NewPartnerModel(input CreateInput) *models.Partner {
	return &models.Partner{
		ID:                   uuid.New(),
		PartnerCode:          newPartnerCode(),
		Type:                 input.Type,
		CompanyName:          strings.TrimSpace(input.CompanyName),
		ContactName:          strings.TrimSpace(input.ContactName),
		Email:                strings.TrimSpace(input.Email),
		Phone:                input.Phone,
		City:                 input.City,
		State:                input.State,
		Notes:                input.Notes,
		ProspectID:           input.ProspectID,
		PipelineStage:        pipeline.StageApplication,
		InitialReviewStatus:  enums.ReviewStatusPending,
		PostCallReviewStatus: enums.ReviewStatusPending,
		LOIStatus:            enums.DocumentStatusNotSent,
		ContractStatus:       enums.DocumentStatusNotSent,
		NDAStatus:            enums.DocumentStatusNotSent,
		SkippedStages:        dbtypes.StringList{},
	}
}

func newPartnerCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return partnerCodePrefix + strings.ToUpper(raw[:partnerCodeLen])
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*PartnerDTO, error) {
	updates, err := input.columns()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		partner, err := s.load(ctx, s.repo, id)
		if err != nil {
			return nil, err
		}
		return FromModel(partner), nil
	}
	var updated *models.Partner
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := checkTrialWindow(current, updates); err != nil {
			return err
		}
		if err := repo.UpdateFields(ctx, id, updates); err != nil {
			return mapWriteError(err, "update partner")
		}
		updated, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, input ApproveInput) (*PartnerDTO, error) {
	column, err := reviewColumn(input.ReviewType)
	if err != nil {
		return nil, err
	}

	target := pipeline.DefaultApprovalTarget(input.ReviewType)
	if input.TargetStage != nil {
		target = strings.TrimSpace(*input.TargetStage)
		if !pipeline.IsStage(target) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown target stage")
		}
	}
	reason := trimmedOrNil(input.SkipReason)

	var updated *models.Partner
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		partner, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}

		from := partner.PipelineStage
		updates := map[string]any{
			column:           enums.ReviewStatusApproved,
			"pipeline_stage": target,
		}

		var skipped dbtypes.StringList
		if input.TargetStage != nil && reason != nil {
			skipped = dbtypes.StringList(pipeline.ComputeSkippedStages(from, target))
			updates["skip_reason"] = *reason
			updates["skipped_stages"] = skipped
		}

		if err := repo.UpdateFields(ctx, id, updates); err != nil {
			return mapWriteError(err, "approve partner")
		}
		if err := appendActivity(ctx, repo, id, ActivityApproved, from, target, reason, skipped, input.ActorID, nil); err != nil {
			return err
		}

		updated, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Deny(ctx context.Context, id uuid.UUID, input DenyInput) (*PartnerDTO, error) {
	column, err := reviewColumn(input.ReviewType)
	if err != nil {
		return nil, err
	}

	var updated *models.Partner
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		partner, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		updates := map[string]any{
			column:           enums.ReviewStatusDenied,
			"pipeline_stage": pipeline.StageInactive,
		}
		if err := repo.UpdateFields(ctx, id, updates); err != nil {
			return mapWriteError(err, "deny partner")
		}
		if err := appendActivity(ctx, repo, id, ActivityDenied, partner.PipelineStage, pipeline.StageInactive, nil, nil, input.ActorID, input.Note); err != nil {
			return err
		}
		updated, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// SetStage moves a partner to any stage, backward included. Only membership in
// the registry (or the inactive sentinel) is checked.
func (s *service) SetStage(ctx context.Context, id uuid.UUID, input SetStageInput) (*PartnerDTO, error) {
	stage := strings.TrimSpace(input.Stage)
	if !pipeline.IsValidStage(stage) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown pipeline stage")
	}

	var updated *models.Partner
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		partner, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := repo.UpdateFields(ctx, id, map[string]any{"pipeline_stage": stage}); err != nil {
			return mapWriteError(err, "set partner stage")
		}
		if err := appendActivity(ctx, repo, id, ActivityStageSet, partner.PipelineStage, stage, nil, nil, input.ActorID, input.Note); err != nil {
			return err
		}
		updated, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Partner, error) {
	partner, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	return partner, nil
}

func appendActivity(ctx context.Context, repo *Repository, partnerID uuid.UUID, kind, from, to string, reason *string, skipped dbtypes.StringList, actor, note *string) error {
	entry := &models.PartnerActivity{
		PartnerID:     partnerID,
		Kind:          kind,
		FromStage:     from,
		ToStage:       to,
		SkipReason:    reason,
		SkippedStages: skipped,
		ActorID:       actor,
		Note:          note,
	}
	if err := repo.AppendActivity(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record partner activity")
	}
	return nil
}

func reviewColumn(reviewType enums.ReviewType) (string, error) {
	switch reviewType {
	case enums.ReviewTypeInitial:
		return "initial_review_status", nil
	case enums.ReviewTypePostCall:
		return "post_call_review_status", nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid review type")
	}
}

func mapWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
