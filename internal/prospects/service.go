package prospects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/email"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// System activity kinds. Manual kinds are listed in manualKinds.
const (
	ActivityCreated      = "created"
	ActivityStatusChange = "status_change"
	ActivityInvited      = "invited"
	ActivityConverted    = "converted"
)

var manualKinds = map[string]bool{
	"note":    true,
	"call":    true,
	"email":   true,
	"meeting": true,
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service runs the CRM board. Activity entries are append-only.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProspectDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProspectDetailDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProspectDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProspectDTO, error)
	AddActivity(ctx context.Context, id uuid.UUID, input ActivityInput) (*ActivityDTO, error)
	Invite(ctx context.Context, id uuid.UUID, actorID *string) (*ProspectDTO, error)
	Convert(ctx context.Context, id uuid.UUID, actorID *string) (*ConversionDTO, error)
}

// ServiceParams wires the prospect service.
type ServiceParams struct {
	Repo      *Repository
	Partners  *partners.Repository
	Tx        txRunner
	Sender    email.Sender
	InviteURL string
	Logger    *logger.Logger
}

type service struct {
	repo      *Repository
	partners  *partners.Repository
	tx        txRunner
	sender    email.Sender
	inviteURL string
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("prospect repository required")
	}
	if params.Partners == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:      params.Repo,
		partners:  params.Partners,
		tx:        params.Tx,
		sender:    params.Sender,
		inviteURL: params.InviteURL,
		logg:      logg,
		now:       time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProspectDTO, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prospect type")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prospect status")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prospects")
	}
	out := make([]ProspectDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProspectDetailDTO, error) {
	prospect, err := load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListActivities(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prospect activity")
	}
	activities := make([]ActivityDTO, 0, len(rows))
	for _, r := range rows {
		activities = append(activities, activityFromModel(r))
	}
	return &ProspectDetailDTO{ProspectDTO: FromModel(*prospect), Activities: activities}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProspectDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prospect type")
	}
	company := strings.TrimSpace(input.CompanyName)
	contact := strings.TrimSpace(input.ContactName)
	addr := strings.ToLower(strings.TrimSpace(input.Email))
	if company == "" || contact == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company and contact name are required")
	}
	if !strings.Contains(addr, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	prospect := &models.Prospect{
		Type:           input.Type,
		Status:         enums.ProspectStatusNew,
		CompanyName:    company,
		ContactName:    contact,
		Email:          addr,
		Phone:          input.Phone,
		Source:         input.Source,
		Notes:          input.Notes,
		EstimatedValue: input.EstimatedValue,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, prospect); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create prospect")
		}
		return appendActivity(ctx, repo, prospect.ID, ActivityCreated, "Prospect created", input.ActorID)
	})
	if err != nil {
		return nil, err
	}
	dto := FromModel(*prospect)
	return &dto, nil
}

// Update applies a partial edit. Setting status to won converts the prospect
// in the same transaction when it has not been converted yet.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProspectDTO, error) {
	updates, err := input.columns()
	if err != nil {
		return nil, err
	}

	var updated *models.Prospect
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := load(ctx, repo, id)
		if err != nil {
			return err
		}

		converting := input.Status != nil && *input.Status == enums.ProspectStatusWon && current.ConvertedPartnerID == nil
		if converting {
			delete(updates, "status")
		}
		if len(updates) > 0 {
			if err := repo.UpdateFields(ctx, id, updates); err != nil {
				return mapWriteError(err, "update prospect")
			}
		}
		if input.Status != nil && *input.Status != current.Status && !converting {
			summary := fmt.Sprintf("Status changed from %s to %s", current.Status, *input.Status)
			if err := appendActivity(ctx, repo, id, ActivityStatusChange, summary, input.ActorID); err != nil {
				return err
			}
		}
		if converting {
			if _, err := s.convertTx(ctx, tx, id, input.ActorID); err != nil {
				return err
			}
		}
		updated, err = load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	dto := FromModel(*updated)
	return &dto, nil
}

func (s *service) AddActivity(ctx context.Context, id uuid.UUID, input ActivityInput) (*ActivityDTO, error) {
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if !manualKinds[kind] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid activity kind %q", input.Kind))
	}
	summary := strings.TrimSpace(input.Summary)
	if summary == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "summary is required")
	}
	if _, err := load(ctx, s.repo, id); err != nil {
		return nil, err
	}
	entry := &models.ProspectActivity{
		ProspectID: id,
		Kind:       kind,
		Summary:    summary,
		ActorID:    input.ActorID,
	}
	if err := s.repo.AppendActivity(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record prospect activity")
	}
	dto := activityFromModel(*entry)
	return &dto, nil
}

// Invite emails the portal sign-up link. Nothing is recorded when delivery fails.
func (s *service) Invite(ctx context.Context, id uuid.UUID, actorID *string) (*ProspectDTO, error) {
	prospect, err := load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	msg, err := buildInvite(prospect, s.inviteURL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build invite")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"prospect_id": id.String()})
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logg.Error(logCtx, "prospect invite failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send invite")
	}

	var updated *models.Prospect
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateFields(ctx, id, map[string]any{"invited_at": s.now().UTC()}); err != nil {
			return mapWriteError(err, "mark prospect invited")
		}
		if err := appendActivity(ctx, repo, id, ActivityInvited, "Portal invite sent to "+prospect.Email, actorID); err != nil {
			return err
		}
		updated, err = load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(logCtx, "prospect invited")
	dto := FromModel(*updated)
	return &dto, nil
}

// Convert creates a partner at the application stage from the prospect and
// links the two. A second conversion is a state conflict.
func (s *service) Convert(ctx context.Context, id uuid.UUID, actorID *string) (*ConversionDTO, error) {
	var (
		partnerID uuid.UUID
		updated   *models.Prospect
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		pid, err := s.convertTx(ctx, tx, id, actorID)
		if err != nil {
			return err
		}
		partnerID = pid
		updated, err = load(ctx, s.repo.WithTx(tx), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"prospect_id": id.String(),
		"partner_id":  partnerID.String(),
	}), "prospect converted")
	return &ConversionDTO{Prospect: FromModel(*updated), PartnerID: partnerID}, nil
}

func (s *service) convertTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, actorID *string) (uuid.UUID, error) {
	repo := s.repo.WithTx(tx)
	prospect, err := load(ctx, repo, id)
	if err != nil {
		return uuid.Nil, err
	}
	if prospect.ConvertedPartnerID != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeStateConflict, "prospect already converted")
	}

	prospectID := prospect.ID
	note := "Converted from CRM prospect"
	partner, err := partners.Enroll(ctx, s.partners.WithTx(tx), partners.CreateInput{
		Type:         prospect.Type,
		CompanyName:  prospect.CompanyName,
		ContactName:  prospect.ContactName,
		Email:        prospect.Email,
		Phone:        prospect.Phone,
		Notes:        prospect.Notes,
		ProspectID:   &prospectID,
		ActorID:      actorID,
		ActivityNote: &note,
	})
	if err != nil {
		return uuid.Nil, err
	}

	linked, err := repo.MarkConverted(ctx, id, partner.ID, enums.ProspectStatusWon)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link converted partner")
	}
	if !linked {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeStateConflict, "prospect already converted")
	}
	summary := fmt.Sprintf("Converted to partner %s", partner.PartnerCode)
	if err := appendActivity(ctx, repo, id, ActivityConverted, summary, actorID); err != nil {
		return uuid.Nil, err
	}
	return partner.ID, nil
}

func (in UpdateInput) columns() (map[string]any, error) {
	updates := map[string]any{}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid prospect status")
		}
		updates["status"] = *in.Status
	}
	if in.CompanyName != nil {
		v := strings.TrimSpace(*in.CompanyName)
		if v == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name cannot be empty")
		}
		updates["company_name"] = v
	}
	if in.ContactName != nil {
		v := strings.TrimSpace(*in.ContactName)
		if v == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact name cannot be empty")
		}
		updates["contact_name"] = v
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		if !strings.Contains(v, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
		updates["email"] = v
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Source != nil {
		updates["source"] = *in.Source
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.EstimatedValue != nil {
		if in.EstimatedValue.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated value cannot be negative")
		}
		updates["estimated_value"] = *in.EstimatedValue
	}
	return updates, nil
}

func load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Prospect, error) {
	prospect, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapWriteError(err, "load prospect")
	}
	return prospect, nil
}

func appendActivity(ctx context.Context, repo *Repository, id uuid.UUID, kind, summary string, actorID *string) error {
	entry := &models.ProspectActivity{
		ProspectID: id,
		Kind:       kind,
		Summary:    summary,
		ActorID:    actorID,
	}
	if err := repo.AppendActivity(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record prospect activity")
	}
	return nil
}

func mapWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "prospect not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
