package documents

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/pipeline"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/docuseal"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
	"github.com/angelmondragon/partnerhub-backend/pkg/metrics"
)

// Provider is the e-signature API surface the factory depends on.
type Provider interface {
	CreateHTMLTemplate(ctx context.Context, name, html, externalID string) (*docuseal.Template, error)
	CreateSubmission(ctx context.Context, templateID int64, submitters []docuseal.Submitter) ([]docuseal.SubmitterResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service generates templates and tracks documents sent to partners.
type Service interface {
	CreateTemplate(ctx context.Context, t enums.TemplateType) (*CreateResult, error)
	CreateAll(ctx context.Context) []BatchResult
	ListTemplates(ctx context.Context) ([]TemplateDTO, error)
	Preview(t enums.TemplateType) (*PreviewDTO, error)
	SendDocument(ctx context.Context, input SendInput) (*SubmissionDTO, error)
	HandleWebhook(ctx context.Context, evt docuseal.WebhookEvent) error
}

type service struct {
	repo     *Repository
	partners *partners.Repository
	provider Provider
	tx       txRunner
	metrics  *metrics.TemplateMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// ServiceParams groups the document service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Partners *partners.Repository
	Provider Provider
	Tx       txRunner
	Metrics  *metrics.TemplateMetrics
	Logger   *logger.Logger
}

// NewService builds the document service.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("document repository required")
	}
	if p.Partners == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	if p.Provider == nil {
		return nil, fmt.Errorf("e-signature provider required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     p.Repo,
		partners: p.Partners,
		provider: p.Provider,
		tx:       p.Tx,
		metrics:  p.Metrics,
		logg:     p.Logger,
		now:      time.Now,
	}, nil
}

func (s *service) CreateTemplate(ctx context.Context, t enums.TemplateType) (*CreateResult, error) {
	if !t.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown template type")
	}
	schema, err := SchemaFor(t)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template schema")
	}
	html, err := Render(schema)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render template")
	}

	start := s.now()
	tpl, err := s.provider.CreateHTMLTemplate(ctx, schema.Name, html, string(t))
	s.metrics.ObserveDuration(string(t), time.Since(start))
	if err != nil {
		s.metrics.IncFailure(string(t))
		return nil, providerError(err, "create provider template")
	}

	slug := tpl.Slug
	if slug == "" {
		slug = schema.Slug
	}
	row := &models.DocumentTemplate{
		TemplateType:       t,
		Name:               schema.Name,
		Slug:               slug,
		HTML:               html,
		DocusealTemplateID: strconv.FormatInt(tpl.ID, 10),
	}
	if err := s.repo.UpsertTemplate(ctx, row); err != nil {
		s.metrics.IncFailure(string(t))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store template")
	}
	s.metrics.IncSuccess(string(t))

	return &CreateResult{
		TemplateType: t,
		ExternalID:   row.DocusealTemplateID,
		Name:         row.Name,
		Slug:         row.Slug,
	}, nil
}

// CreateAll attempts every template type independently. One type failing never
// stops the others.
func (s *service) CreateAll(ctx context.Context) []BatchResult {
	types := enums.AllTemplateTypes()
	results := make([]BatchResult, 0, len(types))
	var errs error
	for _, t := range types {
		res, err := s.CreateTemplate(ctx, t)
		if err != nil {
			reason := pkgerrors.Describe(err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %s", t, reason))
			results = append(results, BatchResult{TemplateType: t, Success: false, Error: reason})
			continue
		}
		results = append(results, BatchResult{TemplateType: t, Success: true, ExternalID: res.ExternalID})
	}

	if s.logg != nil {
		failed := len(multierr.Errors(errs))
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"attempted": len(types),
			"succeeded": len(types) - failed,
			"failed":    failed,
		})
		if errs != nil {
			s.logg.Warn(logCtx, "document templates created with failures: "+errs.Error())
		} else {
			s.logg.Info(logCtx, "document templates created")
		}
	}
	return results
}

func (s *service) ListTemplates(ctx context.Context) ([]TemplateDTO, error) {
	rows, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	out := make([]TemplateDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, templateFromModel(r))
	}
	return out, nil
}

func (s *service) Preview(t enums.TemplateType) (*PreviewDTO, error) {
	if !t.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown template type")
	}
	schema, err := SchemaFor(t)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template schema")
	}
	html, err := Render(schema)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render template")
	}
	return &PreviewDTO{Schema: schema, HTML: html}, nil
}

func (s *service) SendDocument(ctx context.Context, input SendInput) (*SubmissionDTO, error) {
	if !input.TemplateType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown template type")
	}
	partner, err := s.partners.FindByID(ctx, input.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
	}
	tpl, err := s.repo.FindTemplate(ctx, input.TemplateType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not created yet")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	templateID, err := strconv.ParseInt(tpl.DocusealTemplateID, 10, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored template id is not numeric")
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		email = partner.Email
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = partner.ContactName
	}

	schema, err := SchemaFor(input.TemplateType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load template schema")
	}
	signer := counterpartyRole(schema)

	results, err := s.provider.CreateSubmission(ctx, templateID, []docuseal.Submitter{{Role: signer, Email: email, Name: name}})
	if err != nil {
		return nil, providerError(err, "create provider submission")
	}
	if len(results) == 0 || results[0].SubmissionID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeProvider, "provider returned no submission")
	}

	sub := &models.DocumentSubmission{
		PartnerID:            partner.ID,
		TemplateType:         input.TemplateType,
		ExternalSubmissionID: strconv.FormatInt(results[0].SubmissionID, 10),
		RecipientEmail:       email,
		Status:               enums.DocumentStatusSent,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateSubmission(ctx, sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record submission")
		}
		return s.applyPartnerStatus(ctx, s.partners.WithTx(tx), partner, input.TemplateType, enums.DocumentStatusSent, input.ActorID)
	})
	if err != nil {
		return nil, err
	}
	return submissionFromModel(*sub), nil
}

// HandleWebhook applies a provider event to the matching submission. Events
// for unknown submissions are ignored so the provider stops retrying.
func (s *service) HandleWebhook(ctx context.Context, evt docuseal.WebhookEvent) error {
	status, ok := statusForEvent(evt.EventType)
	if !ok {
		return nil
	}
	externalID := strconv.FormatInt(evt.Data.SubmissionID, 10)

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		sub, err := repo.FindSubmissionByExternalID(ctx, externalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
		}
		if !statusAdvances(sub.Status, status) {
			return nil
		}
		if err := repo.UpdateSubmissionStatus(ctx, sub.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update submission")
		}

		partnerRepo := s.partners.WithTx(tx)
		partner, err := partnerRepo.FindByID(ctx, sub.PartnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
		}
		// an older submission of the same kind may still report in after a newer one settled
		if !statusAdvances(partnerDocumentStatus(partner, sub.TemplateType), status) {
			return nil
		}
		return s.applyPartnerStatus(ctx, partnerRepo, partner, sub.TemplateType, status, nil)
	})
}

// applyPartnerStatus mirrors a document status onto the partner and moves the
// pipeline forward when the document gates a stage. It never moves backward and
// never revives an inactive partner.
func (s *service) applyPartnerStatus(ctx context.Context, repo *partners.Repository, partner *models.Partner, t enums.TemplateType, status enums.DocumentStatus, actor *string) error {
	column := statusColumn(t)
	if column == "" {
		return nil
	}
	updates := map[string]any{column: status}

	from := partner.PipelineStage
	next := stageFor(t, status)
	if next != "" && from != pipeline.StageInactive && pipeline.IsForward(from, next) {
		updates["pipeline_stage"] = next
	}

	if err := repo.UpdateFields(ctx, partner.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner document status")
	}

	to := from
	if v, ok := updates["pipeline_stage"].(string); ok {
		to = v
	}
	note := fmt.Sprintf("%s %s", t, status)
	entry := &models.PartnerActivity{
		PartnerID: partner.ID,
		Kind:      ActivityDocument,
		FromStage: from,
		ToStage:   to,
		ActorID:   actor,
		Note:      &note,
	}
	if err := repo.AppendActivity(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record partner activity")
	}
	return nil
}

// ActivityDocument marks audit entries written for document events.
const ActivityDocument = "document"

func statusColumn(t enums.TemplateType) string {
	switch t {
	case enums.TemplateTypeLOI:
		return "loi_status"
	case enums.TemplateTypeContractorContract, enums.TemplateTypeLocationDeployment:
		return "contract_status"
	case enums.TemplateTypeNDA:
		return "nda_status"
	default:
		return ""
	}
}

func partnerDocumentStatus(partner *models.Partner, t enums.TemplateType) enums.DocumentStatus {
	switch statusColumn(t) {
	case "loi_status":
		return partner.LOIStatus
	case "contract_status":
		return partner.ContractStatus
	case "nda_status":
		return partner.NDAStatus
	}
	return enums.DocumentStatusNotSent
}

func stageFor(t enums.TemplateType, status enums.DocumentStatus) string {
	loi := t == enums.TemplateTypeLOI
	contract := t == enums.TemplateTypeContractorContract || t == enums.TemplateTypeLocationDeployment
	switch {
	case loi && status == enums.DocumentStatusSent:
		return pipeline.StageLOISent
	case loi && status == enums.DocumentStatusSigned:
		return pipeline.StageLOISigned
	case contract && status == enums.DocumentStatusSent:
		return pipeline.StageContractSent
	case contract && status == enums.DocumentStatusSigned:
		return pipeline.StageContractSigned
	}
	return ""
}

func statusForEvent(eventType string) (enums.DocumentStatus, bool) {
	switch eventType {
	case docuseal.EventFormViewed, docuseal.EventFormStarted:
		return enums.DocumentStatusViewed, true
	case docuseal.EventFormCompleted:
		return enums.DocumentStatusSigned, true
	case docuseal.EventFormDeclined:
		return enums.DocumentStatusDeclined, true
	}
	return "", false
}

var statusRank = map[enums.DocumentStatus]int{
	enums.DocumentStatusNotSent:  0,
	enums.DocumentStatusSent:     1,
	enums.DocumentStatusViewed:   2,
	enums.DocumentStatusSigned:   3,
	enums.DocumentStatusDeclined: 3,
}

// statusAdvances drops late or replayed events, e.g. a viewed event arriving
// after completion.
func statusAdvances(current, next enums.DocumentStatus) bool {
	return statusRank[next] > statusRank[current]
}

// counterpartyRole picks the role the external recipient signs as: the first
// role in the schema that is not the company's.
func counterpartyRole(schema Schema) string {
	for _, r := range schema.Roles() {
		if r != RoleCompany {
			return r
		}
	}
	return RoleCompany
}

func providerError(err error, msg string) error {
	var apiErr *docuseal.APIError
	if errors.As(err, &apiErr) {
		return pkgerrors.Wrap(pkgerrors.CodeProvider, err, msg).WithDetails(map[string]any{
			"provider_status": apiErr.StatusCode,
		})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
