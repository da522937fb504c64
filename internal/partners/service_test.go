package partners

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/internal/pipeline"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client, conn := dbtest.OpenClient(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	return svc, repo
}

func seedPartner(t *testing.T, repo *Repository, stage string) *models.Partner {
	t.Helper()
	p := NewPartnerModel(CreateInput{
		Type:        enums.PartnerTypeLocation,
		CompanyName: "Bright Bars",
		ContactName: "Sam Rivera",
		Email:       "sam@brightbars.test",
	})
	p.PipelineStage = stage
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func strPtr(v string) *string { return &v }

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}

func TestApproveInitialDefaultsToDiscoveryScheduled(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageInitialReview)

	got, err := svc.Approve(context.Background(), p.ID, ApproveInput{ReviewType: enums.ReviewTypeInitial})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageDiscoveryScheduled, got.PipelineStage)
	assert.Equal(t, enums.ReviewStatusApproved, got.InitialReviewStatus)
	assert.Equal(t, enums.ReviewStatusPending, got.PostCallReviewStatus)
	assert.Nil(t, got.SkipReason)
	assert.Empty(t, got.SkippedStages)
}

func TestApprovePostCallDefaultsToVenuesSetup(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageDiscoveryComplete)

	got, err := svc.Approve(context.Background(), p.ID, ApproveInput{ReviewType: enums.ReviewTypePostCall})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageVenuesSetup, got.PipelineStage)
	assert.Equal(t, enums.ReviewStatusApproved, got.PostCallReviewStatus)
}

func TestApproveWithSkipPersistsReasonAndSkippedStages(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	p := seedPartner(t, repo, pipeline.StageApplication)

	got, err := svc.Approve(ctx, p.ID, ApproveInput{
		ReviewType:  enums.ReviewTypeInitial,
		TargetStage: strPtr(pipeline.StageVenuesSetup),
		SkipReason:  strPtr("existing customer"),
		ActorID:     strPtr("admin_1"),
	})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageVenuesSetup, got.PipelineStage)
	require.NotNil(t, got.SkipReason)
	assert.Equal(t, "existing customer", *got.SkipReason)
	assert.Equal(t, []string{
		pipeline.StageInitialReview,
		pipeline.StageDiscoveryScheduled,
		pipeline.StageDiscoveryComplete,
	}, got.SkippedStages)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"initial_review", "discovery_scheduled", "discovery_complete"}, []string(stored.SkippedStages))

	activities, err := repo.ListActivities(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, ActivityApproved, activities[0].Kind)
	assert.Equal(t, pipeline.StageApplication, activities[0].FromStage)
	assert.Equal(t, pipeline.StageVenuesSetup, activities[0].ToStage)
	assert.Len(t, activities[0].SkippedStages, 3)
}

func TestApproveTargetWithoutReasonSkipsAudit(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageApplication)

	got, err := svc.Approve(context.Background(), p.ID, ApproveInput{
		ReviewType:  enums.ReviewTypeInitial,
		TargetStage: strPtr(pipeline.StageLOISent),
		SkipReason:  strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageLOISent, got.PipelineStage)
	assert.Nil(t, got.SkipReason)
	assert.Empty(t, got.SkippedStages)
}

func TestApproveRejectsUnknownTargetAndReviewType(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageApplication)

	_, err := svc.Approve(context.Background(), p.ID, ApproveInput{
		ReviewType:  enums.ReviewTypeInitial,
		TargetStage: strPtr("moon"),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Approve(context.Background(), p.ID, ApproveInput{ReviewType: "final"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestApproveMissingPartner(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Approve(context.Background(), uuid.New(), ApproveInput{ReviewType: enums.ReviewTypeInitial})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDenyAlwaysInactive(t *testing.T) {
	svc, repo := newTestService(t)
	for _, stage := range append([]string{pipeline.StageInactive}, stageIDs()...) {
		p := seedPartner(t, repo, stage)
		got, err := svc.Deny(context.Background(), p.ID, DenyInput{ReviewType: enums.ReviewTypePostCall})
		require.NoError(t, err, stage)
		assert.Equal(t, pipeline.StageInactive, got.PipelineStage, stage)
		assert.Equal(t, enums.ReviewStatusDenied, got.PostCallReviewStatus, stage)
	}
}

func TestSetStageAllowsBackward(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	p := seedPartner(t, repo, pipeline.StageContractSigned)

	got, err := svc.SetStage(ctx, p.ID, SetStageInput{Stage: pipeline.StageInitialReview})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageInitialReview, got.PipelineStage)

	got, err = svc.SetStage(ctx, p.ID, SetStageInput{Stage: pipeline.StageInactive})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageInactive, got.PipelineStage)

	_, err = svc.SetStage(ctx, p.ID, SetStageInput{Stage: "nowhere"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateStartsAtApplication(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Create(context.Background(), CreateInput{
		Type:        enums.PartnerTypeReferral,
		CompanyName: "Referral Co",
		ContactName: "Ari",
		Email:       "ARI@Referral.test ",
	})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageApplication, got.PipelineStage)
	assert.Equal(t, "ari@referral.test", got.Email)
	assert.Equal(t, enums.DocumentStatusNotSent, got.LOIStatus)
	assert.Regexp(t, `^PH-[0-9A-F]{8}$`, got.PartnerCode)

	detail, err := svc.Get(context.Background(), got.ID)
	require.NoError(t, err)
	require.Len(t, detail.Activities, 1)
	assert.Equal(t, ActivityCreated, detail.Activities[0].Kind)
}

func TestCreateValidates(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInput{Type: "reseller", CompanyName: "x", ContactName: "y", Email: "a@b.c"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), CreateInput{Type: enums.PartnerTypeChannel, CompanyName: "x", ContactName: "y", Email: "nope"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdatePartialFields(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageOnboarding)

	got, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Phone:          strPtr("555-0100"),
		TrialStartDate: strPtr("2026-01-01"),
		TrialEndDate:   strPtr("2026-01-31"),
	})
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
	assert.Equal(t, "Bright Bars", got.CompanyName)
	require.NotNil(t, got.TrialEndDate)
	assert.Equal(t, 31, got.TrialEndDate.Day())
	assert.Equal(t, pipeline.StageOnboarding, got.PipelineStage)

	_, err = svc.Update(context.Background(), p.ID, UpdateInput{TrialStartDate: strPtr("01/02/2026")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Update(context.Background(), uuid.New(), UpdateInput{Phone: strPtr("1")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateTrialEndCheckedAgainstStoredStart(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedPartner(t, repo, pipeline.StageTrialActive)
	ctx := context.Background()

	_, err := svc.Update(ctx, p.ID, UpdateInput{TrialStartDate: strPtr("2026-03-10")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, UpdateInput{TrialEndDate: strPtr("2026-03-01")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TrialEndDate)

	got, err := svc.Update(ctx, p.ID, UpdateInput{TrialEndDate: strPtr("2026-04-09")})
	require.NoError(t, err)
	require.NotNil(t, got.TrialEndDate)

	// clearing the start lifts the constraint
	_, err = svc.Update(ctx, p.ID, UpdateInput{TrialStartDate: strPtr(""), TrialEndDate: strPtr("2026-02-01")})
	require.NoError(t, err)
}

func TestListFiltersByStage(t *testing.T) {
	svc, repo := newTestService(t)
	seedPartner(t, repo, pipeline.StageApplication)
	seedPartner(t, repo, pipeline.StageLOISent)
	seedPartner(t, repo, pipeline.StageLOISent)

	all, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	loi, err := svc.List(context.Background(), ListFilter{Stage: pipeline.StageLOISent})
	require.NoError(t, err)
	assert.Len(t, loi, 2)

	_, err = svc.List(context.Background(), ListFilter{Stage: "bogus"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func stageIDs() []string {
	var ids []string
	for _, s := range pipeline.Stages() {
		ids = append(ids, s.ID)
	}
	return ids
}
