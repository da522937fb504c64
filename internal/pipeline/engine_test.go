package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

func TestCurrentStepLenient(t *testing.T) {
	assert.Equal(t, 1, CurrentStep(StageApplication))
	assert.Equal(t, 0, CurrentStep(StageInactive))
	assert.Equal(t, 0, CurrentStep(""))
}

func TestComputeSkippedStagesAdjacentIsEmpty(t *testing.T) {
	stages := Stages()
	for i := 0; i+1 < len(stages); i++ {
		got := ComputeSkippedStages(stages[i].ID, stages[i+1].ID)
		assert.Empty(t, got, "%s -> %s", stages[i].ID, stages[i+1].ID)
	}
}

func TestComputeSkippedStagesBetween(t *testing.T) {
	stages := Stages()
	for i := range stages {
		for j := i + 2; j < len(stages); j++ {
			cur, tgt := stages[i], stages[j]
			got := ComputeSkippedStages(cur.ID, tgt.ID)
			assert.Len(t, got, tgt.Step-cur.Step-1)
			for k, id := range got {
				assert.Equal(t, stages[i+1+k].ID, id)
			}
		}
	}
}

func TestComputeSkippedStagesApplicationToVenuesSetup(t *testing.T) {
	got := ComputeSkippedStages(StageApplication, StageVenuesSetup)
	assert.Equal(t, []string{StageInitialReview, StageDiscoveryScheduled, StageDiscoveryComplete}, got)
}

func TestComputeSkippedStagesEdgeCases(t *testing.T) {
	assert.Empty(t, ComputeSkippedStages(StageVenuesSetup, StageApplication))
	assert.Empty(t, ComputeSkippedStages(StageApplication, "unknown"))
	assert.Equal(t,
		[]string{StageApplication, StageInitialReview},
		ComputeSkippedStages(StageInactive, StageDiscoveryScheduled),
	)
}

func TestSelectableTargets(t *testing.T) {
	targets := SelectableTargets(StageLOISigned)
	if assert.Len(t, targets, 5) {
		assert.Equal(t, StageContractSent, targets[0].ID)
	}
	assert.Len(t, SelectableTargets(StageInactive), 12)
	assert.Empty(t, SelectableTargets(StageActiveClient))
}

func TestIsForward(t *testing.T) {
	assert.True(t, IsForward(StageApplication, StageLOISent))
	assert.False(t, IsForward(StageLOISent, StageLOISent))
	assert.False(t, IsForward(StageLOISent, StageApplication))
	assert.False(t, IsForward(StageApplication, StageInactive))
}

func TestDefaultApprovalTarget(t *testing.T) {
	assert.Equal(t, StageDiscoveryScheduled, DefaultApprovalTarget(enums.ReviewTypeInitial))
	assert.Equal(t, StageVenuesSetup, DefaultApprovalTarget(enums.ReviewTypePostCall))
}
