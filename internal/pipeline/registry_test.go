package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagesOrderedAndRestartable(t *testing.T) {
	first := Stages()
	require.Len(t, first, 12)
	for i, s := range first {
		assert.Equal(t, i+1, s.Step, s.ID)
	}

	first[0].ID = "mutated"
	second := Stages()
	assert.Equal(t, StageApplication, second[0].ID)
	assert.Equal(t, StageActiveClient, second[len(second)-1].ID)
}

func TestStepOf(t *testing.T) {
	step, err := StepOf(StageVenuesSetup)
	require.NoError(t, err)
	assert.Equal(t, 5, step)

	_, err = StepOf(StageInactive)
	assert.True(t, errors.Is(err, ErrStageNotFound))

	_, err = StepOf("nope")
	assert.ErrorIs(t, err, ErrStageNotFound)
}

func TestIsValidStage(t *testing.T) {
	assert.True(t, IsValidStage(StageLOISigned))
	assert.True(t, IsValidStage(StageInactive))
	assert.False(t, IsValidStage(""))
	assert.False(t, IsValidStage("Application"))
	assert.False(t, IsStage(StageInactive))
}

func TestLookup(t *testing.T) {
	s, ok := Lookup(StageContractSent)
	require.True(t, ok)
	assert.Equal(t, "Contract Sent", s.Name)
	assert.Equal(t, 8, s.Step)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}
