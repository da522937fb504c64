package pipeline

import "errors"

// StageInactive is the sentinel stage for denied or churned partners. It is not
// part of the ordered registry and has no step.
const StageInactive = "inactive"

const (
	StageApplication        = "application"
	StageInitialReview      = "initial_review"
	StageDiscoveryScheduled = "discovery_scheduled"
	StageDiscoveryComplete  = "discovery_complete"
	StageVenuesSetup        = "venues_setup"
	StageLOISent            = "loi_sent"
	StageLOISigned          = "loi_signed"
	StageContractSent       = "contract_sent"
	StageContractSigned     = "contract_signed"
	StageOnboarding         = "onboarding"
	StageTrialActive        = "trial_active"
	StageActiveClient       = "active_client"
)

// ErrStageNotFound is returned for ids outside the registry, including the
// inactive sentinel.
var ErrStageNotFound = errors.New("pipeline stage not found")

// Stage is one position of the onboarding pipeline.
type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Step int    `json:"step"`
}

var registry = [...]Stage{
	{ID: StageApplication, Name: "Application", Step: 1},
	{ID: StageInitialReview, Name: "Initial Review", Step: 2},
	{ID: StageDiscoveryScheduled, Name: "Discovery Call Scheduled", Step: 3},
	{ID: StageDiscoveryComplete, Name: "Discovery Call Complete", Step: 4},
	{ID: StageVenuesSetup, Name: "Venues Setup", Step: 5},
	{ID: StageLOISent, Name: "LOI Sent", Step: 6},
	{ID: StageLOISigned, Name: "LOI Signed", Step: 7},
	{ID: StageContractSent, Name: "Contract Sent", Step: 8},
	{ID: StageContractSigned, Name: "Contract Signed", Step: 9},
	{ID: StageOnboarding, Name: "Onboarding", Step: 10},
	{ID: StageTrialActive, Name: "Trial Active", Step: 11},
	{ID: StageActiveClient, Name: "Active Client", Step: 12},
}

var stepByID = func() map[string]int {
	m := make(map[string]int, len(registry))
	for _, s := range registry {
		m[s.ID] = s.Step
	}
	return m
}()

// Stages returns the registry in ascending step order. Each call returns a new
// slice the caller may keep or mutate.
func Stages() []Stage {
	out := make([]Stage, len(registry))
	copy(out, registry[:])
	return out
}

// StepOf returns the step of a registry stage.
func StepOf(id string) (int, error) {
	step, ok := stepByID[id]
	if !ok {
		return 0, ErrStageNotFound
	}
	return step, nil
}

// Lookup returns the stage with the given id.
func Lookup(id string) (Stage, bool) {
	step, ok := stepByID[id]
	if !ok {
		return Stage{}, false
	}
	return registry[step-1], true
}

// IsStage reports whether id is a registry stage.
func IsStage(id string) bool {
	_, ok := stepByID[id]
	return ok
}

// IsValidStage reports whether id may be stored as a partner stage.
func IsValidStage(id string) bool {
	return id == StageInactive || IsStage(id)
}
