package pipeline

import "github.com/angelmondragon/partnerhub-backend/pkg/enums"

// CurrentStep returns the step of stage, or 0 when stage is not a registry id
// (inactive, empty or legacy values).
func CurrentStep(stage string) int {
	step, err := StepOf(stage)
	if err != nil {
		return 0
	}
	return step
}

// ComputeSkippedStages lists the registry stages strictly between current and
// target in ascending order. An unknown target counts as step 0 and yields an
// empty result; callers restrict targets with SelectableTargets first.
func ComputeSkippedStages(current, target string) []string {
	from := CurrentStep(current)
	to := CurrentStep(target)
	skipped := []string{}
	for _, s := range registry {
		if s.Step > from && s.Step < to {
			skipped = append(skipped, s.ID)
		}
	}
	return skipped
}

// SelectableTargets returns the stages an approval may jump to from current.
func SelectableTargets(current string) []Stage {
	from := CurrentStep(current)
	out := make([]Stage, 0, len(registry))
	for _, s := range registry {
		if s.Step > from {
			out = append(out, s)
		}
	}
	return out
}

// IsForward reports whether target is a registry stage ahead of current.
func IsForward(current, target string) bool {
	to, err := StepOf(target)
	if err != nil {
		return false
	}
	return to > CurrentStep(current)
}

// DefaultApprovalTarget is the stage an approval moves to when no explicit
// target is chosen.
func DefaultApprovalTarget(reviewType enums.ReviewType) string {
	if reviewType == enums.ReviewTypePostCall {
		return StageVenuesSetup
	}
	return StageDiscoveryScheduled
}
