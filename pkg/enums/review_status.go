package enums

// ReviewStatus captures the outcome of a pipeline review gate.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusDenied   ReviewStatus = "denied"
)

var reviewStatuses = set[ReviewStatus]{
	ReviewStatusPending,
	ReviewStatusApproved,
	ReviewStatusDenied,
}

func (r ReviewStatus) String() string { return string(r) }

// IsValid reports whether r is a known ReviewStatus.
func (r ReviewStatus) IsValid() bool { return reviewStatuses.has(r) }

// ParseReviewStatus accepts the wire value, ignoring surrounding space and case.
func ParseReviewStatus(value string) (ReviewStatus, error) {
	return reviewStatuses.parse("review status", value)
}
