package enums

// ReviewType identifies which pipeline review gate an admin decision applies to.
type ReviewType string

const (
	ReviewTypeInitial  ReviewType = "initial"
	ReviewTypePostCall ReviewType = "post_call"
)

var reviewTypes = set[ReviewType]{
	ReviewTypeInitial,
	ReviewTypePostCall,
}

func (r ReviewType) String() string { return string(r) }

// IsValid reports whether r is a known ReviewType.
func (r ReviewType) IsValid() bool { return reviewTypes.has(r) }

// ParseReviewType accepts the wire value, ignoring surrounding space and case.
func ParseReviewType(value string) (ReviewType, error) {
	return reviewTypes.parse("review type", value)
}
