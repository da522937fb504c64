package enums

// VenueStatus is the lifecycle state of a partner location.
type VenueStatus string

const (
	VenueStatusPending  VenueStatus = "pending"
	VenueStatusTrial    VenueStatus = "trial"
	VenueStatusActive   VenueStatus = "active"
	VenueStatusInactive VenueStatus = "inactive"
)

var venueStatuses = set[VenueStatus]{
	VenueStatusPending,
	VenueStatusTrial,
	VenueStatusActive,
	VenueStatusInactive,
}

func (v VenueStatus) String() string { return string(v) }

// IsValid reports whether v is a known VenueStatus.
func (v VenueStatus) IsValid() bool { return venueStatuses.has(v) }

// ParseVenueStatus accepts the wire value, ignoring surrounding space and case.
func ParseVenueStatus(value string) (VenueStatus, error) {
	return venueStatuses.parse("venue status", value)
}
