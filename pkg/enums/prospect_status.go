package enums

// ProspectStatus is the CRM lifecycle of a lead.
type ProspectStatus string

const (
	ProspectStatusNew          ProspectStatus = "new"
	ProspectStatusContacted    ProspectStatus = "contacted"
	ProspectStatusQualified    ProspectStatus = "qualified"
	ProspectStatusProposalSent ProspectStatus = "proposal_sent"
	ProspectStatusNegotiating  ProspectStatus = "negotiating"
	ProspectStatusWon          ProspectStatus = "won"
	ProspectStatusLost         ProspectStatus = "lost"
	ProspectStatusArchived     ProspectStatus = "archived"
)

var prospectStatuses = set[ProspectStatus]{
	ProspectStatusNew,
	ProspectStatusContacted,
	ProspectStatusQualified,
	ProspectStatusProposalSent,
	ProspectStatusNegotiating,
	ProspectStatusWon,
	ProspectStatusLost,
	ProspectStatusArchived,
}

func (p ProspectStatus) String() string { return string(p) }

// IsValid reports whether p is a known ProspectStatus.
func (p ProspectStatus) IsValid() bool { return prospectStatuses.has(p) }

// ParseProspectStatus accepts the wire value, ignoring surrounding space and case.
func ParseProspectStatus(value string) (ProspectStatus, error) {
	return prospectStatuses.parse("prospect status", value)
}
