package enums

// DocumentStatus tracks an e-signature document sent to a partner.
type DocumentStatus string

const (
	DocumentStatusNotSent  DocumentStatus = "not_sent"
	DocumentStatusSent     DocumentStatus = "sent"
	DocumentStatusViewed   DocumentStatus = "viewed"
	DocumentStatusSigned   DocumentStatus = "signed"
	DocumentStatusDeclined DocumentStatus = "declined"
)

var documentStatuses = set[DocumentStatus]{
	DocumentStatusNotSent,
	DocumentStatusSent,
	DocumentStatusViewed,
	DocumentStatusSigned,
	DocumentStatusDeclined,
}

func (d DocumentStatus) String() string { return string(d) }

// IsValid reports whether d is a known DocumentStatus.
func (d DocumentStatus) IsValid() bool { return documentStatuses.has(d) }

// ParseDocumentStatus accepts the wire value, ignoring surrounding space and case.
func ParseDocumentStatus(value string) (DocumentStatus, error) {
	return documentStatuses.parse("document status", value)
}
