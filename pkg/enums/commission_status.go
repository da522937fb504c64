package enums

// CommissionStatus marks whether a commission has been paid out.
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
	CommissionStatusVoid    CommissionStatus = "void"
)

var commissionStatuses = set[CommissionStatus]{
	CommissionStatusPending,
	CommissionStatusPaid,
	CommissionStatusVoid,
}

func (c CommissionStatus) String() string { return string(c) }

// IsValid reports whether c is a known CommissionStatus.
func (c CommissionStatus) IsValid() bool { return commissionStatuses.has(c) }

// ParseCommissionStatus accepts the wire value, ignoring surrounding space and case.
func ParseCommissionStatus(value string) (CommissionStatus, error) {
	return commissionStatuses.parse("commission status", value)
}
