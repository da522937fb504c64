package enums

// PaymentStatus describes a payout sent to a partner.
type PaymentStatus string

const (
	PaymentStatusScheduled PaymentStatus = "scheduled"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

var paymentStatuses = set[PaymentStatus]{
	PaymentStatusScheduled,
	PaymentStatusCompleted,
	PaymentStatusFailed,
}

func (p PaymentStatus) String() string { return string(p) }

// IsValid reports whether p is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool { return paymentStatuses.has(p) }

// ParsePaymentStatus accepts the wire value, ignoring surrounding space and case.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	return paymentStatuses.parse("payment status", value)
}
