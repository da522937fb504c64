package enums

// PartnerType classifies the onboarding relationship with a partner or prospect.
type PartnerType string

const (
	PartnerTypeLocation PartnerType = "location"
	PartnerTypeReferral PartnerType = "referral"
	PartnerTypeChannel  PartnerType = "channel"
)

var partnerTypes = set[PartnerType]{
	PartnerTypeLocation,
	PartnerTypeReferral,
	PartnerTypeChannel,
}

func (p PartnerType) String() string { return string(p) }

// IsValid reports whether p is a known PartnerType.
func (p PartnerType) IsValid() bool { return partnerTypes.has(p) }

// ParsePartnerType accepts the wire value, ignoring surrounding space and case.
func ParsePartnerType(value string) (PartnerType, error) {
	return partnerTypes.parse("partner type", value)
}
