package enums

// TemplateType enumerates the fixed e-signature templates the document factory can generate.
type TemplateType string

const (
	TemplateTypeContractorContract TemplateType = "contractor_contract"
	TemplateTypeNDA                TemplateType = "nda"
	TemplateTypeLOI                TemplateType = "loi"
	TemplateTypeLocationDeployment TemplateType = "location_deployment"
	TemplateTypeReferralAgreement  TemplateType = "referral_agreement"
	TemplateTypeNonCompete         TemplateType = "non_compete"
	TemplateTypeEmployeeWriteup    TemplateType = "employee_writeup"
	TemplateTypeOfferLetter        TemplateType = "offer_letter"
	TemplateTypeTermination        TemplateType = "termination"
)

var templateTypes = set[TemplateType]{
	TemplateTypeContractorContract,
	TemplateTypeNDA,
	TemplateTypeLOI,
	TemplateTypeLocationDeployment,
	TemplateTypeReferralAgreement,
	TemplateTypeNonCompete,
	TemplateTypeEmployeeWriteup,
	TemplateTypeOfferLetter,
	TemplateTypeTermination,
}

func (t TemplateType) String() string { return string(t) }

// IsValid reports whether t is a known TemplateType.
func (t TemplateType) IsValid() bool { return templateTypes.has(t) }

// ParseTemplateType accepts the wire value, ignoring surrounding space and case.
func ParseTemplateType(value string) (TemplateType, error) {
	return templateTypes.parse("template type", value)
}

// AllTemplateTypes returns every template type in a stable order.
func AllTemplateTypes() []TemplateType {
	out := make([]TemplateType, len(templateTypes))
	copy(out, templateTypes)
	return out
}
