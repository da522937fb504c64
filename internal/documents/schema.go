package documents

import (
	"fmt"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Signer roles used across templates. DocuSeal creates one submitter per role.
const (
	RoleCompany    = "Company"
	RolePartner    = "Partner"
	RoleEmployee   = "Employee"
	RoleContractor = "Contractor"
	RoleCandidate  = "Candidate"
)

// Field is one fillable element of a template.
type Field struct {
	Name     string          `json:"name"`
	Kind     enums.FieldKind `json:"kind"`
	Role     string          `json:"role"`
	Required bool            `json:"required"`
	Options  []string        `json:"options,omitempty"`
}

// Section groups prose and fields under a heading.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Fields     []Field  `json:"fields"`
}

// Schema is the fixed definition of one template type.
type Schema struct {
	Type     enums.TemplateType `json:"template_type"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Sections []Section          `json:"sections"`
}

// Fields flattens every section's fields in document order.
func (s Schema) Fields() []Field {
	var out []Field
	for _, sec := range s.Sections {
		out = append(out, sec.Fields...)
	}
	return out
}

// Roles lists the distinct signer roles in first-seen order.
func (s Schema) Roles() []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range s.Fields() {
		if !seen[f.Role] {
			seen[f.Role] = true
			out = append(out, f.Role)
		}
	}
	return out
}

// SchemaFor returns the schema registered for a template type.
func SchemaFor(t enums.TemplateType) (Schema, error) {
	build, ok := schemaBuilders[t]
	if !ok {
		return Schema{}, fmt.Errorf("no schema for template type %q", t)
	}
	return build(), nil
}

func text(name, role string, required bool) Field {
	return Field{Name: name, Kind: enums.FieldKindText, Role: role, Required: required}
}

func date(name, role string) Field {
	return Field{Name: name, Kind: enums.FieldKindDate, Role: role, Required: true}
}

func number(name, role string, required bool) Field {
	return Field{Name: name, Kind: enums.FieldKindNumber, Role: role, Required: required}
}

func signature(name, role string) Field {
	return Field{Name: name, Kind: enums.FieldKindSignature, Role: role, Required: true}
}

func selectField(name, role string, options ...string) Field {
	return Field{Name: name, Kind: enums.FieldKindSelect, Role: role, Required: true, Options: options}
}

func textarea(name, role string, required bool) Field {
	return Field{Name: name, Kind: enums.FieldKindTextarea, Role: role, Required: required}
}

func signatureBlock(role string) Section {
	return Section{
		Title: role + " Signature",
		Fields: []Field{
			text(role+" Printed Name", role, true),
			text(role+" Title", role, false),
			signature(role+" Signature", role),
			date(role+" Signature Date", role),
		},
	}
}

var schemaBuilders = map[enums.TemplateType]func() Schema{
	enums.TemplateTypeContractorContract: contractorContractSchema,
	enums.TemplateTypeNDA:                ndaSchema,
	enums.TemplateTypeLOI:                loiSchema,
	enums.TemplateTypeLocationDeployment: locationDeploymentSchema,
	enums.TemplateTypeReferralAgreement:  referralAgreementSchema,
	enums.TemplateTypeNonCompete:         nonCompeteSchema,
	enums.TemplateTypeEmployeeWriteup:    employeeWriteupSchema,
	enums.TemplateTypeOfferLetter:        offerLetterSchema,
	enums.TemplateTypeTermination:        terminationSchema,
}
