package enums

// FieldKind is the input type of a template field.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindDate      FieldKind = "date"
	FieldKindNumber    FieldKind = "number"
	FieldKindSignature FieldKind = "signature"
	FieldKindSelect    FieldKind = "select"
	FieldKindTextarea  FieldKind = "textarea"
)

var fieldKinds = set[FieldKind]{
	FieldKindText,
	FieldKindDate,
	FieldKindNumber,
	FieldKindSignature,
	FieldKindSelect,
	FieldKindTextarea,
}

func (f FieldKind) String() string { return string(f) }

// IsValid reports whether f is a known FieldKind.
func (f FieldKind) IsValid() bool { return fieldKinds.has(f) }

// ParseFieldKind accepts the wire value, ignoring surrounding space and case.
func ParseFieldKind(value string) (FieldKind, error) {
	return fieldKinds.parse("field kind", value)
}
