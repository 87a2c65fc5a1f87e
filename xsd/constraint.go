package xsd

// ConstraintKind is the identity constraint flavor.
type ConstraintKind int

const (
	ConstraintKey ConstraintKind = iota
	ConstraintUnique
	ConstraintKeyRef
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintKey:
		return "key"
	case ConstraintUnique:
		return "unique"
	default:
		return "keyref"
	}
}

// IdentityConstraint is an xs:key, xs:unique or xs:keyref declaration
// attached to an element. Selector and Fields keep the raw XPath text;
// interpretation happens in the conversion layer.
type IdentityConstraint struct {
	Name     string
	Kind     ConstraintKind
	Selector string
	Fields   []string

	// Refer names the key or unique constraint a keyref points at
	// (QName local part). Empty for key and unique constraints.
	Refer string

	Ann *Annotation
}
