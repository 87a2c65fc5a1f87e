package xsd

// Element is an element declaration. Global elements live in
// Schema.Elements; local declarations appear as particle terms.
type Element struct {
	Name     string
	Type     Type   // resolved element type, nil when unresolved
	TypeName string // declared type QName local part, kept when Type is nil

	Abstract bool
	Nillable bool

	// SubstitutionGroup names the head element this one substitutes for,
	// or "" when the element is not a substitution group member.
	SubstitutionGroup string

	// Ref points at the referenced global element for ref="..."
	// particles. Name and Type mirror the target after resolution.
	Ref *Element

	Constraints []*IdentityConstraint

	Ann *Annotation
}

func (e *Element) isTerm() {}

// Annotation returns the element annotation, falling back to the
// referenced global element for ref particles.
func (e *Element) Annotation() *Annotation {
	if e.Ann != nil {
		return e.Ann
	}
	if e.Ref != nil {
		return e.Ref.Ann
	}
	return nil
}
