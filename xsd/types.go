package xsd

import "strings"

// Type is a named or anonymous schema type. The concrete implementations
// are *SimpleType and *ComplexType; the set is closed.
type Type interface {
	// TypeName returns the declared name, or "" for anonymous types.
	TypeName() string
	// Annotation returns the attached annotation, possibly nil.
	Annotation() *Annotation
	isType()
}

// Annotation carries the content of an xs:annotation node.
type Annotation struct {
	// Documentation holds each xs:documentation block, whitespace-trimmed.
	Documentation []string
	// AppInfo holds the raw inner text of each xs:appinfo block.
	AppInfo []string
}

// Doc returns the documentation text with blocks joined by newlines.
// ok reports whether any non-empty documentation block was present.
func (a *Annotation) Doc() (string, bool) {
	if a == nil {
		return "", false
	}
	var blocks []string
	for _, d := range a.Documentation {
		if t := strings.TrimSpace(d); t != "" {
			blocks = append(blocks, t)
		}
	}
	if len(blocks) == 0 {
		return "", false
	}
	return strings.Join(blocks, "\n"), true
}

// AppInfos returns the trimmed non-empty appinfo blocks.
func (a *Annotation) AppInfos() []string {
	if a == nil {
		return nil
	}
	var blocks []string
	for _, ai := range a.AppInfo {
		if t := strings.TrimSpace(ai); t != "" {
			blocks = append(blocks, t)
		}
	}
	return blocks
}

// Variety distinguishes the three simple type constructions.
type Variety int

const (
	VarietyAtomic Variety = iota
	VarietyList
	VarietyUnion
)

// SimpleType is an atomic, list or union simple type definition.
// Restriction facets keep their raw lexical form; callers parse them.
type SimpleType struct {
	Name     string
	Base     Type   // resolved restriction base, nil when unresolved or none
	BaseName string // declared base QName local part, kept for diagnostics

	Variety Variety

	// Restriction facets.
	Enumeration  []string
	Pattern      string
	MinInclusive string
	MaxInclusive string
	MinExclusive string
	MaxExclusive string
	MinLength    string
	MaxLength    string
	Length       string
	WhiteSpace   string

	Ann *Annotation

	builtin bool
}

func (t *SimpleType) TypeName() string        { return t.Name }
func (t *SimpleType) Annotation() *Annotation { return t.Ann }
func (t *SimpleType) isType()                 {}

// IsBuiltin reports whether this is one of the shared nodes for the
// XML Schema builtin types (xs:string, xs:integer, ...).
func (t *SimpleType) IsBuiltin() bool { return t.builtin }

// Derivation distinguishes how a complex type relates to its base.
type Derivation int

const (
	DerivationNone Derivation = iota
	DerivationExtension
	DerivationRestriction
)

// ComplexType is a complex type definition. Content is the root particle
// of the content model; it is nil for empty content and for simple
// content (text plus attributes), which SimpleContent marks instead.
type ComplexType struct {
	Name     string
	Abstract bool
	Mixed    bool

	Base      Type   // resolved base for extension/restriction, nil when none
	BaseName  string // declared base QName local part
	DerivedBy Derivation

	Attributes []*Attribute
	Content    *Particle

	// SimpleContent is set when the type derives from a simple type and
	// carries character content alongside its attributes.
	SimpleContent bool

	Ann *Annotation
}

func (t *ComplexType) TypeName() string        { return t.Name }
func (t *ComplexType) Annotation() *Annotation { return t.Ann }
func (t *ComplexType) isType()                 {}

// Use is the xs:attribute use setting.
type Use int

const (
	UseOptional Use = iota
	UseRequired
	UseProhibited
)

func (u Use) String() string {
	switch u {
	case UseRequired:
		return "required"
	case UseProhibited:
		return "prohibited"
	default:
		return "optional"
	}
}

// Attribute is an attribute declaration attached to a complex type.
type Attribute struct {
	Name     string
	Type     Type   // resolved simple type, nil when unresolved
	TypeName string // declared type QName local part

	Use     Use
	Default string
	Fixed   string

	Ann *Annotation
}
