package convert

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// primitiveRanges maps XML Schema builtin type names onto target model
// ranges. Types outside the table resolve through their restriction
// base chain; "string" is the final fallback.
var primitiveRanges = map[string]string{
	"string":             "string",
	"token":              "string",
	"normalizedString":   "string",
	"int":                "integer",
	"integer":            "integer",
	"long":               "integer",
	"short":              "integer",
	"byte":               "integer",
	"unsignedInt":        "integer",
	"unsignedLong":       "integer",
	"unsignedShort":      "integer",
	"unsignedByte":       "integer",
	"nonNegativeInteger": "integer",
	"nonPositiveInteger": "integer",
	"positiveInteger":    "integer",
	"negativeInteger":    "integer",
	"float":              "float",
	"double":             "float",
	"decimal":            "float",
	"boolean":            "boolean",
	"date":               "date",
	"dateTime":           "datetime",
	"time":               "time",
	"anyURI":             "uri",
	"ID":                 "string",
	"IDREF":              "string",
	"IDREFS":             "string",
}

// slotBuilder derives one slot definition per attribute or child
// element declaration.
type slotBuilder struct {
	b         *linkml.Builder
	resolver  *referenceResolver
	overrides DocOverrides
	log       *zap.SugaredLogger
}

func newSlotBuilder(b *linkml.Builder, resolver *referenceResolver, overrides DocOverrides, log *zap.SugaredLogger) *slotBuilder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &slotBuilder{b: b, resolver: resolver, overrides: overrides, log: log}
}

// buildAttributeSlot derives the slot for one attribute declaration on
// ownerClass.
func (s *slotBuilder) buildAttributeSlot(ownerClass, name string, attr *xsd.Attribute) *linkml.SlotDef {
	slot := &linkml.SlotDef{Name: name}

	declared := declaredTypeName(attr.Type, attr.TypeName)
	slot.Range = rangeForType(attr.Type, declared)
	if values := enumerationOf(attr.Type); len(values) > 0 {
		slot.Range = s.b.EnsureEnum(ownerClass, name, values)
	}
	copyFacets(slot, attr.Type)

	if attr.Use == xsd.UseRequired {
		slot.Required = true
	}
	s.applyIdentifierHeuristics(slot, name, declared, attr.Type)
	s.applyReferenceTarget(slot, ownerClass, name, declared)

	applyAnnotation(slotTarget(slot), attr.Ann)
	s.applyOverride(ownerClass, slot)
	return slot
}

// buildChildSlot derives the slot for one child element particle on
// ownerClass. The particle carries the element's own occurrence bounds;
// groupRepeats is true when an enclosing group already repeats, which
// makes the member repeatable whatever its own bounds say. el may be a
// reference particle whose type lives on the referenced global element.
func (s *slotBuilder) buildChildSlot(ownerClass, name string, el *xsd.Element, particle *xsd.Particle, groupRepeats bool) *linkml.SlotDef {
	slot := &linkml.SlotDef{Name: name}

	t := el.Type
	declared := el.TypeName
	if t == nil && el.Ref != nil {
		t = el.Ref.Type
		if declared == "" {
			declared = el.Ref.TypeName
		}
	}

	switch v := t.(type) {
	case *xsd.ComplexType:
		if v.Name != "" {
			slot.Range = v.Name
		} else {
			// Anonymous type: the type processor synthesizes a class
			// named after the element.
			slot.Range = name
		}
	case *xsd.SimpleType:
		slot.Range = rangeForType(v, declared)
		if values := enumerationOf(v); len(values) > 0 {
			slot.Range = s.b.EnsureEnum(ownerClass, name, values)
		}
		copyFacets(slot, v)
	default:
		slot.Range = rangeForType(nil, declared)
	}

	if particle.Repeats() || groupRepeats {
		slot.Multivalued = true
	}
	if particle.MinOccurs >= 1 {
		slot.Required = true
	}
	s.applyReferenceTarget(slot, ownerClass, name, declared)

	applyAnnotation(slotTarget(slot), el.Annotation())
	s.applyOverride(ownerClass, slot)
	return slot
}

// applyIdentifierHeuristics marks identifier and IDREFS-shaped
// attribute slots. A field named "id" or typed with an ID-suffixed name
// is an identifier; an IDREFS-typed field holds several references.
func (s *slotBuilder) applyIdentifierHeuristics(slot *linkml.SlotDef, name, declared string, t xsd.Type) {
	base, _ := xsd.PrimitiveBase(t)
	if strings.EqualFold(name, "id") || strings.HasSuffix(declared, "ID") || strings.HasSuffix(base, "ID") {
		slot.Identifier = true
	}
	if strings.HasSuffix(declared, "IDREFS") || strings.HasSuffix(base, "IDREFS") {
		slot.Multivalued = true
	}
}

// applyReferenceTarget retypes an "ID" field on a reference-shaped
// class to the class it points at. Unresolvable targets leave the
// range untouched.
func (s *slotBuilder) applyReferenceTarget(slot *linkml.SlotDef, ownerClass, name, declared string) {
	if !strings.EqualFold(name, "id") || !s.resolver.classIsRefLike(ownerClass) {
		return
	}
	if target := s.resolver.referenceTargetForClass(ownerClass, declared); target != "" {
		slot.Range = target
	}
}

func (s *slotBuilder) applyOverride(ownerClass string, slot *linkml.SlotDef) {
	if text, ok := s.overrides.Lookup(ownerClass, slot.Name); ok {
		slot.Description = text
	}
}

func declaredTypeName(t xsd.Type, declared string) string {
	if declared != "" {
		return declared
	}
	if t != nil {
		return t.TypeName()
	}
	return ""
}

// rangeForType maps a declared type onto a target range: the declared
// name directly when it is a known primitive, otherwise the first known
// primitive along the restriction base chain, otherwise "string".
func rangeForType(t xsd.Type, declared string) string {
	if r, ok := primitiveRanges[declared]; ok {
		return r
	}
	seen := map[xsd.Type]bool{}
	for t != nil && !seen[t] {
		seen[t] = true
		if r, ok := primitiveRanges[t.TypeName()]; ok {
			return r
		}
		t = restrictionBase(t)
	}
	return "string"
}

func restrictionBase(t xsd.Type) xsd.Type {
	switch v := t.(type) {
	case *xsd.SimpleType:
		return v.Base
	case *xsd.ComplexType:
		return v.Base
	default:
		return nil
	}
}

// enumerationOf returns the enumeration facets of the nearest
// restriction step that has any, cycle-guarded.
func enumerationOf(t xsd.Type) []string {
	seen := map[xsd.Type]bool{}
	for t != nil && !seen[t] {
		seen[t] = true
		st, ok := t.(*xsd.SimpleType)
		if !ok {
			return nil
		}
		if len(st.Enumeration) > 0 {
			return st.Enumeration
		}
		t = st.Base
	}
	return nil
}

// copyFacets copies pattern and inclusive bound facets onto the slot,
// taking the nearest value along the restriction chain for each facet.
// Bounds that do not parse as numbers are skipped.
func copyFacets(slot *linkml.SlotDef, t xsd.Type) {
	seen := map[xsd.Type]bool{}
	for t != nil && !seen[t] {
		seen[t] = true
		st, ok := t.(*xsd.SimpleType)
		if !ok {
			return
		}
		if slot.Pattern == "" && st.Pattern != "" {
			slot.Pattern = st.Pattern
		}
		if slot.MinimumValue == nil && st.MinInclusive != "" {
			if v, err := strconv.ParseFloat(st.MinInclusive, 64); err == nil {
				slot.MinimumValue = &v
			}
		}
		if slot.MaximumValue == nil && st.MaxInclusive != "" {
			if v, err := strconv.ParseFloat(st.MaxInclusive, 64); err == nil {
				slot.MaximumValue = &v
			}
		}
		t = st.Base
	}
}
