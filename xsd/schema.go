package xsd

// Schema is the resolved root of one schema document set. Order slices
// preserve declaration order so downstream output stays deterministic.
type Schema struct {
	TargetNamespace string

	Types    map[string]Type
	Elements map[string]*Element

	TypeOrder    []string
	ElementOrder []string

	Ann *Annotation
}

// LookupType returns the named global type.
func (s *Schema) LookupType(name string) (Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

// LookupElement returns the named global element.
func (s *Schema) LookupElement(name string) (*Element, bool) {
	e, ok := s.Elements[name]
	return e, ok
}

// OrderedTypes returns the global types in declaration order.
func (s *Schema) OrderedTypes() []Type {
	out := make([]Type, 0, len(s.TypeOrder))
	for _, name := range s.TypeOrder {
		if t, ok := s.Types[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

// OrderedElements returns the global elements in declaration order.
func (s *Schema) OrderedElements() []*Element {
	out := make([]*Element, 0, len(s.ElementOrder))
	for _, name := range s.ElementOrder {
		if e, ok := s.Elements[name]; ok {
			out = append(out, e)
		}
	}
	return out
}

// AncestorChain returns the base types of t from most specific to most
// general, excluding t itself. The walk stops at the first repeated
// node, so cyclic hierarchies terminate instead of looping.
func AncestorChain(t Type) []Type {
	var chain []Type
	seen := map[Type]bool{t: true}

	cur := baseOf(t)
	for cur != nil && !seen[cur] {
		seen[cur] = true
		chain = append(chain, cur)
		cur = baseOf(cur)
	}
	return chain
}

// AncestorNames returns the named ancestors of t, most specific first.
// Anonymous and builtin ancestors are skipped.
func AncestorNames(t Type) []string {
	var names []string
	for _, a := range AncestorChain(t) {
		if st, ok := a.(*SimpleType); ok && st.IsBuiltin() {
			continue
		}
		if name := a.TypeName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func baseOf(t Type) Type {
	switch v := t.(type) {
	case *SimpleType:
		return v.Base
	case *ComplexType:
		return v.Base
	default:
		return nil
	}
}
