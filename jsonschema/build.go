package jsonschema

import (
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// Build derives the hint document from a resolved source schema. Named
// complex types get object definitions, named simple types a scalar
// definition carrying their enumeration and base, and every global
// element a properties entry.
func Build(schema *xsd.Schema) *Document {
	doc := &Document{
		Schema:     draft,
		ID:         schema.TargetNamespace,
		Type:       "object",
		Properties: make(map[string]*Definition),
		Defs:       make(map[string]*Definition),
	}

	for _, t := range schema.OrderedTypes() {
		switch v := t.(type) {
		case *xsd.ComplexType:
			doc.Defs[v.Name] = buildComplex(v)
		case *xsd.SimpleType:
			doc.Defs[v.Name] = buildSimple(v)
		}
	}

	for _, el := range schema.OrderedElements() {
		doc.Properties[el.Name] = buildElementDef(el)
	}
	return doc
}

func buildComplex(ct *xsd.ComplexType) *Definition {
	body := &Definition{
		Type:       "object",
		Properties: make(map[string]*Property),
	}

	for _, attr := range ct.Attributes {
		key := "@" + attr.Name
		body.Properties[key] = buildAttrProp(attr)
		if attr.Use == xsd.UseRequired {
			body.Required = append(body.Required, key)
		}
	}
	if ct.Content != nil {
		walkContent(body, ct.Content, false, false)
	}

	if base, ok := ct.Base.(*xsd.ComplexType); ok && base.Name != "" {
		return &Definition{AllOf: []*Definition{
			{Ref: "#/$defs/" + base.Name},
			body,
		}}
	}
	if len(body.Properties) == 0 {
		body.Properties = nil
	}
	return body
}

func buildSimple(st *xsd.SimpleType) *Definition {
	def := &Definition{Type: "string"}
	if primitive, ok := xsd.PrimitiveBase(st); ok {
		def.Type = jsonType(primitive)
	}
	def.Enum = enumValues(st)
	return def
}

func buildElementDef(el *xsd.Element) *Definition {
	switch v := el.Type.(type) {
	case *xsd.ComplexType:
		if v.Name != "" {
			return &Definition{Ref: "#/$defs/" + v.Name}
		}
		return buildComplex(v)
	case *xsd.SimpleType:
		if v.Name != "" {
			return &Definition{Ref: "#/$defs/" + v.Name}
		}
		return buildSimple(v)
	default:
		return &Definition{Type: "object"}
	}
}

// walkContent flattens a content particle into body. Choice members
// are never required; a repeating enclosing group makes every element
// inside it repeat.
func walkContent(body *Definition, p *xsd.Particle, inChoice, repeats bool) {
	repeats = repeats || p.Repeats()

	switch term := p.Term.(type) {
	case *xsd.Element:
		name := term.Name
		if name == "" && term.Ref != nil {
			name = term.Ref.Name
		}
		if name == "" {
			return
		}
		prop := buildElemProp(term)
		if repeats {
			prop = &Property{Type: "array", Items: prop}
		}
		body.Properties[name] = prop
		if p.MinOccurs >= 1 && !inChoice {
			body.Required = append(body.Required, name)
		}
	case *xsd.ModelGroup:
		if term.Compositor == xsd.CompositorChoice {
			attachOneOf(body, term)
			inChoice = true
		}
		for _, child := range term.Particles {
			walkContent(body, child, inChoice, repeats)
		}
	case *xsd.Wildcard:
		// Open content carries no property hints.
	}
}

// attachOneOf records the exclusive element names of a choice as oneOf
// branches. Only the first choice of a definition is recorded; group
// branches contribute properties but no exclusivity entry.
func attachOneOf(body *Definition, group *xsd.ModelGroup) {
	if body.OneOf != nil {
		return
	}
	var branches []*Definition
	for _, child := range group.Particles {
		el, ok := child.Term.(*xsd.Element)
		if !ok {
			continue
		}
		name := el.Name
		if name == "" && el.Ref != nil {
			name = el.Ref.Name
		}
		if name == "" {
			continue
		}
		branches = append(branches, &Definition{Required: []string{name}})
	}
	if len(branches) >= 2 {
		body.OneOf = branches
	}
}

func buildAttrProp(attr *xsd.Attribute) *Property {
	prop := &Property{XSDType: declaredName(attr.Type, attr.TypeName)}
	fillScalar(prop, attr.Type)
	if doc, ok := attr.Ann.Doc(); ok {
		prop.Description = doc
	}
	return prop
}

func buildElemProp(el *xsd.Element) *Property {
	t := el.Type
	typeName := el.TypeName
	if t == nil && el.Ref != nil {
		t = el.Ref.Type
		if typeName == "" {
			typeName = el.Ref.TypeName
		}
	}

	switch v := t.(type) {
	case *xsd.ComplexType:
		if v.Name != "" {
			return &Property{Ref: "#/$defs/" + v.Name}
		}
		return &Property{Type: "object"}
	case *xsd.SimpleType:
		prop := &Property{XSDType: declaredName(v, typeName)}
		fillScalar(prop, v)
		return prop
	default:
		return &Property{XSDType: typeName}
	}
}

// fillScalar sets the JSON type, primitive base and enumeration hints
// from a simple type. An unresolved type leaves the property bare.
func fillScalar(prop *Property, t xsd.Type) {
	if t == nil {
		return
	}
	if primitive, ok := xsd.PrimitiveBase(t); ok {
		prop.XSDBaseType = primitive
		prop.Type = jsonType(primitive)
	}
	prop.Enum = enumValues(t)
}

func declaredName(t xsd.Type, declared string) string {
	if declared != "" {
		return declared
	}
	if t != nil {
		return t.TypeName()
	}
	return ""
}

// enumValues returns the enumeration facets of the nearest restriction
// step that has any, walking the base chain cycle-guarded.
func enumValues(t xsd.Type) []string {
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

// jsonType maps an XML Schema builtin name onto the JSON Schema type
// vocabulary.
func jsonType(primitive string) string {
	switch primitive {
	case "boolean":
		return "boolean"
	case "decimal", "float", "double":
		return "number"
	case "integer", "long", "int", "short", "byte",
		"nonNegativeInteger", "nonPositiveInteger",
		"negativeInteger", "positiveInteger",
		"unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte":
		return "integer"
	default:
		return "string"
	}
}
