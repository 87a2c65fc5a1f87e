package convert

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/jsonschema"
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
)

// hintPass folds the JSON Schema view back onto already-built element
// classes. It only reinforces signals the type walk may have missed:
// requiredness lists, enumerations, array shapes and reference targets
// carried by the xsdType hints.
type hintPass struct {
	b        *linkml.Builder
	resolver *referenceResolver
	log      *zap.SugaredLogger
}

func newHintPass(b *linkml.Builder, resolver *referenceResolver, log *zap.SugaredLogger) *hintPass {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &hintPass{b: b, resolver: resolver, log: log}
}

// apply walks the document's top-level element entries in name order
// and merges one slot per property into the matching class. Entries
// without a class or without inline properties contribute nothing.
func (h *hintPass) apply(doc *jsonschema.Document) {
	if doc == nil {
		return
	}
	for _, className := range sortedNames(doc.Properties) {
		def := doc.Properties[className]
		if !h.b.KnownClass(className) || len(def.Properties) == 0 {
			continue
		}
		required := def.RequiredSet()
		for _, rawName := range sortedPropNames(def.Properties) {
			h.mergeHint(className, rawName, def.Properties[rawName], required)
		}
	}
}

func (h *hintPass) mergeHint(className, rawName string, prop *jsonschema.Property, required map[string]bool) {
	isAttribute := strings.HasPrefix(rawName, "@")
	cleaned := strings.TrimPrefix(rawName, "@")
	if cleaned == "" || prop == nil {
		return
	}
	slot := &linkml.SlotDef{Name: cleaned}

	if r := rangeFromHint(prop); r != "" {
		slot.Range = r
	} else {
		slot.Range = rangeFromJSONType(prop.Type)
	}
	if len(prop.Enum) > 0 {
		slot.Range = h.b.EnsureEnum(className, cleaned, prop.Enum)
	}
	if prop.Type == "array" {
		slot.Multivalued = true
	}
	if required[rawName] || required[cleaned] {
		slot.Required = true
	}

	if strings.EqualFold(cleaned, "id") && h.resolver.classIsRefLike(className) {
		hint := prop.XSDType
		if hint == "" {
			hint = prop.XSDBaseType
		}
		if target := h.resolver.referenceTargetForClass(className, localPart(hint)); target != "" {
			slot.Range = target
		}
	}

	applyDocText(slotTarget(slot), prop.Description)

	if isAttribute {
		if strings.EqualFold(cleaned, "id") ||
			strings.HasSuffix(prop.XSDType, "ID") || strings.HasSuffix(prop.XSDBaseType, "ID") {
			slot.Identifier = true
		}
		if strings.HasSuffix(prop.XSDType, "IDREFS") || strings.HasSuffix(prop.XSDBaseType, "IDREFS") {
			slot.Multivalued = true
		}
	}

	h.b.MergeAttribute(className, slot)
}

// rangeFromHint derives a range from the property's structure: a $ref
// names a class, an array defers to its item shape. Scalar properties
// return "" so the JSON type mapping decides.
func rangeFromHint(prop *jsonschema.Property) string {
	if prop == nil {
		return ""
	}
	if prop.Ref != "" {
		return strings.TrimPrefix(prop.Ref, "#/$defs/")
	}
	if prop.Type == "array" {
		return rangeFromHint(prop.Items)
	}
	return ""
}

func rangeFromJSONType(jsonType string) string {
	switch jsonType {
	case "integer":
		return "integer"
	case "number":
		return "float"
	case "boolean":
		return "boolean"
	default:
		return "string"
	}
}

// Hint maps are plain JSON maps; iterate them in name order so merge
// outcomes do not depend on map iteration.
func sortedNames(m map[string]*jsonschema.Definition) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedPropNames(m map[string]*jsonschema.Property) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
