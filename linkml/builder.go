package linkml

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Documentation tier subsets seeded into every schema skeleton.
// Unreferenced subsets are dropped again by Finalize.
var tierSubsets = []struct {
	name        string
	description string
}{
	{"NBO_Tier1", "Metadata required for a minimal description of the imaging experiment."},
	{"NBO_Tier2", "Metadata recommended for a reproducible description of the imaging experiment."},
	{"NBO_Tier3", "Metadata for a comprehensive description of the imaging experiment."},
}

// Prefix is one extra prefix-to-URI mapping supplied by the caller.
type Prefix struct {
	Name string
	URI  string
}

// Metadata overrides the schema header fields derived from the target
// namespace. Empty fields keep the derived value.
type Metadata struct {
	SchemaID      string
	SchemaName    string
	SchemaTitle   string
	DefaultPrefix string
	License       string
	SchemaVersion string
	ExtraPrefixes []Prefix
}

// Builder owns one Schema under construction. A single Builder is
// created per conversion run and passed by reference through every
// processing phase; nothing else mutates the schema.
type Builder struct {
	schema *Schema
	log    *zap.SugaredLogger
}

// NewBuilder creates a builder around a fresh schema skeleton. The
// schema name, id, title and default prefix derive from the target
// namespace unless meta overrides them.
func NewBuilder(targetNamespace string, meta Metadata, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	name := meta.SchemaName
	if name == "" {
		name = InferPrefix(targetNamespace)
	}
	id := meta.SchemaID
	if id == "" {
		if targetNamespace != "" {
			id = strings.TrimRight(targetNamespace, "/") + "/linkml"
		} else {
			id = "https://w3id.org/linkml/schema"
		}
	}
	title := meta.SchemaTitle
	if title == "" {
		title = strings.ToUpper(name) + " Schema"
	}
	defaultPrefix := meta.DefaultPrefix
	if defaultPrefix == "" {
		defaultPrefix = name
	}
	license := meta.License
	if license == "" {
		license = "https://creativecommons.org/publicdomain/zero/1.0/"
	}
	schemaVersion := meta.SchemaVersion
	if schemaVersion == "" {
		schemaVersion = "0.0.1"
	}

	nsURI := targetNamespace
	if nsURI == "" {
		nsURI = "https://example.org/" + name + "#"
	}
	prefixes := NewOrderedMap[string]()
	prefixes.Set("linkml", "https://w3id.org/linkml/")
	prefixes.Set("xsd", "http://www.w3.org/2001/XMLSchema#")
	prefixes.Set(name, nsURI)
	prefixes.Set("schema", "http://schema.org/")
	for _, p := range meta.ExtraPrefixes {
		if p.Name != "" && p.URI != "" {
			prefixes.Set(p.Name, p.URI)
		}
	}

	subsets := NewOrderedMap[*Subset]()
	for _, t := range tierSubsets {
		subsets.Set(t.name, &Subset{Description: t.description})
	}

	return &Builder{
		schema: &Schema{
			ID:            id,
			Name:          name,
			Title:         title,
			Description:   "LinkML translation of the provided XML Schema",
			License:       license,
			Version:       schemaVersion,
			Prefixes:      prefixes,
			DefaultPrefix: defaultPrefix,
			DefaultRange:  "string",
			Subsets:       subsets,
			Classes:       NewOrderedMap[*ClassDef](),
			Slots:         NewOrderedMap[*SlotDef](),
			Enums:         NewOrderedMap[*EnumDef](),
		},
		log: log,
	}
}

// Schema returns the schema under construction.
func (b *Builder) Schema() *Schema {
	return b.schema
}

// EnsureClass returns the named class, creating an empty one when it
// does not exist yet.
func (b *Builder) EnsureClass(name string) *ClassDef {
	if cls, ok := b.schema.Classes.Get(name); ok {
		return cls
	}
	cls := &ClassDef{
		Name:       name,
		Attributes: NewOrderedMap[*SlotDef](),
	}
	b.schema.Classes.Set(name, cls)
	return cls
}

// Class returns the named class when it exists.
func (b *Builder) Class(name string) (*ClassDef, bool) {
	return b.schema.Classes.Get(name)
}

// KnownClass reports whether a class with this name exists.
func (b *Builder) KnownClass(name string) bool {
	return b.schema.Classes.Has(name)
}

// ClassNames returns all class names in insertion order.
func (b *Builder) ClassNames() []string {
	return b.schema.Classes.Keys()
}

// MergeAttribute adds slot to the named class, or merges it into an
// existing slot of the same name: the first non-empty description wins,
// a specific range beats the generic "string" and a later specific
// range replaces an earlier one, boolean flags turn on once set by
// either occurrence, in_subset lists union, and annotations union
// key-wise without overwriting. Returns the stored slot.
func (b *Builder) MergeAttribute(className string, slot *SlotDef) *SlotDef {
	cls := b.EnsureClass(className)

	existing, ok := cls.Attributes.Get(slot.Name)
	if !ok {
		cls.Attributes.Set(slot.Name, slot)
		return slot
	}

	if existing.Description == "" && slot.Description != "" {
		existing.Description = slot.Description
	}
	switch {
	case slot.Range == "":
	case slot.Range == "string" && !isGenericRange(existing.Range):
		// The generic range never downgrades a specific one.
	default:
		existing.Range = slot.Range
	}
	if existing.Pattern == "" && slot.Pattern != "" {
		existing.Pattern = slot.Pattern
	}
	if existing.MinimumValue == nil && slot.MinimumValue != nil {
		existing.MinimumValue = slot.MinimumValue
	}
	if existing.MaximumValue == nil && slot.MaximumValue != nil {
		existing.MaximumValue = slot.MaximumValue
	}
	existing.Required = existing.Required || slot.Required
	existing.Multivalued = existing.Multivalued || slot.Multivalued
	existing.Identifier = existing.Identifier || slot.Identifier
	existing.InSubset = unionStrings(existing.InSubset, slot.InSubset)
	existing.Annotations = mergeAnnotations(existing.Annotations, slot.Annotations)
	return existing
}

func isGenericRange(r string) bool {
	return r == "" || r == "string"
}

func unionStrings(dst, add []string) []string {
	for _, s := range add {
		found := false
		for _, have := range dst {
			if have == s {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

func mergeAnnotations(dst, src *OrderedMap[any]) *OrderedMap[any] {
	if src.IsZero() {
		return dst
	}
	if dst == nil {
		dst = NewOrderedMap[any]()
	}
	for _, k := range src.Keys() {
		if !dst.Has(k) {
			v, _ := src.Get(k)
			dst.Set(k, v)
		}
	}
	return dst
}

// AppendAnnotation records tag=value on the map, turning repeated tags
// into value lists. Identical repeated values are dropped. Use like
// append: m = AppendAnnotation(m, tag, value).
func AppendAnnotation(m *OrderedMap[any], tag string, value any) *OrderedMap[any] {
	if m == nil {
		m = NewOrderedMap[any]()
	}
	existing, ok := m.Get(tag)
	if !ok {
		m.Set(tag, value)
		return m
	}
	if list, isList := existing.([]any); isList {
		for _, have := range list {
			if have == value {
				return m
			}
		}
		m.Set(tag, append(list, value))
		return m
	}
	if existing == value {
		return m
	}
	m.Set(tag, []any{existing, value})
	return m
}

// EnsureEnum allocates the enum for (class, field) and returns its
// name. Allocation is idempotent: a second call with the same owner
// and field reuses the first enum and never duplicates values.
func (b *Builder) EnsureEnum(className, fieldName string, values []string) string {
	name := "Enum_" + sanitizeName(className) + "_" + sanitizeName(fieldName)
	if b.schema.Enums.Has(name) {
		return name
	}

	pv := NewOrderedMap[*PermissibleValue]()
	for _, v := range values {
		if !pv.Has(v) {
			pv.Set(v, &PermissibleValue{})
		}
	}
	b.schema.Enums.Set(name, &EnumDef{Name: name, PermissibleValues: pv})
	b.log.Debugw("enum allocated", "enum", name, "values", pv.Len())
	return name
}

// sanitizeName replaces every character that cannot appear in an
// identifier with an underscore.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// AddUniqueKey registers key slots under keyName on the class. Calling
// it again for the same key appends only slot names not yet present.
func (b *Builder) AddUniqueKey(className, keyName string, slots []string) {
	cls := b.EnsureClass(className)
	if cls.UniqueKeys == nil {
		cls.UniqueKeys = NewOrderedMap[*UniqueKey]()
	}
	key, ok := cls.UniqueKeys.Get(keyName)
	if !ok {
		key = &UniqueKey{}
		cls.UniqueKeys.Set(keyName, key)
	}
	key.UniqueKeySlots = unionStrings(key.UniqueKeySlots, slots)
}

// RegisterSubset ensures a subset exists in the registry. An existing
// subset keeps its description.
func (b *Builder) RegisterSubset(name, description string) {
	if b.schema.Subsets.Has(name) {
		return
	}
	b.schema.Subsets.Set(name, &Subset{Description: description})
}

// AncestorChain returns the is_a ancestry of className from most
// specific to most general, excluding the class itself. The walk stops
// on unknown parents and on cycles.
func (b *Builder) AncestorChain(className string) []string {
	var chain []string
	seen := map[string]bool{className: true}

	cur, ok := b.Class(className)
	for ok && cur.IsA != "" && !seen[cur.IsA] {
		seen[cur.IsA] = true
		chain = append(chain, cur.IsA)
		cur, ok = b.Class(cur.IsA)
	}
	return chain
}

// Finalize runs the cleanup pass and returns the finished schema:
// enums without values and empty registries are dropped, and the
// subset registry is synchronized with the tags actually referenced.
func (b *Builder) Finalize() *Schema {
	s := b.schema

	for _, name := range s.Enums.Keys() {
		enum, _ := s.Enums.Get(name)
		if enum.PermissibleValues.IsZero() {
			b.log.Debugw("dropping empty enum", "enum", name)
			s.Enums.Delete(name)
		}
	}

	referenced := map[string]bool{}
	for _, className := range s.Classes.Keys() {
		cls, _ := s.Classes.Get(className)
		for _, tag := range cls.InSubset {
			referenced[tag] = true
		}
		for _, slotName := range cls.Attributes.Keys() {
			slot, _ := cls.Attributes.Get(slotName)
			for _, tag := range slot.InSubset {
				referenced[tag] = true
			}
		}
	}
	for _, tag := range sortedTags(referenced) {
		if !s.Subsets.Has(tag) {
			s.Subsets.Set(tag, &Subset{Description: tag})
		}
	}
	for _, name := range s.Subsets.Keys() {
		if !referenced[name] {
			s.Subsets.Delete(name)
		}
	}

	return s
}

// Registry insertion must not depend on map iteration order.
func sortedTags(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
