// Package linkml holds the target schema model and its builder. The
// model mirrors the LinkML document layout: a schema header with
// prefixes and subsets, classes with class-owned attribute slots,
// enums, and class-level rules and unique keys.
package linkml

// Schema is the root of one generated schema document.
type Schema struct {
	ID            string                 `yaml:"id"`
	Name          string                 `yaml:"name"`
	Title         string                 `yaml:"title,omitempty"`
	Description   string                 `yaml:"description,omitempty"`
	License       string                 `yaml:"license,omitempty"`
	Version       string                 `yaml:"version,omitempty"`
	Prefixes      *OrderedMap[string]    `yaml:"prefixes,omitempty"`
	DefaultPrefix string                 `yaml:"default_prefix,omitempty"`
	DefaultRange  string                 `yaml:"default_range,omitempty"`
	Subsets       *OrderedMap[*Subset]   `yaml:"subsets,omitempty"`
	Classes       *OrderedMap[*ClassDef] `yaml:"classes,omitempty"`
	Slots         *OrderedMap[*SlotDef]  `yaml:"slots,omitempty"`
	Enums         *OrderedMap[*EnumDef]  `yaml:"enums,omitempty"`
}

// Subset is a named grouping of schema elements, used here for the
// documentation tier tags.
type Subset struct {
	Description string `yaml:"description,omitempty"`
}

// ClassDef is one class in the target schema. Attributes hold only the
// class's own slots; inherited slots stay on the ancestor and are
// reached through is_a.
type ClassDef struct {
	Name        string                  `yaml:"-"`
	Description string                  `yaml:"description,omitempty"`
	IsA         string                  `yaml:"is_a,omitempty"`
	Abstract    bool                    `yaml:"abstract,omitempty"`
	Attributes  *OrderedMap[*SlotDef]   `yaml:"attributes,omitempty"`
	Rules       []*Rule                 `yaml:"rules,omitempty"`
	UniqueKeys  *OrderedMap[*UniqueKey] `yaml:"unique_keys,omitempty"`
	InSubset    []string                `yaml:"in_subset,omitempty"`
	Annotations *OrderedMap[any]        `yaml:"annotations,omitempty"`
}

// OwnAttributeNames returns the class's own slot names in insertion
// order, not including inherited slots.
func (c *ClassDef) OwnAttributeNames() []string {
	return c.Attributes.Keys()
}

// SlotDef is one attribute slot. Range names a primitive, an enum or a
// class. Minimum/maximum use pointers so zero is distinguishable from
// absent.
type SlotDef struct {
	Name         string           `yaml:"-"`
	Description  string           `yaml:"description,omitempty"`
	Range        string           `yaml:"range,omitempty"`
	Required     bool             `yaml:"required,omitempty"`
	Multivalued  bool             `yaml:"multivalued,omitempty"`
	Identifier   bool             `yaml:"identifier,omitempty"`
	Pattern      string           `yaml:"pattern,omitempty"`
	MinimumValue *float64         `yaml:"minimum_value,omitempty"`
	MaximumValue *float64         `yaml:"maximum_value,omitempty"`
	InSubset     []string         `yaml:"in_subset,omitempty"`
	Annotations  *OrderedMap[any] `yaml:"annotations,omitempty"`
}

// EnumDef is a generated enumeration.
type EnumDef struct {
	Name              string                         `yaml:"-"`
	Description       string                         `yaml:"description,omitempty"`
	PermissibleValues *OrderedMap[*PermissibleValue] `yaml:"permissible_values,omitempty"`
}

// PermissibleValue is one allowed enum value.
type PermissibleValue struct {
	Description string `yaml:"description,omitempty"`
}

// UniqueKey names the slot set that must be unique per class instance.
type UniqueKey struct {
	UniqueKeySlots []string `yaml:"unique_key_slots"`
	Description    string   `yaml:"description,omitempty"`
}

// Rule expresses a class-level constraint. The formatter only emits
// exactly_one_of rules for single-field choice alternatives.
type Rule struct {
	Description  string       `yaml:"description,omitempty"`
	ExactlyOneOf []*Condition `yaml:"exactly_one_of,omitempty"`
}

// Condition guards slots with per-slot requirements.
type Condition struct {
	SlotConditions *OrderedMap[*SlotCondition] `yaml:"slot_conditions,omitempty"`
}

// SlotCondition is the per-slot part of a rule condition.
type SlotCondition struct {
	Required bool `yaml:"required"`
}
