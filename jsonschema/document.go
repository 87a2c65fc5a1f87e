// Package jsonschema builds a JSON Schema shaped view of a source
// schema. The conversion core reads it back as a secondary signal for
// requiredness, enumerations and array shapes, and the CLI can write
// it out as a sidecar document.
package jsonschema

import (
	"encoding/json"
	"os"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// Document is the root: named types live under $defs, global elements
// under properties (as a $ref when their type is named, inlined when
// anonymous).
type Document struct {
	Schema     string                 `json:"$schema,omitempty"`
	ID         string                 `json:"$id,omitempty"`
	Type       string                 `json:"type,omitempty"`
	Properties map[string]*Definition `json:"properties,omitempty"`
	Defs       map[string]*Definition `json:"$defs,omitempty"`
}

// Definition describes one object shape. Named base types become an
// allOf pair: a $ref to the base definition followed by the own body.
type Definition struct {
	Ref        string               `json:"$ref,omitempty"`
	Type       string               `json:"type,omitempty"`
	Enum       []string             `json:"enum,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
	Required   []string             `json:"required,omitempty"`
	AllOf      []*Definition        `json:"allOf,omitempty"`
	OneOf      []*Definition        `json:"oneOf,omitempty"`
}

// Property is one attribute or child element. Attribute keys carry a
// leading "@" in the enclosing properties map. The xsdType/xsdBaseType
// pair preserves the declared type name and its primitive base.
type Property struct {
	Type        string    `json:"type,omitempty"`
	Ref         string    `json:"$ref,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Items       *Property `json:"items,omitempty"`
	XSDType     string    `json:"xsdType,omitempty"`
	XSDBaseType string    `json:"xsdBaseType,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Body returns the part of the definition that carries the type's own
// properties: the last allOf member for derived types, the definition
// itself otherwise.
func (d *Definition) Body() *Definition {
	if d == nil {
		return nil
	}
	if len(d.AllOf) > 0 {
		return d.AllOf[len(d.AllOf)-1]
	}
	return d
}

// RequiredSet returns the body's required names as a set.
func (d *Definition) RequiredSet() map[string]bool {
	body := d.Body()
	if body == nil {
		return nil
	}
	set := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		set[name] = true
	}
	return set
}

// Marshal renders the document as indented JSON. Map keys serialize
// alphabetically, keeping output deterministic.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal json schema")
	}
	return append(data, '\n'), nil
}

// WriteFile writes the document to path.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write json schema %s", path)
	}
	return nil
}
