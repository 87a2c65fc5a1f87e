package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ome-nbo-tools/ome-nbo-formatter/jsonschema"
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
)

func newTestHintPass(classNames ...string) (*linkml.Builder, *hintPass) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	for _, name := range classNames {
		b.EnsureClass(name)
	}
	resolver := newReferenceResolver(b, map[string]string{}, map[string]bool{}, nil)
	return b, newHintPass(b, resolver, nil)
}

func attributeSlot(t *testing.T, b *linkml.Builder, className, slotName string) *linkml.SlotDef {
	t.Helper()
	cls, ok := b.Class(className)
	require.True(t, ok, "class %s", className)
	slot, ok := cls.Attributes.Get(slotName)
	require.True(t, ok, "slot %s.%s", className, slotName)
	return slot
}

func TestHintPassMergesProperties(t *testing.T) {
	b, h := newTestHintPass("Image")

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		"Image": {
			Type: "object",
			Properties: map[string]*jsonschema.Property{
				"@Name":       {Type: "string"},
				"@SizeX":      {Type: "integer", XSDType: "PositiveInt", XSDBaseType: "positiveInteger"},
				"@TimeIncr":   {Type: "number"},
				"Description": {Type: "string", Description: "Free text about the image."},
				"Pixels":      {Ref: "#/$defs/Pixels"},
				"Channel":     {Type: "array", Items: &jsonschema.Property{Ref: "#/$defs/Channel"}},
			},
			Required: []string{"@Name", "Pixels"},
		},
	}})

	assert.Equal(t, "string", attributeSlot(t, b, "Image", "Name").Range)
	assert.True(t, attributeSlot(t, b, "Image", "Name").Required, "raw attribute key in required list")

	assert.Equal(t, "integer", attributeSlot(t, b, "Image", "SizeX").Range)
	assert.Equal(t, "float", attributeSlot(t, b, "Image", "TimeIncr").Range)

	description := attributeSlot(t, b, "Image", "Description")
	assert.Equal(t, "Free text about the image.", description.Description)

	pixels := attributeSlot(t, b, "Image", "Pixels")
	assert.Equal(t, "Pixels", pixels.Range)
	assert.True(t, pixels.Required, "cleaned element key in required list")
	assert.False(t, pixels.Multivalued)

	channel := attributeSlot(t, b, "Image", "Channel")
	assert.Equal(t, "Channel", channel.Range)
	assert.True(t, channel.Multivalued)
	assert.False(t, channel.Required)
}

func TestHintPassSkipsUnknownClassesAndRefShapedEntries(t *testing.T) {
	b, h := newTestHintPass("Image")

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		// Not a class the type walk produced.
		"Ghost": {
			Type:       "object",
			Properties: map[string]*jsonschema.Property{"@X": {Type: "string"}},
		},
		// A $ref without inline properties carries no field hints.
		"Image": {Ref: "#/$defs/Image"},
	}})

	assert.False(t, b.KnownClass("Ghost"))
	image, _ := b.Class("Image")
	assert.Equal(t, 0, image.Attributes.Len())
}

func TestHintPassEnum(t *testing.T) {
	b, h := newTestHintPass("Channel")

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		"Channel": {
			Type: "object",
			Properties: map[string]*jsonschema.Property{
				"@AcquisitionMode": {Type: "string", Enum: []string{"WideField", "LaserScanningConfocalMicroscopy"}},
			},
		},
	}})

	slot := attributeSlot(t, b, "Channel", "AcquisitionMode")
	assert.Equal(t, "Enum_Channel_AcquisitionMode", slot.Range)
	assert.True(t, b.Schema().Enums.Has("Enum_Channel_AcquisitionMode"))
}

func TestHintPassReferenceTarget(t *testing.T) {
	b, h := newTestHintPass("ChannelRef", "Channel")
	h.resolver.known["Channel"] = true

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		"ChannelRef": {
			Type: "object",
			Properties: map[string]*jsonschema.Property{
				"@ID": {Type: "string", XSDType: "ChannelID", XSDBaseType: "IDREF"},
			},
			Required: []string{"@ID"},
		},
	}})

	slot := attributeSlot(t, b, "ChannelRef", "ID")
	assert.Equal(t, "Channel", slot.Range)
	assert.True(t, slot.Identifier)
	assert.True(t, slot.Required)
}

func TestHintPassIdentifierFromBaseType(t *testing.T) {
	b, h := newTestHintPass("Shape")

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		"Shape": {
			Type: "object",
			Properties: map[string]*jsonschema.Property{
				"@ShapeKey": {Type: "string", XSDType: "ShapeID", XSDBaseType: "ID"},
				"@Linked":   {Type: "string", XSDType: "LinkTargets", XSDBaseType: "IDREFS"},
				"Value":     {Type: "string", XSDType: "ShapeID"},
			},
		},
	}})

	assert.True(t, attributeSlot(t, b, "Shape", "ShapeKey").Identifier)
	assert.True(t, attributeSlot(t, b, "Shape", "Linked").Multivalued)
	assert.False(t, attributeSlot(t, b, "Shape", "Value").Identifier,
		"identifier shapes only apply to attribute keys")
}

func TestHintPassMergesIntoExistingSlot(t *testing.T) {
	b, h := newTestHintPass("Pixels")
	b.MergeAttribute("Pixels", &linkml.SlotDef{Name: "SizeX", Range: "integer"})

	h.apply(&jsonschema.Document{Properties: map[string]*jsonschema.Definition{
		"Pixels": {
			Type: "object",
			Properties: map[string]*jsonschema.Property{
				"@SizeX": {Type: "string"},
			},
			Required: []string{"@SizeX"},
		},
	}})

	slot := attributeSlot(t, b, "Pixels", "SizeX")
	assert.Equal(t, "integer", slot.Range, "a generic hint never downgrades the walked range")
	assert.True(t, slot.Required, "requiredness still merges in")
}

func TestHintPassNilDocument(t *testing.T) {
	_, h := newTestHintPass("Image")
	assert.NotPanics(t, func() { h.apply(nil) })
}

func TestRangeFromHint(t *testing.T) {
	assert.Equal(t, "Pixels", rangeFromHint(&jsonschema.Property{Ref: "#/$defs/Pixels"}))
	assert.Equal(t, "Channel", rangeFromHint(&jsonschema.Property{
		Type:  "array",
		Items: &jsonschema.Property{Ref: "#/$defs/Channel"},
	}))
	assert.Equal(t, "", rangeFromHint(&jsonschema.Property{Type: "array"}))
	assert.Equal(t, "", rangeFromHint(&jsonschema.Property{Type: "integer"}))
	assert.Equal(t, "", rangeFromHint(nil))
}
