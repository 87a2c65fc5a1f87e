package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureClass(t *testing.T) {
	b := NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", Metadata{}, nil)

	image := b.EnsureClass("Image")
	require.NotNil(t, image)
	assert.Equal(t, "Image", image.Name)

	again := b.EnsureClass("Image")
	assert.Same(t, image, again)
	assert.True(t, b.KnownClass("Image"))
	assert.False(t, b.KnownClass("Pixels"))
}

func TestBuilderSkeleton(t *testing.T) {
	b := NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", Metadata{}, nil)
	s := b.Schema()

	assert.Equal(t, "http://www.openmicroscopy.org/Schemas/OME/2016-06/linkml", s.ID)
	assert.Equal(t, "ome", s.Name)
	assert.Equal(t, "OME Schema", s.Title)
	assert.Equal(t, "ome", s.DefaultPrefix)
	assert.Equal(t, "string", s.DefaultRange)
	assert.Equal(t, "https://creativecommons.org/publicdomain/zero/1.0/", s.License)
	assert.Equal(t, "0.0.1", s.Version)

	uri, ok := s.Prefixes.Get("ome")
	require.True(t, ok)
	assert.Equal(t, "http://www.openmicroscopy.org/Schemas/OME/2016-06", uri)

	assert.True(t, s.Subsets.Has("NBO_Tier1"))
	assert.True(t, s.Subsets.Has("NBO_Tier3"))
}

func TestBuilderMetadataOverrides(t *testing.T) {
	meta := Metadata{
		SchemaID:      "https://example.org/custom",
		SchemaName:    "custom",
		SchemaTitle:   "Custom Title",
		DefaultPrefix: "cst",
		License:       "https://creativecommons.org/licenses/by/4.0/",
		SchemaVersion: "2.1.0",
		ExtraPrefixes: []Prefix{{Name: "dc", URI: "http://purl.org/dc/terms/"}},
	}
	b := NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", meta, nil)
	s := b.Schema()

	assert.Equal(t, "https://example.org/custom", s.ID)
	assert.Equal(t, "custom", s.Name)
	assert.Equal(t, "Custom Title", s.Title)
	assert.Equal(t, "cst", s.DefaultPrefix)
	assert.Equal(t, "https://creativecommons.org/licenses/by/4.0/", s.License)
	assert.Equal(t, "2.1.0", s.Version)

	uri, ok := s.Prefixes.Get("dc")
	require.True(t, ok)
	assert.Equal(t, "http://purl.org/dc/terms/", uri)
	assert.True(t, s.Prefixes.Has("custom"))
}

func TestMergeAttribute(t *testing.T) {
	t.Run("description first wins", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "Name", Description: "The image name."})
		got := b.MergeAttribute("Image", &SlotDef{Name: "Name", Description: "Something else."})
		assert.Equal(t, "The image name.", got.Description)
	})

	t.Run("empty description filled by later occurrence", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "Name"})
		got := b.MergeAttribute("Image", &SlotDef{Name: "Name", Description: "Filled in."})
		assert.Equal(t, "Filled in.", got.Description)
	})

	t.Run("specific range beats string", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "Pixels", Range: "string"})
		got := b.MergeAttribute("Image", &SlotDef{Name: "Pixels", Range: "Pixels"})
		assert.Equal(t, "Pixels", got.Range)
	})

	t.Run("specific range survives later string", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "Pixels", Range: "Pixels"})
		got := b.MergeAttribute("Image", &SlotDef{Name: "Pixels", Range: "string"})
		assert.Equal(t, "Pixels", got.Range)
	})

	t.Run("later specific range replaces earlier", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Channel", &SlotDef{Name: "ImageRef", Range: "integer"})
		got := b.MergeAttribute("Channel", &SlotDef{Name: "ImageRef", Range: "Image"})
		assert.Equal(t, "Image", got.Range)
	})

	t.Run("in_subset union", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "ID", InSubset: []string{"NBO_Tier1"}})
		got := b.MergeAttribute("Image", &SlotDef{Name: "ID", InSubset: []string{"NBO_Tier1", "NBO_Tier2"}})
		assert.Equal(t, []string{"NBO_Tier1", "NBO_Tier2"}, got.InSubset)
	})

	t.Run("annotations union without overwrite", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		first := NewOrderedMap[any]()
		first.Set("domain", "acquisition")
		b.MergeAttribute("Image", &SlotDef{Name: "ID", Annotations: first})

		second := NewOrderedMap[any]()
		second.Set("domain", "other")
		second.Set("category", "core")
		got := b.MergeAttribute("Image", &SlotDef{Name: "ID", Annotations: second})

		v, _ := got.Annotations.Get("domain")
		assert.Equal(t, "acquisition", v)
		assert.True(t, got.Annotations.Has("category"))
	})

	t.Run("boolean flags turn on once set", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Image", &SlotDef{Name: "ID"})
		got := b.MergeAttribute("Image", &SlotDef{Name: "ID", Required: true, Identifier: true})
		assert.True(t, got.Required)
		assert.True(t, got.Identifier)

		got = b.MergeAttribute("Image", &SlotDef{Name: "ID"})
		assert.True(t, got.Required, "later occurrence must not clear flags")
	})

	t.Run("facets fill when absent", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		b.MergeAttribute("Plane", &SlotDef{Name: "Exposure"})
		min := 0.0
		got := b.MergeAttribute("Plane", &SlotDef{Name: "Exposure", Pattern: `\d+`, MinimumValue: &min})
		assert.Equal(t, `\d+`, got.Pattern)
		require.NotNil(t, got.MinimumValue)
		assert.Equal(t, 0.0, *got.MinimumValue)
	})

	t.Run("stored slot is canonical", func(t *testing.T) {
		b := NewBuilder("", Metadata{}, nil)
		first := b.MergeAttribute("Image", &SlotDef{Name: "Name"})
		second := b.MergeAttribute("Image", &SlotDef{Name: "Name"})
		assert.Same(t, first, second)
	})
}

func TestEnsureEnumIdempotent(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)

	name1 := b.EnsureEnum("Pixels", "Type", []string{"uint8", "uint16"})
	name2 := b.EnsureEnum("Pixels", "Type", []string{"uint8", "uint16"})

	assert.Equal(t, "Enum_Pixels_Type", name1)
	assert.Equal(t, name1, name2)
	assert.Equal(t, 1, b.Schema().Enums.Len())

	enum, ok := b.Schema().Enums.Get(name1)
	require.True(t, ok)
	assert.Equal(t, []string{"uint8", "uint16"}, enum.PermissibleValues.Keys())
}

func TestEnsureEnumSanitizesNames(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)
	name := b.EnsureEnum("Detector Settings", "Read-Out", []string{"fast"})
	assert.Equal(t, "Enum_Detector_Settings_Read_Out", name)
}

func TestAddUniqueKey(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)
	b.EnsureClass("Image")

	b.AddUniqueKey("Image", "ImageIDKey", []string{"ID"})
	b.AddUniqueKey("Image", "ImageIDKey", []string{"ID", "Name"})

	cls, _ := b.Class("Image")
	key, ok := cls.UniqueKeys.Get("ImageIDKey")
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Name"}, key.UniqueKeySlots)
}

func TestAncestorChain(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)
	b.EnsureClass("Shape")
	rect := b.EnsureClass("Rectangle")
	rect.IsA = "Shape"
	rounded := b.EnsureClass("RoundedRectangle")
	rounded.IsA = "Rectangle"

	assert.Equal(t, []string{"Rectangle", "Shape"}, b.AncestorChain("RoundedRectangle"))
	assert.Empty(t, b.AncestorChain("Shape"))
}

func TestAncestorChainCycle(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)
	a := b.EnsureClass("A")
	a.IsA = "B"
	bc := b.EnsureClass("B")
	bc.IsA = "A"

	chain := b.AncestorChain("A")
	assert.Equal(t, []string{"B"}, chain)
}

func TestAppendAnnotation(t *testing.T) {
	var m *OrderedMap[any]

	m = AppendAnnotation(m, "references", "Image")
	v, _ := m.Get("references")
	assert.Equal(t, "Image", v)

	// identical value dropped
	m = AppendAnnotation(m, "references", "Image")
	v, _ = m.Get("references")
	assert.Equal(t, "Image", v)

	// second distinct value turns into a list
	m = AppendAnnotation(m, "references", "Channel")
	v, _ = m.Get("references")
	assert.Equal(t, []any{"Image", "Channel"}, v)

	// list append dedupes too
	m = AppendAnnotation(m, "references", "Channel")
	v, _ = m.Get("references")
	assert.Equal(t, []any{"Image", "Channel"}, v)
}

func TestFinalize(t *testing.T) {
	b := NewBuilder("", Metadata{}, nil)

	cls := b.EnsureClass("Image")
	b.MergeAttribute("Image", &SlotDef{Name: "ID", InSubset: []string{"NBO_Tier1"}})
	cls.InSubset = []string{"custom_subset"}

	// empty enum should vanish, populated one stays
	b.Schema().Enums.Set("Enum_Empty", &EnumDef{Name: "Enum_Empty", PermissibleValues: NewOrderedMap[*PermissibleValue]()})
	b.EnsureEnum("Image", "Kind", []string{"still", "stack"})

	s := b.Finalize()

	assert.False(t, s.Enums.Has("Enum_Empty"))
	assert.True(t, s.Enums.Has("Enum_Image_Kind"))

	// unreferenced tier subsets dropped, referenced ones kept, custom added
	assert.True(t, s.Subsets.Has("NBO_Tier1"))
	assert.False(t, s.Subsets.Has("NBO_Tier2"))
	assert.False(t, s.Subsets.Has("NBO_Tier3"))
	assert.True(t, s.Subsets.Has("custom_subset"))
}
