package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

func elementParticle(name string, minOccurs, maxOccurs int) *xsd.Particle {
	return &xsd.Particle{
		MinOccurs: minOccurs,
		MaxOccurs: maxOccurs,
		Term:      &xsd.Element{Name: name},
	}
}

func TestExtractChoiceBranches(t *testing.T) {
	t.Run("element alternatives", func(t *testing.T) {
		group := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				elementParticle("Laser", 1, 1),
				elementParticle("Arc", 1, 1),
				elementParticle("Filament", 0, 1),
			},
		}
		branches := extractChoiceBranches(group)
		require.Len(t, branches, 3)
		assert.Equal(t, []choiceField{{Name: "Laser", Required: true}}, branches[0])
		assert.Equal(t, []choiceField{{Name: "Arc", Required: true}}, branches[1])
		assert.Equal(t, []choiceField{{Name: "Filament", Required: false}}, branches[2])
	})

	t.Run("nested choice flattens into the outer one", func(t *testing.T) {
		inner := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				elementParticle("Arc", 1, 1),
				elementParticle("Filament", 1, 1),
			},
		}
		group := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				elementParticle("Laser", 1, 1),
				{MinOccurs: 1, MaxOccurs: 1, Term: inner},
			},
		}
		branches := extractChoiceBranches(group)
		require.Len(t, branches, 3)
		assert.Equal(t, "Laser", branches[0][0].Name)
		assert.Equal(t, "Arc", branches[1][0].Name)
		assert.Equal(t, "Filament", branches[2][0].Name)
	})

	t.Run("sequence alternative is one compound branch", func(t *testing.T) {
		seq := &xsd.ModelGroup{
			Compositor: xsd.CompositorSequence,
			Particles: []*xsd.Particle{
				elementParticle("X", 1, 1),
				elementParticle("Y", 1, 1),
			},
		}
		group := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				elementParticle("Point", 1, 1),
				{MinOccurs: 1, MaxOccurs: 1, Term: seq},
			},
		}
		branches := extractChoiceBranches(group)
		require.Len(t, branches, 2)
		assert.Len(t, branches[0], 1)
		assert.Equal(t, []choiceField{{Name: "X", Required: true}, {Name: "Y", Required: true}}, branches[1])
	})

	t.Run("ref particles use the referenced name", func(t *testing.T) {
		group := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				{MinOccurs: 1, MaxOccurs: 1, Term: &xsd.Element{Ref: &xsd.Element{Name: "Mask"}}},
				elementParticle("Label", 1, 1),
			},
		}
		branches := extractChoiceBranches(group)
		require.Len(t, branches, 2)
		assert.Equal(t, "Mask", branches[0][0].Name)
	})

	t.Run("wildcards contribute nothing", func(t *testing.T) {
		group := &xsd.ModelGroup{
			Compositor: xsd.CompositorChoice,
			Particles: []*xsd.Particle{
				{MinOccurs: 0, MaxOccurs: 1, Term: &xsd.Wildcard{}},
			},
		}
		assert.Empty(t, extractChoiceBranches(group))
	})
}

func singleFieldBranches(names ...string) [][]choiceField {
	branches := make([][]choiceField, 0, len(names))
	for _, name := range names {
		branches = append(branches, []choiceField{{Name: name, Required: true}})
	}
	return branches
}

func TestApplyChoiceConstraintRule(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	h.applyChoiceConstraint("LightSourceGroup", singleFieldBranches("Laser", "Arc", "Filament"), false)

	cls, ok := b.Class("LightSourceGroup")
	require.True(t, ok)
	require.Len(t, cls.Rules, 1)

	rule := cls.Rules[0]
	assert.Equal(t, "Exactly one of Laser, Arc, Filament is required", rule.Description)
	require.Len(t, rule.ExactlyOneOf, 3)
	for i, want := range []string{"Laser", "Arc", "Filament"} {
		keys := rule.ExactlyOneOf[i].SlotConditions.Keys()
		require.Equal(t, []string{want}, keys)
		sc, _ := rule.ExactlyOneOf[i].SlotConditions.Get(want)
		assert.True(t, sc.Required)
	}
}

func TestApplyChoiceConstraintDeduplicatesFields(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	h.applyChoiceConstraint("Union", singleFieldBranches("Shape", "Shape", "Mask"), false)

	cls, ok := b.Class("Union")
	require.True(t, ok)
	require.Len(t, cls.Rules, 1)
	assert.Len(t, cls.Rules[0].ExactlyOneOf, 2)
}

func TestApplyChoiceConstraintNoRuleCases(t *testing.T) {
	t.Run("single distinct field", func(t *testing.T) {
		b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
		h := newChoiceHandler(b, nil)
		h.applyChoiceConstraint("Holder", singleFieldBranches("Only", "Only"), false)

		cls, ok := b.Class("Holder")
		if ok {
			assert.Empty(t, cls.Rules)
		}
		assert.Equal(t, []string{"Only"}, h.relaxSet["Holder"])
	})

	t.Run("compound branch", func(t *testing.T) {
		b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
		h := newChoiceHandler(b, nil)
		branches := [][]choiceField{
			{{Name: "Point", Required: true}},
			{{Name: "X", Required: true}, {Name: "Y", Required: true}},
		}
		h.applyChoiceConstraint("Geometry", branches, false)

		cls, ok := b.Class("Geometry")
		if ok {
			assert.Empty(t, cls.Rules)
		}
		// The spanned fields still cannot stay unconditionally required.
		assert.ElementsMatch(t, []string{"Point", "X", "Y"}, h.relaxSet["Geometry"])
	})

	t.Run("empty branches", func(t *testing.T) {
		b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
		h := newChoiceHandler(b, nil)
		h.applyChoiceConstraint("Empty", nil, false)
		assert.Empty(t, h.relaxSet)
	})
}

func TestRelaxChoiceConstraints(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	b.MergeAttribute("Instrument", &linkml.SlotDef{Name: "Laser", Range: "Laser", Required: true})
	b.MergeAttribute("Instrument", &linkml.SlotDef{Name: "Arc", Range: "Arc", Required: true})
	b.MergeAttribute("Instrument", &linkml.SlotDef{Name: "Detector", Range: "Detector", Required: true})

	h.applyChoiceConstraint("Instrument", singleFieldBranches("Laser", "Arc"), false)
	h.relaxChoiceConstraints()

	cls, _ := b.Class("Instrument")
	laser, _ := cls.Attributes.Get("Laser")
	arc, _ := cls.Attributes.Get("Arc")
	detector, _ := cls.Attributes.Get("Detector")

	assert.False(t, laser.Required)
	assert.False(t, arc.Required)
	assert.True(t, detector.Required, "fields outside the choice keep their flags")
	assert.False(t, laser.Multivalued)
}

func TestRelaxRepeatingChoiceForcesMultivalued(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	b.MergeAttribute("ROI", &linkml.SlotDef{Name: "Rectangle", Range: "Rectangle", Required: true})
	b.MergeAttribute("ROI", &linkml.SlotDef{Name: "Ellipse", Range: "Ellipse"})

	h.applyChoiceConstraint("ROI", singleFieldBranches("Rectangle", "Ellipse"), true)
	h.relaxChoiceConstraints()

	cls, _ := b.Class("ROI")
	rectangle, _ := cls.Attributes.Get("Rectangle")
	ellipse, _ := cls.Attributes.Get("Ellipse")

	assert.True(t, rectangle.Multivalued)
	assert.True(t, ellipse.Multivalued)
	assert.False(t, rectangle.Required)
}

func TestRelaxSkipsMissingSlots(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	h.applyChoiceConstraint("Sparse", singleFieldBranches("Present", "Absent"), false)
	b.MergeAttribute("Sparse", &linkml.SlotDef{Name: "Present", Required: true})

	require.NotPanics(t, func() { h.relaxChoiceConstraints() })

	cls, _ := b.Class("Sparse")
	present, _ := cls.Attributes.Get("Present")
	assert.False(t, present.Required)
}

func TestRelaxSkipsUnknownClasses(t *testing.T) {
	b := linkml.NewBuilder("http://www.openmicroscopy.org/Schemas/OME/2016-06", linkml.Metadata{}, nil)
	h := newChoiceHandler(b, nil)

	// Record a relax set without ever creating the class.
	h.record("Ghost", []string{"X"}, false)
	require.NotPanics(t, func() { h.relaxChoiceConstraints() })
}
