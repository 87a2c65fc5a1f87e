package convert

import (
	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// typeProcessor builds classes from complex types and global elements.
// Complex types come first; elements then either link to their named
// type's class through is_a or inline an anonymous type's fields into
// their own class.
type typeProcessor struct {
	b          *linkml.Builder
	slots      *slotBuilder
	choices    *choiceHandler
	identities *identityProcessor
	log        *zap.SugaredLogger

	// topLevel restricts element processing to the named global
	// elements when non-empty.
	topLevel map[string]bool

	// inlined guards anonymous type synthesis so a global element and
	// ref particles pointing at it walk the shared content model once.
	inlined map[string]bool
}

func newTypeProcessor(b *linkml.Builder, slots *slotBuilder, choices *choiceHandler, identities *identityProcessor, topLevel []string, log *zap.SugaredLogger) *typeProcessor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var filter map[string]bool
	if len(topLevel) > 0 {
		filter = map[string]bool{}
		for _, name := range topLevel {
			filter[name] = true
		}
	}
	return &typeProcessor{
		b:          b,
		slots:      slots,
		choices:    choices,
		identities: identities,
		log:        log,
		topLevel:   filter,
		inlined:    map[string]bool{},
	}
}

// processComplexTypes creates or updates one class per named complex
// type in declaration order.
func (p *typeProcessor) processComplexTypes(src *xsd.Schema, inherit map[string]string) {
	for _, t := range src.OrderedTypes() {
		ct, ok := t.(*xsd.ComplexType)
		if !ok || ct.Name == "" {
			continue
		}
		p.processTypeInto(ct.Name, ct, inherit[ct.Name])
	}
}

// processTypeInto populates className from one complex type: parent
// link, abstractness, documentation, attribute slots and content-model
// fields. Fields owned by the base type are not copied; they come
// through is_a lookup.
func (p *typeProcessor) processTypeInto(className string, ct *xsd.ComplexType, parent string) {
	cls := p.b.EnsureClass(className)
	if cls.IsA == "" && parent != "" && parent != className {
		cls.IsA = parent
	}
	if ct.Abstract {
		cls.Abstract = true
	}
	applyAnnotation(classTarget(cls), ct.Ann)

	for _, attr := range ct.Attributes {
		if attr.Name == "" || attr.Use == xsd.UseProhibited {
			continue
		}
		p.b.MergeAttribute(className, p.slots.buildAttributeSlot(className, attr.Name, attr))
	}

	if ct.Content != nil {
		p.processParticle(className, ct.Content, false, false)
	}
}

// processElements creates or updates one class per global element in
// declaration order, honoring the top-level filter when set.
func (p *typeProcessor) processElements(src *xsd.Schema) {
	for _, el := range src.OrderedElements() {
		if el.Name == "" {
			continue
		}
		if p.topLevel != nil && !p.topLevel[el.Name] {
			p.log.Debugw("element filtered out", "element", el.Name)
			continue
		}
		p.processElement(el)
	}
}

func (p *typeProcessor) processElement(el *xsd.Element) {
	cls := p.b.EnsureClass(el.Name)
	applyAnnotation(classTarget(cls), el.Ann)
	if el.Abstract {
		cls.Abstract = true
	}

	switch t := el.Type.(type) {
	case *xsd.ComplexType:
		if t.Name != "" {
			if cls.IsA == "" && t.Name != el.Name {
				cls.IsA = t.Name
			}
		} else {
			p.ensureInlineClass(el.Name, t)
		}
	case *xsd.SimpleType:
		// Text-only element; the hint pass may still attach a range.
	}

	// A substitution group head becomes an abstract class, and
	// membership overrides the type-derived parent link.
	if head := el.SubstitutionGroup; head != "" {
		headCls := p.b.EnsureClass(head)
		headCls.Abstract = true
		if headCls.Description == "" {
			headCls.Description = "Head of substitution group " + head
		}
		cls.IsA = head
	}

	p.identities.record(el.Name, el.Constraints)
}

// ensureInlineClass synthesizes the class for an anonymous complex
// type, named after the element declaring it, walking the shared
// content model at most once.
func (p *typeProcessor) ensureInlineClass(name string, ct *xsd.ComplexType) {
	if p.inlined[name] {
		return
	}
	p.inlined[name] = true
	p.processTypeInto(name, ct, namedComplexBase(ct))
}

// processParticle walks one content-model particle. inChoice is sticky:
// nested choices inside a choice were already flattened into the outer
// constraint, so only the outermost choice records one. repeats carries
// enclosing-group repetition down to member slots.
func (p *typeProcessor) processParticle(className string, particle *xsd.Particle, inChoice, repeats bool) {
	switch term := particle.Term.(type) {
	case *xsd.Element:
		p.processChildElement(className, term, particle, repeats)
	case *xsd.ModelGroup:
		groupRepeats := repeats || particle.Repeats()
		if term.Compositor == xsd.CompositorChoice && !inChoice {
			p.choices.applyChoiceConstraint(className, extractChoiceBranches(term), groupRepeats)
		}
		inner := inChoice || term.Compositor == xsd.CompositorChoice
		for _, child := range term.Particles {
			p.processParticle(className, child, inner, groupRepeats)
		}
	case *xsd.Wildcard:
		p.log.Debugw("wildcard content skipped", "class", className)
	}
}

func (p *typeProcessor) processChildElement(className string, el *xsd.Element, particle *xsd.Particle, repeats bool) {
	name := elementFieldName(el)
	if name == "" {
		return
	}

	if inline := anonymousComplexOf(el); inline != nil {
		p.ensureInlineClass(name, inline)
	}

	p.b.MergeAttribute(className, p.slots.buildChildSlot(className, name, el, particle, repeats))

	if len(el.Constraints) > 0 {
		owner := childClassName(el)
		if owner == "" {
			owner = className
		}
		p.identities.record(owner, el.Constraints)
	}
}

// anonymousComplexOf returns the element's anonymous complex type,
// following ref particles to their target, or nil.
func anonymousComplexOf(el *xsd.Element) *xsd.ComplexType {
	t := el.Type
	if t == nil && el.Ref != nil {
		t = el.Ref.Type
	}
	if ct, ok := t.(*xsd.ComplexType); ok && ct.Name == "" {
		return ct
	}
	return nil
}

// childClassName names the class a complex-typed child element maps to:
// the type name when named, the element name when anonymous, "" for
// simple-typed children.
func childClassName(el *xsd.Element) string {
	t := el.Type
	if t == nil && el.Ref != nil {
		t = el.Ref.Type
	}
	ct, ok := t.(*xsd.ComplexType)
	if !ok {
		return ""
	}
	if ct.Name != "" {
		return ct.Name
	}
	return elementFieldName(el)
}

// namedComplexBase returns the name of a complex type's named complex
// base, or "" when the base is absent, anonymous or simple.
func namedComplexBase(ct *xsd.ComplexType) string {
	if base, ok := ct.Base.(*xsd.ComplexType); ok && base.Name != "" {
		return base.Name
	}
	return ""
}
