package convert

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// choiceField is one field contributed by a choice branch, with the
// requiredness its own occurrence bounds would give it.
type choiceField struct {
	Name     string
	Required bool
}

// choiceHandler records choice-group exclusivity while classes are
// built and relaxes the affected slots once all classes exist. A field
// under a choice can never be unconditionally required, and a repeating
// choice makes every member repeatable whatever its own bounds say.
type choiceHandler struct {
	b   *linkml.Builder
	log *zap.SugaredLogger

	order      []string
	relaxSet   map[string][]string
	forceMulti map[string]map[string]bool
}

func newChoiceHandler(b *linkml.Builder, log *zap.SugaredLogger) *choiceHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &choiceHandler{
		b:          b,
		log:        log,
		relaxSet:   map[string][]string{},
		forceMulti: map[string]map[string]bool{},
	}
}

// extractChoiceBranches flattens a choice group into one field list per
// alternative. Nested choices contribute their branches to the outer
// choice; nested sequence and all groups contribute every field they
// contain as one compound branch. Wildcards contribute nothing.
func extractChoiceBranches(group *xsd.ModelGroup) [][]choiceField {
	var branches [][]choiceField
	for _, p := range group.Particles {
		switch term := p.Term.(type) {
		case *xsd.Element:
			if name := elementFieldName(term); name != "" {
				branches = append(branches, []choiceField{{Name: name, Required: p.MinOccurs >= 1}})
			}
		case *xsd.ModelGroup:
			if term.Compositor == xsd.CompositorChoice {
				branches = append(branches, extractChoiceBranches(term)...)
				continue
			}
			if fields := collectGroupFields(term); len(fields) > 0 {
				branches = append(branches, fields)
			}
		}
	}
	return branches
}

// collectGroupFields gathers every element field inside a group,
// whatever its compositor, as one flat list.
func collectGroupFields(group *xsd.ModelGroup) []choiceField {
	var fields []choiceField
	for _, p := range group.Particles {
		switch term := p.Term.(type) {
		case *xsd.Element:
			if name := elementFieldName(term); name != "" {
				fields = append(fields, choiceField{Name: name, Required: p.MinOccurs >= 1})
			}
		case *xsd.ModelGroup:
			fields = append(fields, collectGroupFields(term)...)
		}
	}
	return fields
}

func elementFieldName(el *xsd.Element) string {
	if el.Name != "" {
		return el.Name
	}
	if el.Ref != nil {
		return el.Ref.Name
	}
	return ""
}

// applyChoiceConstraint records the exclusivity of one choice group on
// ownerClass. When every branch carries exactly one field and at least
// two distinct fields remain after deduplication, the class gets an
// exactly_one_of rule naming each field once in first-seen order.
// Compound branches emit no rule. Every spanned field always joins the
// class's relax set, with multivalued forced when the choice repeats.
func (h *choiceHandler) applyChoiceConstraint(ownerClass string, branches [][]choiceField, repeating bool) {
	if len(branches) == 0 {
		return
	}

	allSingle := true
	var fields []string
	seen := map[string]bool{}
	for _, branch := range branches {
		if len(branch) != 1 {
			allSingle = false
		}
		for _, f := range branch {
			if !seen[f.Name] {
				seen[f.Name] = true
				fields = append(fields, f.Name)
			}
		}
	}
	if len(fields) == 0 {
		return
	}

	if allSingle && len(fields) >= 2 {
		conditions := make([]*linkml.Condition, 0, len(fields))
		for _, name := range fields {
			sc := linkml.NewOrderedMap[*linkml.SlotCondition]()
			sc.Set(name, &linkml.SlotCondition{Required: true})
			conditions = append(conditions, &linkml.Condition{SlotConditions: sc})
		}
		cls := h.b.EnsureClass(ownerClass)
		cls.Rules = append(cls.Rules, &linkml.Rule{
			Description:  "Exactly one of " + strings.Join(fields, ", ") + " is required",
			ExactlyOneOf: conditions,
		})
		h.log.Debugw("choice rule recorded", "class", ownerClass, "fields", fields)
	}

	h.record(ownerClass, fields, repeating)
}

func (h *choiceHandler) record(ownerClass string, fields []string, repeating bool) {
	if _, ok := h.relaxSet[ownerClass]; !ok {
		h.order = append(h.order, ownerClass)
	}
	for _, name := range fields {
		h.relaxSet[ownerClass] = appendUnique(h.relaxSet[ownerClass], name)
		if repeating {
			if h.forceMulti[ownerClass] == nil {
				h.forceMulti[ownerClass] = map[string]bool{}
			}
			h.forceMulti[ownerClass][name] = true
		}
	}
}

// relaxChoiceConstraints runs once after every class exists: each field
// in a relax set loses its required flag, and fields spanned by a
// repeating choice become multivalued. Fields whose slot never
// materialized are skipped.
func (h *choiceHandler) relaxChoiceConstraints() {
	for _, className := range h.order {
		cls, ok := h.b.Class(className)
		if !ok {
			continue
		}
		for _, name := range h.relaxSet[className] {
			slot, ok := cls.Attributes.Get(name)
			if !ok {
				continue
			}
			slot.Required = false
			if h.forceMulti[className][name] {
				slot.Multivalued = true
			}
		}
	}
}
