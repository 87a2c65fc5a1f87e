package convert

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
)

// referenceResolver decides which class a reference-shaped field points
// to. It walks is_a links on the classes built so far and falls back to
// the raw inheritance map for hierarchy not yet reflected in classes.
type referenceResolver struct {
	b       *linkml.Builder
	inherit map[string]string
	known   map[string]bool
	log     *zap.SugaredLogger
}

func newReferenceResolver(b *linkml.Builder, inherit map[string]string, known map[string]bool, log *zap.SugaredLogger) *referenceResolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &referenceResolver{b: b, inherit: inherit, known: known, log: log}
}

// parentOf returns the parent class name, preferring the built class's
// is_a over the raw inheritance map. Empty when there is no parent.
func (r *referenceResolver) parentOf(className string) string {
	if cls, ok := r.b.Class(className); ok && cls.IsA != "" {
		return cls.IsA
	}
	return r.inherit[className]
}

// classIsRefLike reports whether the class or any of its ancestors is
// named like a reference: a "Ref" suffix or the literal "Reference".
// The walk is cycle-guarded.
func (r *referenceResolver) classIsRefLike(className string) bool {
	seen := map[string]bool{}
	for cur := className; cur != "" && !seen[cur]; cur = r.parentOf(cur) {
		seen[cur] = true
		if strings.HasSuffix(cur, "Ref") || cur == "Reference" {
			return true
		}
	}
	return false
}

// referenceTargetForClass resolves the class a reference field on
// ownerClass points at. Resolution order: the owner's own name with the
// "Ref" suffix stripped, then each ancestor the same way, then the
// field's declared type name with an "ID" suffix stripped. Empty when
// nothing resolves to a known class.
func (r *referenceResolver) referenceTargetForClass(ownerClass, declaredType string) string {
	if target, ok := r.stripRef(ownerClass); ok {
		return target
	}

	seen := map[string]bool{ownerClass: true}
	for cur := r.parentOf(ownerClass); cur != "" && !seen[cur]; cur = r.parentOf(cur) {
		seen[cur] = true
		if target, ok := r.stripRef(cur); ok {
			return target
		}
	}

	if strings.HasSuffix(declaredType, "ID") {
		base := strings.TrimSuffix(declaredType, "ID")
		if base != "" && r.known[base] {
			return base
		}
	}
	return ""
}

func (r *referenceResolver) stripRef(name string) (string, bool) {
	if !strings.HasSuffix(name, "Ref") {
		return "", false
	}
	base := strings.TrimSuffix(name, "Ref")
	if base != "" && r.known[base] {
		return base, true
	}
	return "", false
}

// selectKeyrefRange reduces several candidate target classes to one: a
// single candidate wins outright, otherwise the most specific common
// ancestor shared by all candidates. Empty when the candidates share no
// ancestor, which callers treat as unresolved.
func (r *referenceResolver) selectKeyrefRange(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	chains := make([][]string, len(candidates))
	for i, candidate := range candidates {
		chains[i] = r.selfAndAncestors(candidate)
	}

	shared := toSet(chains[0])
	for _, chain := range chains[1:] {
		next := map[string]bool{}
		for name := range toSet(chain) {
			if shared[name] {
				next[name] = true
			}
		}
		shared = next
	}
	if len(shared) == 0 {
		r.log.Debugw("keyref candidates share no ancestor", "candidates", candidates)
		return ""
	}

	for _, name := range chains[0] {
		if shared[name] {
			return name
		}
	}
	return ""
}

// selfAndAncestors returns the class followed by its ancestors, most
// specific first, cycle-guarded.
func (r *referenceResolver) selfAndAncestors(className string) []string {
	chain := []string{className}
	seen := map[string]bool{className: true}
	for cur := r.parentOf(className); cur != "" && !seen[cur]; cur = r.parentOf(cur) {
		seen[cur] = true
		chain = append(chain, cur)
	}
	return chain
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
