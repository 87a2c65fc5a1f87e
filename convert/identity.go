package convert

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// identityProcessor turns key/unique constraints into unique_keys
// entries and keyref constraints into reference-typed fields. It
// collects constraints while elements are processed and resolves them
// once the class graph is complete, since selectors and keyrefs may
// point at classes declared later in source order.
type identityProcessor struct {
	b        *linkml.Builder
	resolver *referenceResolver
	log      *zap.SugaredLogger

	pending []pendingConstraint

	// keyOwners maps a key or unique constraint name to every class its
	// selector alternatives resolved to, in resolution order.
	keyOwners map[string][]string
}

type pendingConstraint struct {
	declaringClass string
	c              *xsd.IdentityConstraint
}

func newIdentityProcessor(b *linkml.Builder, resolver *referenceResolver, log *zap.SugaredLogger) *identityProcessor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &identityProcessor{
		b:         b,
		resolver:  resolver,
		log:       log,
		keyOwners: map[string][]string{},
	}
}

// record stashes the constraints declared on one element for the
// resolution pass. declaringClass is where a constraint that cannot be
// expressed structurally ends up as a descriptive annotation.
func (ip *identityProcessor) record(declaringClass string, constraints []*xsd.IdentityConstraint) {
	for _, c := range constraints {
		if c == nil || c.Name == "" {
			continue
		}
		ip.pending = append(ip.pending, pendingConstraint{declaringClass: declaringClass, c: c})
	}
}

// processIdentities resolves every recorded constraint. Keys and
// uniques run first so that keyrefs can look their targets up whatever
// the declaration order was.
func (ip *identityProcessor) processIdentities() {
	for _, p := range ip.pending {
		if p.c.Kind == xsd.ConstraintKeyRef {
			continue
		}
		ip.processKey(p)
	}
	for _, p := range ip.pending {
		if p.c.Kind != xsd.ConstraintKeyRef {
			continue
		}
		ip.processKeyRef(p)
	}
}

// processKey registers a unique-key entry on every class the selector
// resolves to and remembers the owner set for keyref lookups. A
// constraint whose selector resolves to no class is scoped to its
// declaring element only and becomes a descriptive annotation there.
func (ip *identityProcessor) processKey(p pendingConstraint) {
	c := p.c
	owners := ip.selectorOwners(c.Selector)
	fields := fieldNames(c.Fields)

	if len(owners) == 0 {
		ip.annotateLocal(p)
		return
	}
	if len(fields) == 0 {
		ip.log.Debugw("identity constraint has no resolvable fields", "constraint", c.Name)
		return
	}

	for _, owner := range owners {
		ip.b.AddUniqueKey(owner, c.Name, fields)
	}
	ip.keyOwners[c.Name] = owners
	ip.log.Debugw("unique key registered",
		"constraint", c.Name, "kind", c.Kind.String(), "classes", owners, "fields", fields)
}

// processKeyRef adds one reference-typed field per keyref field to the
// class owning the keyref's selector. The field's range is the single
// class chosen from the referenced key's owner set. Unresolvable
// targets and empty field lists contribute nothing.
func (ip *identityProcessor) processKeyRef(p pendingConstraint) {
	c := p.c
	owners := ip.selectorOwners(c.Selector)
	if len(owners) == 0 {
		ip.annotateLocal(p)
		return
	}

	target := ip.resolver.selectKeyrefRange(ip.keyOwners[c.Refer])
	fields := fieldNames(c.Fields)
	if target == "" || len(fields) == 0 {
		ip.log.Debugw("keyref left unresolved",
			"constraint", c.Name, "refer", c.Refer, "target", target, "fields", fields)
		return
	}

	for _, owner := range owners {
		for _, field := range fields {
			ann := linkml.NewOrderedMap[any]()
			ann.Set("references", target)
			ip.b.MergeAttribute(owner, &linkml.SlotDef{
				Name:        field,
				Range:       target,
				Annotations: ann,
			})
		}
	}
	ip.log.Debugw("keyref resolved",
		"constraint", c.Name, "refer", c.Refer, "classes", owners, "range", target)
}

// annotateLocal records a constraint that cannot be expressed as a
// class-level unique key as a descriptive annotation on the declaring
// element's class.
func (ip *identityProcessor) annotateLocal(p pendingConstraint) {
	cls, ok := ip.b.Class(p.declaringClass)
	if !ok {
		return
	}
	c := p.c
	value := c.Kind.String() + " selector=" + c.Selector + " fields=" + strings.Join(fieldNames(c.Fields), ",")
	cls.Annotations = linkml.AppendAnnotation(cls.Annotations, "identity_"+c.Name, value)
}

// selectorOwners resolves a selector path to owning class names. The
// selector may hold several "|"-separated alternatives; each resolves
// through its last non-wildcard segment. Only known classes qualify;
// duplicates collapse.
func (ip *identityProcessor) selectorOwners(selector string) []string {
	var owners []string
	for _, alt := range strings.Split(selector, "|") {
		name := lastPathSegment(alt)
		if name == "" || !ip.b.KnownClass(name) {
			continue
		}
		owners = appendUnique(owners, name)
	}
	return owners
}

// lastPathSegment returns the local name of the last non-wildcard step
// in an XPath-style selector, or "" when every step is a wildcard.
func lastPathSegment(path string) string {
	segments := strings.Split(strings.TrimSpace(path), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(segments[i])
		switch seg {
		case "", ".", "..", "*":
			continue
		}
		seg = localPart(seg)
		if seg == "" || seg == "*" {
			continue
		}
		return seg
	}
	return ""
}

// fieldNames reduces field paths to bare field names: last path
// segment, attribute marker stripped.
func fieldNames(paths []string) []string {
	var names []string
	for _, path := range paths {
		name := lastPathSegment(path)
		name = strings.TrimPrefix(name, "@")
		if name != "" {
			names = appendUnique(names, name)
		}
	}
	return names
}

// localPart strips a "prefix:" or "{namespace}" qualifier from a name.
func localPart(s string) string {
	if i := strings.LastIndex(s, "}"); i >= 0 {
		return s[i+1:]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
