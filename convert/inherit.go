package convert

import (
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// buildInheritanceMap derives type name to base type name from the
// source registry, once, before class construction begins. Only named
// complex bases enter the map: builtin and simple bases never become
// classes, so an is_a pointing at them would dangle.
func buildInheritanceMap(src *xsd.Schema) map[string]string {
	inherit := map[string]string{}
	for _, t := range src.OrderedTypes() {
		ct, ok := t.(*xsd.ComplexType)
		if !ok || ct.Name == "" {
			continue
		}
		if base := namedComplexBase(ct); base != "" {
			inherit[ct.Name] = base
		}
	}
	return inherit
}

// pruneInheritedAttributes removes from every class's own attribute map
// any field an ancestor already owns. Runs after all classes exist;
// ancestor lookup replaces the copies. First declaration along the
// chain wins when several ancestors carry the same name.
func pruneInheritedAttributes(b *linkml.Builder) {
	for _, className := range b.ClassNames() {
		cls, ok := b.Class(className)
		if !ok {
			continue
		}

		inherited := map[string]bool{}
		for _, ancestor := range b.AncestorChain(className) {
			ancestorCls, ok := b.Class(ancestor)
			if !ok {
				continue
			}
			for _, name := range ancestorCls.OwnAttributeNames() {
				inherited[name] = true
			}
		}
		if len(inherited) == 0 {
			continue
		}

		for _, name := range cls.OwnAttributeNames() {
			if inherited[name] {
				cls.Attributes.Delete(name)
			}
		}
	}
}
