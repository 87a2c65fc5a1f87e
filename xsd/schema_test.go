package xsd

import (
	"reflect"
	"testing"
)

func TestAncestorChain(t *testing.T) {
	base := &ComplexType{Name: "Shape"}
	mid := &ComplexType{Name: "ManualIllumination", Base: base}
	leaf := &ComplexType{Name: "Laser", Base: mid}

	chain := AncestorChain(leaf)
	if len(chain) != 2 {
		t.Fatalf("AncestorChain() returned %d ancestors, want 2", len(chain))
	}
	if chain[0] != mid || chain[1] != base {
		t.Errorf("AncestorChain() order wrong: got %v then %v", chain[0].TypeName(), chain[1].TypeName())
	}
}

func TestAncestorChainCycle(t *testing.T) {
	a := &ComplexType{Name: "A"}
	b := &ComplexType{Name: "B"}
	c := &ComplexType{Name: "C"}
	a.Base, b.Base, c.Base = b, c, a

	chain := AncestorChain(a)
	if len(chain) != 2 {
		t.Fatalf("cyclic chain returned %d ancestors, want 2", len(chain))
	}
	if got := AncestorNames(a); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("AncestorNames() = %v, want [B C]", got)
	}
}

func TestAncestorChainSelfCycle(t *testing.T) {
	a := &ComplexType{Name: "A"}
	a.Base = a

	if chain := AncestorChain(a); len(chain) != 0 {
		t.Errorf("self-referential chain returned %d ancestors, want 0", len(chain))
	}
}

func TestAncestorNamesSkipsBuiltinsAndAnonymous(t *testing.T) {
	builtin, _ := Builtin("string")
	anon := &SimpleType{Base: builtin}
	named := &SimpleType{Name: "Color", Base: anon}

	if got := AncestorNames(named); len(got) != 0 {
		t.Errorf("AncestorNames() = %v, want empty", got)
	}
}

func TestOrderedTypesAndElements(t *testing.T) {
	s := &Schema{
		Types: map[string]Type{
			"B": &ComplexType{Name: "B"},
			"A": &ComplexType{Name: "A"},
		},
		Elements: map[string]*Element{
			"Root": {Name: "Root"},
		},
		TypeOrder:    []string{"B", "A"},
		ElementOrder: []string{"Root"},
	}

	types := s.OrderedTypes()
	if len(types) != 2 || types[0].TypeName() != "B" || types[1].TypeName() != "A" {
		t.Errorf("OrderedTypes() did not preserve declaration order: %v", types)
	}
	if elems := s.OrderedElements(); len(elems) != 1 || elems[0].Name != "Root" {
		t.Errorf("OrderedElements() = %v", elems)
	}
}

func TestAnnotationDoc(t *testing.T) {
	tests := []struct {
		name   string
		ann    *Annotation
		want   string
		wantOK bool
	}{
		{"nil annotation", nil, "", false},
		{"empty blocks", &Annotation{Documentation: []string{"", "  "}}, "", false},
		{"single block", &Annotation{Documentation: []string{" The image. "}}, "The image.", true},
		{
			"multiple blocks",
			&Annotation{Documentation: []string{"First.", "Second."}},
			"First.\nSecond.",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ann.Doc()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Doc() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParticleBounds(t *testing.T) {
	tests := []struct {
		name     string
		particle Particle
		repeats  bool
		optional bool
	}{
		{"default", Particle{MinOccurs: 1, MaxOccurs: 1}, false, false},
		{"optional", Particle{MinOccurs: 0, MaxOccurs: 1}, false, true},
		{"unbounded", Particle{MinOccurs: 0, MaxOccurs: UnboundedOccurs}, true, true},
		{"bounded list", Particle{MinOccurs: 1, MaxOccurs: 4}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.particle.Repeats(); got != tt.repeats {
				t.Errorf("Repeats() = %v, want %v", got, tt.repeats)
			}
			if got := tt.particle.Optional(); got != tt.optional {
				t.Errorf("Optional() = %v, want %v", got, tt.optional)
			}
		})
	}
}
