package xsd

import "testing"

func TestBuiltin(t *testing.T) {
	st, ok := Builtin("string")
	if !ok {
		t.Fatal("Builtin(string) not found")
	}
	if !st.IsBuiltin() || st.Name != "string" {
		t.Errorf("Builtin(string) = %+v", st)
	}

	// Shared node: repeated lookups return the same pointer
	again, _ := Builtin("string")
	if st != again {
		t.Error("Builtin() returned distinct nodes for the same name")
	}

	if _, ok := Builtin("Image"); ok {
		t.Error("Builtin(Image) should not resolve")
	}
}

func TestPrimitiveBase(t *testing.T) {
	str, _ := Builtin("string")
	nni, _ := Builtin("nonNegativeInteger")

	color := &SimpleType{Name: "Color", Base: str}
	hex := &SimpleType{Name: "HexColor", Base: color}
	count := &SimpleType{Name: "Count", Base: nni}
	unresolvedBase := &SimpleType{Name: "Loose", BaseName: "token"}
	orphan := &SimpleType{Name: "Orphan", BaseName: "SomethingElse"}

	tests := []struct {
		name   string
		t      Type
		want   string
		wantOK bool
	}{
		{"direct builtin", str, "string", true},
		{"one hop", color, "string", true},
		{"two hops", hex, "string", true},
		{"integer family", count, "nonNegativeInteger", true},
		{"unresolved builtin base name", unresolvedBase, "token", true},
		{"unreachable", orphan, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PrimitiveBase(tt.t)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PrimitiveBase() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrimitiveBaseCycle(t *testing.T) {
	a := &SimpleType{Name: "A"}
	b := &SimpleType{Name: "B"}
	a.Base, b.Base = b, a

	if got, ok := PrimitiveBase(a); ok {
		t.Errorf("PrimitiveBase() on a cycle = %q, want none", got)
	}
}

func TestPrimitiveBaseThroughSimpleContent(t *testing.T) {
	str, _ := Builtin("string")
	base := &SimpleType{Name: "Text", Base: str}
	ct := &ComplexType{Name: "AnnotatedText", Base: base, SimpleContent: true}

	got, ok := PrimitiveBase(ct)
	if !ok || got != "string" {
		t.Errorf("PrimitiveBase() = (%q, %v), want (string, true)", got, ok)
	}
}
