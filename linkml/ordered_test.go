package linkml

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestOrderedMapBasics(t *testing.T) {
	m := NewOrderedMap[int]()

	if !m.IsZero() {
		t.Error("fresh map should be zero")
	}

	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("c", 3)
	m.Set("a", 10) // replace keeps position

	if got := m.Keys(); len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("Keys() = %v, want [b a c]", got)
	}
	if v, ok := m.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = (%d, %v)", v, ok)
	}

	m.Delete("a")
	if m.Has("a") || m.Len() != 2 {
		t.Errorf("after Delete: has=%v len=%d", m.Has("a"), m.Len())
	}
	if got := m.Keys(); got[0] != "b" || got[1] != "c" {
		t.Errorf("Keys() after delete = %v", got)
	}
}

func TestOrderedMapNilSafety(t *testing.T) {
	var m *OrderedMap[string]

	if !m.IsZero() {
		t.Error("nil map should be zero")
	}
	if _, ok := m.Get("x"); ok {
		t.Error("Get on nil map should miss")
	}
	if m.Has("x") || m.Len() != 0 || m.Keys() != nil {
		t.Error("nil map accessors should be empty")
	}
	m.Delete("x") // must not panic
}

func TestOrderedMapMarshalOrder(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("zebra", "1")
	m.Set("alpha", "2")
	m.Set("midway", "3")

	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	text := string(out)
	zi := strings.Index(text, "zebra")
	ai := strings.Index(text, "alpha")
	mi := strings.Index(text, "midway")
	if !(zi < ai && ai < mi) {
		t.Errorf("marshal order not preserved: %q", text)
	}
}

func TestOrderedMapRoundtrip(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("first", 1)
	m.Set("second", 2)

	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	decoded := NewOrderedMap[int]()
	if err := yaml.Unmarshal(out, decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := decoded.Keys(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("roundtrip keys = %v", got)
	}
	if v, _ := decoded.Get("second"); v != 2 {
		t.Errorf("roundtrip value = %d", v)
	}
}
