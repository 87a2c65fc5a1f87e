package linkml

import (
	"os"
	"path/filepath"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// WritePartitioned writes one standalone schema document per class
// into dir. Each document carries the class plus the closure of
// classes and enums it references through is_a links and slot ranges,
// so every file validates on its own.
func WritePartitioned(dir string, s *Schema) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create partition directory %s", dir)
	}
	for _, name := range s.Classes.Keys() {
		sub := partitionFor(s, name)
		if err := WriteFile(filepath.Join(dir, name+".yaml"), sub); err != nil {
			return err
		}
	}
	return nil
}

// PartitionFor extracts the standalone schema for one class. The
// second return is false when the class does not exist.
func PartitionFor(s *Schema, className string) (*Schema, bool) {
	if !s.Classes.Has(className) {
		return nil, false
	}
	return partitionFor(s, className), true
}

func partitionFor(s *Schema, root string) *Schema {
	classes := map[string]bool{}
	enums := map[string]bool{}

	var visit func(name string)
	visit = func(name string) {
		if classes[name] {
			return
		}
		cls, ok := s.Classes.Get(name)
		if !ok {
			return
		}
		classes[name] = true
		if cls.IsA != "" {
			visit(cls.IsA)
		}
		for _, slotName := range cls.Attributes.Keys() {
			slot, _ := cls.Attributes.Get(slotName)
			switch {
			case slot.Range == "":
			case s.Classes.Has(slot.Range):
				visit(slot.Range)
			case s.Enums.Has(slot.Range):
				enums[slot.Range] = true
			}
		}
	}
	visit(root)

	sub := &Schema{
		ID:            s.ID + "/" + root,
		Name:          root,
		Title:         root,
		Description:   s.Description,
		License:       s.License,
		Version:       s.Version,
		Prefixes:      s.Prefixes,
		DefaultPrefix: s.DefaultPrefix,
		DefaultRange:  s.DefaultRange,
		Subsets:       s.Subsets,
		Classes:       NewOrderedMap[*ClassDef](),
		Enums:         NewOrderedMap[*EnumDef](),
	}
	// parent insertion order keeps partitions deterministic
	for _, name := range s.Classes.Keys() {
		if classes[name] {
			cls, _ := s.Classes.Get(name)
			sub.Classes.Set(name, cls)
		}
	}
	for _, name := range s.Enums.Keys() {
		if enums[name] {
			enum, _ := s.Enums.Get(name)
			sub.Enums.Set(name, enum)
		}
	}
	return sub
}
