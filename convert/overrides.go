package convert

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// DocOverrides holds curated attribute descriptions keyed by class then
// slot name. An override replaces whatever description the source
// schema carries.
type DocOverrides map[string]map[string]string

// Lookup returns the override for (class, slot) when one exists.
func (o DocOverrides) Lookup(className, slotName string) (string, bool) {
	if o == nil {
		return "", false
	}
	slots, ok := o[className]
	if !ok {
		return "", false
	}
	text, ok := slots[slotName]
	return text, ok && text != ""
}

type overridesFile struct {
	AttributeDescriptions map[string]map[string]string `yaml:"attribute_descriptions"`
}

// LoadDocOverrides reads an overrides file. The file is a YAML mapping
// with one top-level attribute_descriptions key:
//
//	attribute_descriptions:
//	  Image:
//	    ID: Stable identifier for the image.
func LoadDocOverrides(path string) (DocOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading doc overrides %s", path)
	}

	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing doc overrides %s", path)
	}
	return DocOverrides(file.AttributeDescriptions), nil
}
