// Package profile decodes per-schema conversion profiles.
//
// A profile is a TOML file describing how one XSD family converts:
// schema header overrides, extra prefixes, the top-level element
// filter and the documentation override file. Profiles let one
// formatter binary serve several schema dialects without repeating
// flags on every invocation.
package profile

import (
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
)

// Profile describes how one schema family is converted.
type Profile struct {
	Schema   SchemaSection   `toml:"schema"`
	Elements ElementsSection `toml:"elements"`
	Docs     DocsSection     `toml:"docs"`
}

// SchemaSection overrides the generated schema header. Empty fields
// keep the values derived from the source target namespace.
type SchemaSection struct {
	// ID is the schema identifier URI
	ID string `toml:"id"`

	// Name is the short schema name, also the default prefix fallback
	Name string `toml:"name"`

	// Title is the human-readable schema title
	Title string `toml:"title"`

	// DefaultPrefix names the prefix used for unqualified terms
	DefaultPrefix string `toml:"default_prefix"`

	// License is the license URI stamped into the schema header
	License string `toml:"license"`

	// Version is the generated schema version, validated as semver
	Version string `toml:"version"`

	// Prefixes adds extra prefix = "uri" mappings to the header
	Prefixes map[string]string `toml:"prefixes"`
}

// ElementsSection restricts which global elements become classes.
type ElementsSection struct {
	// TopLevel lists the element names to process; empty means all
	TopLevel []string `toml:"top_level"`
}

// DocsSection points at documentation overrides.
type DocsSection struct {
	// Overrides is the path to a YAML attribute_descriptions file,
	// resolved relative to the working directory
	Overrides string `toml:"overrides"`
}

// Load reads and validates a profile from a TOML file. Decode and
// validation failures both carry ErrProfileInvalid.
func Load(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, errors.NewProfileError("failed to decode profile %s: %v", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for internal consistency
func (p *Profile) Validate() error {
	if p.Schema.Version != "" {
		if _, err := semver.NewVersion(p.Schema.Version); err != nil {
			return errors.NewProfileError("schema.version %q is not a valid semantic version: %v", p.Schema.Version, err)
		}
	}

	for name, uri := range p.Schema.Prefixes {
		if name == "" || uri == "" {
			return errors.NewProfileError("schema.prefixes entries need both a prefix and a URI, got %q = %q", name, uri)
		}
	}

	return nil
}

// Metadata maps the profile header overrides onto the target model.
// Extra prefixes are emitted in sorted order for stable output.
func (p *Profile) Metadata() linkml.Metadata {
	meta := linkml.Metadata{
		SchemaID:      p.Schema.ID,
		SchemaName:    p.Schema.Name,
		SchemaTitle:   p.Schema.Title,
		DefaultPrefix: p.Schema.DefaultPrefix,
		License:       p.Schema.License,
		SchemaVersion: p.Schema.Version,
	}

	names := make([]string, 0, len(p.Schema.Prefixes))
	for name := range p.Schema.Prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		meta.ExtraPrefixes = append(meta.ExtraPrefixes, linkml.Prefix{
			Name: name,
			URI:  p.Schema.Prefixes[name],
		})
	}

	return meta
}
