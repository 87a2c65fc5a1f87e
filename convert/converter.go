// Package convert transforms a resolved XSD object graph into the
// target class/slot/enum schema. The run is a single-threaded two-phase
// batch: phase one walks complex types and global elements into
// classes, phase two resolves identity constraints, relaxes choice
// members and prunes inherited attribute copies, all of which need the
// complete class graph.
package convert

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
	"github.com/ome-nbo-tools/ome-nbo-formatter/jsonschema"
	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// Options configures one conversion run. The zero value converts the
// whole schema with derived metadata and no overrides.
type Options struct {
	// Metadata overrides the derived schema header fields.
	Metadata linkml.Metadata

	// DocOverrides replaces attribute descriptions after extraction.
	DocOverrides DocOverrides

	// Hints is the optional JSON Schema view folded back onto element
	// classes for requiredness, enum and array signals.
	Hints *jsonschema.Document

	// TopLevelElements restricts global element processing to the named
	// elements when non-empty. Complex types are always processed.
	TopLevelElements []string
}

// Stats counts what one run produced.
type Stats struct {
	Classes    int `json:"classes"`
	Slots      int `json:"slots"`
	Enums      int `json:"enums"`
	UniqueKeys int `json:"unique_keys"`
	Rules      int `json:"rules"`
}

// Result is the outcome of one conversion run.
type Result struct {
	Schema   *linkml.Schema
	RunID    string
	Stats    Stats
	Duration time.Duration
}

// Converter runs conversions. One Converter may run several schemas;
// each run builds a fresh target model.
type Converter struct {
	opts Options
	log  *zap.SugaredLogger
}

func New(opts Options, log *zap.SugaredLogger) *Converter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Converter{opts: opts, log: log}
}

// Convert produces the target schema for one resolved source model.
// The only error it returns is an untraversable source; every
// recoverable lookup or shape failure is absorbed where it occurs and
// the affected field or class simply stays incomplete.
func (c *Converter) Convert(src *xsd.Schema) (*Result, error) {
	start := time.Now()

	if src == nil {
		return nil, errors.NewSourceModelError("source schema is nil")
	}
	if src.Types == nil || src.Elements == nil {
		return nil, errors.NewSourceModelError("source schema registries are missing")
	}

	b := linkml.NewBuilder(src.TargetNamespace, c.opts.Metadata, c.log)
	inherit := buildInheritanceMap(src)
	known := knownClassNames(src)

	resolver := newReferenceResolver(b, inherit, known, c.log)
	choices := newChoiceHandler(b, c.log)
	slots := newSlotBuilder(b, resolver, c.opts.DocOverrides, c.log)
	identities := newIdentityProcessor(b, resolver, c.log)
	types := newTypeProcessor(b, slots, choices, identities, c.opts.TopLevelElements, c.log)

	c.log.Debugw("conversion started",
		"namespace", src.TargetNamespace,
		"types", len(src.TypeOrder),
		"elements", len(src.ElementOrder))

	types.processComplexTypes(src, inherit)
	types.processElements(src)
	newHintPass(b, resolver, c.log).apply(c.opts.Hints)
	identities.processIdentities()
	choices.relaxChoiceConstraints()
	pruneInheritedAttributes(b)

	result := &Result{
		Schema:   b.Finalize(),
		RunID:    uuid.NewString(),
		Duration: time.Since(start),
	}
	result.Stats = collectStats(result.Schema)

	c.log.Infow("conversion finished",
		"run", result.RunID,
		"classes", result.Stats.Classes,
		"slots", result.Stats.Slots,
		"enums", result.Stats.Enums,
		"duration", result.Duration)
	return result, nil
}

// knownClassNames collects every name that can denote a class target:
// all named types plus all global elements.
func knownClassNames(src *xsd.Schema) map[string]bool {
	known := make(map[string]bool, len(src.TypeOrder)+len(src.ElementOrder))
	for _, name := range src.TypeOrder {
		if name != "" {
			known[name] = true
		}
	}
	for _, name := range src.ElementOrder {
		if name != "" {
			known[name] = true
		}
	}
	return known
}

func collectStats(s *linkml.Schema) Stats {
	stats := Stats{
		Classes: s.Classes.Len(),
		Enums:   s.Enums.Len(),
	}
	for _, name := range s.Classes.Keys() {
		cls, _ := s.Classes.Get(name)
		stats.Slots += cls.Attributes.Len()
		stats.Rules += len(cls.Rules)
		if cls.UniqueKeys != nil {
			stats.UniqueKeys += cls.UniqueKeys.Len()
		}
	}
	return stats
}
