package convert

import (
	"encoding/xml"
	"strings"

	"github.com/ome-nbo-tools/ome-nbo-formatter/linkml"
	"github.com/ome-nbo-tools/ome-nbo-formatter/xsd"
)

// tierSubsets maps the numeric tier values found in documentation
// metadata onto subset tags.
var tierSubsets = map[string]string{
	"1": "NBO_Tier1",
	"2": "NBO_Tier2",
	"3": "NBO_Tier3",
}

// subsetKeys are the metadata keys whose values fold into in_subset
// tags instead of annotations.
var subsetKeys = map[string]bool{
	"domain":    true,
	"category":  true,
	"extension": true,
}

// docTarget points at the description, subset and annotation storage of
// either a class or a slot, so documentation handling is written once.
type docTarget struct {
	description *string
	inSubset    *[]string
	annotations **linkml.OrderedMap[any]
}

func slotTarget(s *linkml.SlotDef) docTarget {
	return docTarget{&s.Description, &s.InSubset, &s.Annotations}
}

func classTarget(c *linkml.ClassDef) docTarget {
	return docTarget{&c.Description, &c.InSubset, &c.Annotations}
}

// docMeta is the `key = value` metadata extracted from a documentation
// block, in line order. A key may carry several values.
type docMeta struct {
	keys   []string
	values map[string][]string
}

func (m *docMeta) add(key, value string) {
	if m.values == nil {
		m.values = map[string][]string{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
}

func (m *docMeta) empty() bool { return len(m.keys) == 0 }

// splitDocMetadata separates a documentation block into free
// description text and `key = value` metadata lines. A line whose key
// is "description" counts as description text; a line with an empty
// key stays in the description verbatim.
func splitDocMetadata(text string) (string, *docMeta) {
	meta := &docMeta{}
	var description []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			description = append(description, line)
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case key == "":
			description = append(description, line)
		case strings.EqualFold(key, "description"):
			description = append(description, value)
		default:
			meta.add(key, value)
		}
	}
	return strings.TrimSpace(strings.Join(description, "\n")), meta
}

// applyDocText splits a documentation block and applies it to the
// target: description text replaces the current description, tier and
// domain metadata become subset tags, everything else becomes
// annotations.
func applyDocText(t docTarget, text string) {
	if text == "" {
		return
	}
	description, meta := splitDocMetadata(text)
	if description != "" {
		*t.description = description
	}
	applyMeta(t, meta)
}

// applyMeta folds metadata in three passes so subset tags land in a
// stable order: tiers first, then domain/category/extension tags, then
// everything else as annotations.
func applyMeta(t docTarget, meta *docMeta) {
	if meta.empty() {
		return
	}

	for _, key := range meta.keys {
		if !strings.EqualFold(key, "tier") {
			continue
		}
		for _, raw := range meta.values[key] {
			for _, token := range strings.Fields(strings.ReplaceAll(raw, ",", " ")) {
				if tag, ok := tierSubsets[token]; ok {
					*t.inSubset = appendUnique(*t.inSubset, tag)
				}
			}
		}
	}

	for _, key := range meta.keys {
		if !subsetKeys[strings.ToLower(key)] {
			continue
		}
		for _, value := range meta.values[key] {
			if tag := normalizeSubsetTag(key + "_" + value); tag != "" {
				*t.inSubset = appendUnique(*t.inSubset, tag)
			}
		}
	}

	for _, key := range meta.keys {
		if strings.EqualFold(key, "tier") || subsetKeys[strings.ToLower(key)] {
			continue
		}
		setAnnotationValues(t, strings.ReplaceAll(key, " ", "_"), meta.values[key])
	}
}

func setAnnotationValues(t docTarget, key string, values []string) {
	var cleaned []string
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return
	}
	if *t.annotations == nil {
		*t.annotations = linkml.NewOrderedMap[any]()
	}
	if len(cleaned) == 1 {
		(*t.annotations).Set(key, cleaned[0])
		return
	}
	list := make([]any, len(cleaned))
	for i, v := range cleaned {
		list[i] = v
	}
	(*t.annotations).Set(key, list)
}

// normalizeSubsetTag turns a metadata value into a subset tag: each
// space becomes an underscore, then runs of other non-identifier
// characters collapse to single underscores.
func normalizeSubsetTag(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	inRun := false
	for _, r := range s {
		ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
		if ok {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteRune('_')
			inRun = true
		}
	}
	return strings.Trim(b.String(), "_")
}

func appendUnique(list []string, item string) []string {
	for _, have := range list {
		if have == item {
			return list
		}
	}
	return append(list, item)
}

// appInfoNode mirrors one element inside an xs:appinfo block.
type appInfoNode struct {
	XMLName  xml.Name
	Text     string        `xml:",chardata"`
	Children []appInfoNode `xml:",any"`
}

// applyAppInfo records appinfo entries as annotations. Wrapper nodes
// named "xsdfu" (the OME appinfo convention) are unwrapped one level;
// an entry without text records "true". Blocks that fail to parse
// contribute nothing.
func applyAppInfo(t docTarget, blocks []string) {
	for _, raw := range blocks {
		var root appInfoNode
		if err := xml.Unmarshal([]byte("<appinfo>"+raw+"</appinfo>"), &root); err != nil {
			continue
		}
		for _, node := range root.Children {
			if strings.EqualFold(node.XMLName.Local, "xsdfu") {
				for _, child := range node.Children {
					recordAppInfoEntry(t, child)
				}
				continue
			}
			recordAppInfoEntry(t, node)
		}
	}
}

func recordAppInfoEntry(t docTarget, node appInfoNode) {
	name := node.XMLName.Local
	if name == "" {
		return
	}
	value := strings.TrimSpace(node.Text)
	if value == "" {
		value = "true"
	}
	*t.annotations = linkml.AppendAnnotation(*t.annotations, name, value)
}

// applyAnnotation runs the full documentation pipeline for one source
// node annotation.
func applyAnnotation(t docTarget, ann *xsd.Annotation) {
	if doc, ok := ann.Doc(); ok {
		applyDocText(t, doc)
	}
	if infos := ann.AppInfos(); len(infos) > 0 {
		applyAppInfo(t, infos)
	}
}
