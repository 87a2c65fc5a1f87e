package xsd

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ome-nbo-tools/ome-nbo-formatter/errors"
)

// Loader parses schema documents and resolves them into a Schema.
type Loader struct {
	log *zap.SugaredLogger
}

// NewLoader creates a loader. A nil logger disables loader logging.
func NewLoader(log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Loader{log: log}
}

// Load reads and resolves the schema document at path. xs:include
// references are followed relative to the including document; xs:import
// of foreign namespaces is skipped.
func (l *Loader) Load(path string) (*Schema, error) {
	docs, err := l.readDocs(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	return l.resolve(docs), nil
}

// Parse resolves a single schema document held in memory. Includes are
// not followed.
func (l *Loader) Parse(data []byte) (*Schema, error) {
	doc, err := decodeDoc(data)
	if err != nil {
		return nil, err
	}
	return l.resolve([]*xmlSchema{doc}), nil
}

// Load reads and resolves the schema document at path without logging.
func Load(path string) (*Schema, error) {
	return NewLoader(nil).Load(path)
}

// Parse resolves a single in-memory schema document without logging.
func Parse(data []byte) (*Schema, error) {
	return NewLoader(nil).Parse(data)
}

func decodeDoc(data []byte) (*xmlSchema, error) {
	var doc xmlSchema
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode schema document")
	}
	return &doc, nil
}

func (l *Loader) readDocs(path string, visited map[string]bool) ([]*xmlSchema, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visited[abs] {
		return nil, nil
	}
	visited[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read schema %s", path)
	}
	doc, err := decodeDoc(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", path)
	}
	l.log.Debugw("schema document loaded",
		"file", path,
		"types", len(doc.SimpleTypes)+len(doc.ComplexTypes),
		"elements", len(doc.Elements))

	docs := []*xmlSchema{doc}
	for _, inc := range doc.Includes {
		sub, err := l.readDocs(filepath.Join(filepath.Dir(path), inc.SchemaLocation), visited)
		if err != nil {
			return nil, err
		}
		docs = append(docs, sub...)
	}
	for _, imp := range doc.Imports {
		l.log.Debugw("skipping import of foreign namespace",
			"namespace", imp.Namespace, "location", imp.SchemaLocation)
	}
	return docs, nil
}

// resolver links one merged document set into a Schema. Resolution is
// two-phase: shells for every named type and element first, then a fill
// pass that can point references at any shell.
type resolver struct {
	schema *Schema
	log    *zap.SugaredLogger

	rawSimple   map[string]*xmlSimpleType
	rawComplex  map[string]*xmlComplexType
	rawElements map[string]*xmlElement
	groups      map[string]*xmlGroup
	attrGroups  map[string]*xmlAttributeGroup
	globalAttrs map[string]*xmlAttribute

	groupVisited     map[string]bool
	attrGroupVisited map[string]bool
}

func (l *Loader) resolve(docs []*xmlSchema) *Schema {
	r := &resolver{
		schema: &Schema{
			Types:    map[string]Type{},
			Elements: map[string]*Element{},
		},
		log:              l.log,
		rawSimple:        map[string]*xmlSimpleType{},
		rawComplex:       map[string]*xmlComplexType{},
		rawElements:      map[string]*xmlElement{},
		groups:           map[string]*xmlGroup{},
		attrGroups:       map[string]*xmlAttributeGroup{},
		globalAttrs:      map[string]*xmlAttribute{},
		groupVisited:     map[string]bool{},
		attrGroupVisited: map[string]bool{},
	}

	for _, doc := range docs {
		r.index(doc)
	}
	for _, name := range r.schema.TypeOrder {
		if raw, ok := r.rawSimple[name]; ok {
			r.fillSimple(r.schema.Types[name].(*SimpleType), raw)
		} else {
			r.fillComplex(r.schema.Types[name].(*ComplexType), r.rawComplex[name])
		}
	}
	for _, name := range r.schema.ElementOrder {
		r.fillElement(r.schema.Elements[name], r.rawElements[name])
	}
	return r.schema
}

// index registers shells and raw definitions from one document. The
// first definition of a name wins across included documents.
func (r *resolver) index(doc *xmlSchema) {
	if r.schema.TargetNamespace == "" {
		r.schema.TargetNamespace = doc.TargetNamespace
	}
	if r.schema.Ann == nil {
		r.schema.Ann = annotation(doc.Annotation)
	}

	for i := range doc.SimpleTypes {
		raw := &doc.SimpleTypes[i]
		if raw.Name == "" {
			continue
		}
		if _, dup := r.schema.Types[raw.Name]; dup {
			r.log.Warnw("duplicate type definition ignored", "type", raw.Name)
			continue
		}
		r.rawSimple[raw.Name] = raw
		r.schema.Types[raw.Name] = &SimpleType{Name: raw.Name}
		r.schema.TypeOrder = append(r.schema.TypeOrder, raw.Name)
	}
	for i := range doc.ComplexTypes {
		raw := &doc.ComplexTypes[i]
		if raw.Name == "" {
			continue
		}
		if _, dup := r.schema.Types[raw.Name]; dup {
			r.log.Warnw("duplicate type definition ignored", "type", raw.Name)
			continue
		}
		r.rawComplex[raw.Name] = raw
		r.schema.Types[raw.Name] = &ComplexType{Name: raw.Name}
		r.schema.TypeOrder = append(r.schema.TypeOrder, raw.Name)
	}
	for i := range doc.Elements {
		raw := &doc.Elements[i]
		if raw.Name == "" {
			continue
		}
		if _, dup := r.schema.Elements[raw.Name]; dup {
			r.log.Warnw("duplicate element definition ignored", "element", raw.Name)
			continue
		}
		r.rawElements[raw.Name] = raw
		r.schema.Elements[raw.Name] = &Element{Name: raw.Name}
		r.schema.ElementOrder = append(r.schema.ElementOrder, raw.Name)
	}
	for i := range doc.Groups {
		g := &doc.Groups[i]
		if g.Name != "" {
			if _, dup := r.groups[g.Name]; !dup {
				r.groups[g.Name] = g
			}
		}
	}
	for i := range doc.AttributeGroups {
		g := &doc.AttributeGroups[i]
		if g.Name != "" {
			if _, dup := r.attrGroups[g.Name]; !dup {
				r.attrGroups[g.Name] = g
			}
		}
	}
	for i := range doc.Attributes {
		a := &doc.Attributes[i]
		if a.Name != "" {
			if _, dup := r.globalAttrs[a.Name]; !dup {
				r.globalAttrs[a.Name] = a
			}
		}
	}
}

// resolveType maps a QName reference to a shell or builtin node.
// Schema-local definitions shadow builtins. Unknown names resolve to
// nil with the local name kept for diagnostics.
func (r *resolver) resolveType(qname string) (Type, string) {
	name := local(qname)
	if t, ok := r.schema.Types[name]; ok {
		return t, name
	}
	if b, ok := Builtin(name); ok {
		return b, name
	}
	r.log.Debugw("unresolved type reference", "type", name)
	return nil, name
}

func (r *resolver) fillSimple(st *SimpleType, raw *xmlSimpleType) {
	st.Ann = annotation(raw.Annotation)
	switch {
	case raw.Restriction != nil:
		res := raw.Restriction
		if res.Base != "" {
			st.Base, st.BaseName = r.resolveType(res.Base)
		} else if res.SimpleType != nil {
			st.Base = r.anonymousSimple(res.SimpleType)
		}
		for _, e := range res.Enumerations {
			st.Enumeration = append(st.Enumeration, e.Value)
		}
		st.Pattern = joinPatterns(res.Patterns)
		st.MinInclusive = facetValue(res.MinInclusive)
		st.MaxInclusive = facetValue(res.MaxInclusive)
		st.MinExclusive = facetValue(res.MinExclusive)
		st.MaxExclusive = facetValue(res.MaxExclusive)
		st.MinLength = facetValue(res.MinLength)
		st.MaxLength = facetValue(res.MaxLength)
		st.Length = facetValue(res.Length)
		st.WhiteSpace = facetValue(res.WhiteSpace)
	case raw.List != nil:
		st.Variety = VarietyList
		if raw.List.ItemType != "" {
			st.BaseName = local(raw.List.ItemType)
		}
	case raw.Union != nil:
		st.Variety = VarietyUnion
	}
}

func (r *resolver) anonymousSimple(raw *xmlSimpleType) *SimpleType {
	st := &SimpleType{Name: raw.Name}
	r.fillSimple(st, raw)
	return st
}

func (r *resolver) fillComplex(ct *ComplexType, raw *xmlComplexType) {
	ct.Abstract = raw.Abstract
	ct.Mixed = raw.Mixed
	ct.Ann = annotation(raw.Annotation)

	switch {
	case raw.ComplexContent != nil:
		ext := raw.ComplexContent.Extension
		ct.DerivedBy = DerivationExtension
		if ext == nil {
			ext = raw.ComplexContent.Restriction
			ct.DerivedBy = DerivationRestriction
		}
		if ext == nil {
			ct.DerivedBy = DerivationNone
			return
		}
		if ext.Base != "" {
			ct.Base, ct.BaseName = r.resolveType(ext.Base)
		}
		ct.Content = r.buildContent(ext.Sequence, ext.Choice, ext.All, ext.GroupRef)
		ct.Attributes = r.buildAttributes(ext.Attributes, ext.AttributeGroups)

	case raw.SimpleContent != nil:
		ct.SimpleContent = true
		ext := raw.SimpleContent.Extension
		ct.DerivedBy = DerivationExtension
		if ext == nil {
			ext = raw.SimpleContent.Restriction
			ct.DerivedBy = DerivationRestriction
		}
		if ext == nil {
			ct.DerivedBy = DerivationNone
			return
		}
		if ext.Base != "" {
			ct.Base, ct.BaseName = r.resolveType(ext.Base)
		}
		ct.Attributes = r.buildAttributes(ext.Attributes, ext.AttributeGroups)

	default:
		ct.Content = r.buildContent(raw.Sequence, raw.Choice, raw.All, raw.GroupRef)
		ct.Attributes = r.buildAttributes(raw.Attributes, raw.AttributeGroups)
	}
}

func (r *resolver) buildContent(seq, cho, all *xmlGroupBody, gref *xmlGroupRef) *Particle {
	switch {
	case seq != nil:
		return r.buildBody(seq, CompositorSequence)
	case cho != nil:
		return r.buildBody(cho, CompositorChoice)
	case all != nil:
		return r.buildBody(all, CompositorAll)
	case gref != nil:
		return r.buildGroupRef(gref)
	}
	return nil
}

func (r *resolver) buildBody(body *xmlGroupBody, comp Compositor) *Particle {
	g := &ModelGroup{Compositor: comp}

	for i := range body.Elements {
		g.Particles = append(g.Particles, r.buildLocalElement(&body.Elements[i]))
	}
	for i := range body.Sequences {
		if p := r.buildBody(&body.Sequences[i], CompositorSequence); p != nil {
			g.Particles = append(g.Particles, p)
		}
	}
	for i := range body.Choices {
		if p := r.buildBody(&body.Choices[i], CompositorChoice); p != nil {
			g.Particles = append(g.Particles, p)
		}
	}
	for i := range body.Alls {
		if p := r.buildBody(&body.Alls[i], CompositorAll); p != nil {
			g.Particles = append(g.Particles, p)
		}
	}
	for i := range body.Anys {
		any := &body.Anys[i]
		min, max := parseOccurs(any.MinOccurs, any.MaxOccurs)
		g.Particles = append(g.Particles, &Particle{
			MinOccurs: min,
			MaxOccurs: max,
			Term:      &Wildcard{Namespace: any.Namespace, ProcessContents: any.ProcessContents},
		})
	}
	for i := range body.GroupRefs {
		if p := r.buildGroupRef(&body.GroupRefs[i]); p != nil {
			g.Particles = append(g.Particles, p)
		}
	}

	min, max := parseOccurs(body.MinOccurs, body.MaxOccurs)
	return &Particle{MinOccurs: min, MaxOccurs: max, Term: g}
}

func (r *resolver) buildGroupRef(gr *xmlGroupRef) *Particle {
	name := local(gr.Ref)
	if r.groupVisited[name] {
		r.log.Warnw("cyclic group reference skipped", "group", name)
		return nil
	}
	g, ok := r.groups[name]
	if !ok {
		r.log.Debugw("unresolved group reference", "group", name)
		return nil
	}
	r.groupVisited[name] = true
	defer delete(r.groupVisited, name)

	p := r.buildContent(g.Sequence, g.Choice, g.All, nil)
	if p == nil {
		return nil
	}
	p.MinOccurs, p.MaxOccurs = parseOccurs(gr.MinOccurs, gr.MaxOccurs)
	return p
}

func (r *resolver) buildLocalElement(raw *xmlElement) *Particle {
	min, max := parseOccurs(raw.MinOccurs, raw.MaxOccurs)

	if raw.Ref != "" {
		name := local(raw.Ref)
		target, ok := r.schema.Elements[name]
		if !ok {
			r.log.Debugw("unresolved element reference", "element", name)
		}
		el := &Element{Name: name, Ref: target, Ann: annotation(raw.Annotation)}
		return &Particle{MinOccurs: min, MaxOccurs: max, Term: el}
	}

	el := &Element{Name: raw.Name}
	r.fillElement(el, raw)
	return &Particle{MinOccurs: min, MaxOccurs: max, Term: el}
}

func (r *resolver) fillElement(el *Element, raw *xmlElement) {
	el.Abstract = raw.Abstract
	el.Nillable = raw.Nillable
	el.SubstitutionGroup = local(raw.SubstitutionGroup)
	el.Ann = annotation(raw.Annotation)

	switch {
	case raw.Type != "":
		el.Type, el.TypeName = r.resolveType(raw.Type)
	case raw.ComplexType != nil:
		ct := &ComplexType{}
		r.fillComplex(ct, raw.ComplexType)
		el.Type = ct
	case raw.SimpleType != nil:
		el.Type = r.anonymousSimple(raw.SimpleType)
	}

	el.Constraints = append(el.Constraints, r.buildConstraints(raw.Keys, ConstraintKey)...)
	el.Constraints = append(el.Constraints, r.buildConstraints(raw.Uniques, ConstraintUnique)...)
	el.Constraints = append(el.Constraints, r.buildConstraints(raw.KeyRefs, ConstraintKeyRef)...)
}

func (r *resolver) buildConstraints(raws []xmlIdentity, kind ConstraintKind) []*IdentityConstraint {
	out := make([]*IdentityConstraint, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		ic := &IdentityConstraint{
			Name:     raw.Name,
			Kind:     kind,
			Selector: raw.Selector.XPath,
			Refer:    local(raw.Refer),
			Ann:      annotation(raw.Annotation),
		}
		for _, f := range raw.Fields {
			ic.Fields = append(ic.Fields, f.XPath)
		}
		out = append(out, ic)
	}
	return out
}

// buildAttributes expands attribute declarations plus attribute group
// references, cycle-guarded on group names.
func (r *resolver) buildAttributes(attrs []xmlAttribute, groups []xmlAttributeGroupRef) []*Attribute {
	var out []*Attribute
	for i := range attrs {
		if a := r.buildAttribute(&attrs[i]); a != nil {
			out = append(out, a)
		}
	}
	for _, gr := range groups {
		name := local(gr.Ref)
		if r.attrGroupVisited[name] {
			r.log.Warnw("cyclic attribute group skipped", "group", name)
			continue
		}
		g, ok := r.attrGroups[name]
		if !ok {
			r.log.Debugw("unresolved attribute group", "group", name)
			continue
		}
		r.attrGroupVisited[name] = true
		out = append(out, r.buildAttributes(g.Attributes, g.AttributeGroups)...)
		delete(r.attrGroupVisited, name)
	}
	return out
}

func (r *resolver) buildAttribute(raw *xmlAttribute) *Attribute {
	if raw.Ref != "" {
		name := local(raw.Ref)
		g, ok := r.globalAttrs[name]
		if !ok {
			r.log.Debugw("unresolved attribute reference", "attribute", name)
			return &Attribute{Name: name, Use: parseUse(raw.Use)}
		}
		a := r.buildAttribute(g)
		if raw.Use != "" {
			a.Use = parseUse(raw.Use)
		}
		return a
	}

	a := &Attribute{
		Name:    raw.Name,
		Use:     parseUse(raw.Use),
		Default: raw.Default,
		Fixed:   raw.Fixed,
		Ann:     annotation(raw.Annotation),
	}
	switch {
	case raw.Type != "":
		a.Type, a.TypeName = r.resolveType(raw.Type)
	case raw.SimpleType != nil:
		a.Type = r.anonymousSimple(raw.SimpleType)
	}
	return a
}

func annotation(raw *xmlAnnotation) *Annotation {
	if raw == nil {
		return nil
	}
	a := &Annotation{Documentation: raw.Documentation}
	for _, ai := range raw.AppInfo {
		a.AppInfo = append(a.AppInfo, ai.Content)
	}
	return a
}

func parseUse(s string) Use {
	switch s {
	case "required":
		return UseRequired
	case "prohibited":
		return UseProhibited
	default:
		return UseOptional
	}
}

func parseOccurs(minS, maxS string) (int, int) {
	min, max := 1, 1
	if minS != "" {
		if v, err := strconv.Atoi(minS); err == nil {
			min = v
		}
	}
	if maxS == "unbounded" {
		max = UnboundedOccurs
	} else if maxS != "" {
		if v, err := strconv.Atoi(maxS); err == nil {
			max = v
		}
	}
	return min, max
}

// Multiple pattern facets in one restriction step are alternatives.
func joinPatterns(facets []xmlFacet) string {
	switch len(facets) {
	case 0:
		return ""
	case 1:
		return facets[0].Value
	}
	parts := make([]string, len(facets))
	for i, f := range facets {
		parts[i] = f.Value
	}
	return strings.Join(parts, "|")
}

func facetValue(f *xmlFacet) string {
	if f == nil {
		return ""
	}
	return f.Value
}

// local strips any namespace prefix from a QName reference.
func local(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
