package xsd

// Raw document structs for encoding/xml. These mirror schema syntax
// one-to-one and never leave this package; the resolve pass in load.go
// turns them into the linked model.

type xmlSchema struct {
	TargetNamespace string         `xml:"targetNamespace,attr"`
	Annotation      *xmlAnnotation `xml:"annotation"`

	Includes []xmlInclude `xml:"include"`
	Imports  []xmlImport  `xml:"import"`

	SimpleTypes     []xmlSimpleType     `xml:"simpleType"`
	ComplexTypes    []xmlComplexType    `xml:"complexType"`
	Elements        []xmlElement        `xml:"element"`
	Attributes      []xmlAttribute      `xml:"attribute"`
	Groups          []xmlGroup          `xml:"group"`
	AttributeGroups []xmlAttributeGroup `xml:"attributeGroup"`
}

type xmlInclude struct {
	SchemaLocation string `xml:"schemaLocation,attr"`
}

type xmlImport struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr"`
}

type xmlAnnotation struct {
	Documentation []string     `xml:"documentation"`
	AppInfo       []xmlAppInfo `xml:"appinfo"`
}

type xmlAppInfo struct {
	Content string `xml:",innerxml"`
}

type xmlElement struct {
	Name              string `xml:"name,attr"`
	Type              string `xml:"type,attr"`
	Ref               string `xml:"ref,attr"`
	MinOccurs         string `xml:"minOccurs,attr"`
	MaxOccurs         string `xml:"maxOccurs,attr"`
	Abstract          bool   `xml:"abstract,attr"`
	Nillable          bool   `xml:"nillable,attr"`
	SubstitutionGroup string `xml:"substitutionGroup,attr"`

	Annotation  *xmlAnnotation  `xml:"annotation"`
	ComplexType *xmlComplexType `xml:"complexType"`
	SimpleType  *xmlSimpleType  `xml:"simpleType"`

	Keys    []xmlIdentity `xml:"key"`
	Uniques []xmlIdentity `xml:"unique"`
	KeyRefs []xmlIdentity `xml:"keyref"`
}

type xmlIdentity struct {
	Name       string         `xml:"name,attr"`
	Refer      string         `xml:"refer,attr"`
	Selector   xmlXPath       `xml:"selector"`
	Fields     []xmlXPath     `xml:"field"`
	Annotation *xmlAnnotation `xml:"annotation"`
}

type xmlXPath struct {
	XPath string `xml:"xpath,attr"`
}

type xmlComplexType struct {
	Name     string `xml:"name,attr"`
	Abstract bool   `xml:"abstract,attr"`
	Mixed    bool   `xml:"mixed,attr"`

	Annotation *xmlAnnotation `xml:"annotation"`

	Sequence *xmlGroupBody `xml:"sequence"`
	Choice   *xmlGroupBody `xml:"choice"`
	All      *xmlGroupBody `xml:"all"`
	GroupRef *xmlGroupRef  `xml:"group"`

	Attributes      []xmlAttribute         `xml:"attribute"`
	AttributeGroups []xmlAttributeGroupRef `xml:"attributeGroup"`

	ComplexContent *xmlContent `xml:"complexContent"`
	SimpleContent  *xmlContent `xml:"simpleContent"`
}

type xmlContent struct {
	Extension   *xmlExtension `xml:"extension"`
	Restriction *xmlExtension `xml:"restriction"`
}

type xmlExtension struct {
	Base string `xml:"base,attr"`

	Sequence *xmlGroupBody `xml:"sequence"`
	Choice   *xmlGroupBody `xml:"choice"`
	All      *xmlGroupBody `xml:"all"`
	GroupRef *xmlGroupRef  `xml:"group"`

	Attributes      []xmlAttribute         `xml:"attribute"`
	AttributeGroups []xmlAttributeGroupRef `xml:"attributeGroup"`

	// Facets appear under simpleContent restrictions.
	Enumerations []xmlFacet `xml:"enumeration"`
	Patterns     []xmlFacet `xml:"pattern"`
}

type xmlGroupBody struct {
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`

	Elements  []xmlElement   `xml:"element"`
	Sequences []xmlGroupBody `xml:"sequence"`
	Choices   []xmlGroupBody `xml:"choice"`
	Alls      []xmlGroupBody `xml:"all"`
	Anys      []xmlAny       `xml:"any"`
	GroupRefs []xmlGroupRef  `xml:"group"`
}

type xmlGroup struct {
	Name     string        `xml:"name,attr"`
	Sequence *xmlGroupBody `xml:"sequence"`
	Choice   *xmlGroupBody `xml:"choice"`
	All      *xmlGroupBody `xml:"all"`
}

type xmlGroupRef struct {
	Ref       string `xml:"ref,attr"`
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
}

type xmlAny struct {
	MinOccurs       string `xml:"minOccurs,attr"`
	MaxOccurs       string `xml:"maxOccurs,attr"`
	Namespace       string `xml:"namespace,attr"`
	ProcessContents string `xml:"processContents,attr"`
}

type xmlAttribute struct {
	Name    string `xml:"name,attr"`
	Type    string `xml:"type,attr"`
	Ref     string `xml:"ref,attr"`
	Use     string `xml:"use,attr"`
	Default string `xml:"default,attr"`
	Fixed   string `xml:"fixed,attr"`

	Annotation *xmlAnnotation `xml:"annotation"`
	SimpleType *xmlSimpleType `xml:"simpleType"`
}

type xmlAttributeGroup struct {
	Name            string                 `xml:"name,attr"`
	Attributes      []xmlAttribute         `xml:"attribute"`
	AttributeGroups []xmlAttributeGroupRef `xml:"attributeGroup"`
}

type xmlAttributeGroupRef struct {
	Ref string `xml:"ref,attr"`
}

type xmlSimpleType struct {
	Name        string          `xml:"name,attr"`
	Annotation  *xmlAnnotation  `xml:"annotation"`
	Restriction *xmlRestriction `xml:"restriction"`
	List        *xmlList        `xml:"list"`
	Union       *xmlUnion       `xml:"union"`
}

type xmlRestriction struct {
	Base       string         `xml:"base,attr"`
	SimpleType *xmlSimpleType `xml:"simpleType"`

	Enumerations []xmlFacet `xml:"enumeration"`
	Patterns     []xmlFacet `xml:"pattern"`
	MinInclusive *xmlFacet  `xml:"minInclusive"`
	MaxInclusive *xmlFacet  `xml:"maxInclusive"`
	MinExclusive *xmlFacet  `xml:"minExclusive"`
	MaxExclusive *xmlFacet  `xml:"maxExclusive"`
	MinLength    *xmlFacet  `xml:"minLength"`
	MaxLength    *xmlFacet  `xml:"maxLength"`
	Length       *xmlFacet  `xml:"length"`
	WhiteSpace   *xmlFacet  `xml:"whiteSpace"`
}

type xmlFacet struct {
	Value      string         `xml:"value,attr"`
	Annotation *xmlAnnotation `xml:"annotation"`
}

type xmlList struct {
	ItemType   string         `xml:"itemType,attr"`
	SimpleType *xmlSimpleType `xml:"simpleType"`
}

type xmlUnion struct {
	MemberTypes string          `xml:"memberTypes,attr"`
	SimpleTypes []xmlSimpleType `xml:"simpleType"`
}
