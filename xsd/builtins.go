package xsd

// builtinNames lists the XML Schema builtin types the formatter can
// meet in real schemas. Each gets one shared *SimpleType node so that
// base chains terminate at an IsBuiltin() node.
var builtinNames = []string{
	"anyType", "anySimpleType",
	"string", "normalizedString", "token", "language", "Name", "NCName",
	"NMTOKEN", "NMTOKENS", "QName", "anyURI",
	"ID", "IDREF", "IDREFS", "ENTITY", "ENTITIES",
	"boolean",
	"decimal", "float", "double",
	"integer", "nonPositiveInteger", "negativeInteger", "long", "int",
	"short", "byte", "nonNegativeInteger", "unsignedLong", "unsignedInt",
	"unsignedShort", "unsignedByte", "positiveInteger",
	"date", "dateTime", "time", "duration",
	"gYear", "gYearMonth", "gMonth", "gMonthDay", "gDay",
	"hexBinary", "base64Binary",
	"NOTATION",
}

var builtins = func() map[string]*SimpleType {
	m := make(map[string]*SimpleType, len(builtinNames))
	for _, name := range builtinNames {
		m[name] = &SimpleType{Name: name, builtin: true}
	}
	return m
}()

// Builtin returns the shared node for an XML Schema builtin type name
// such as "string" or "nonNegativeInteger".
func Builtin(local string) (*SimpleType, bool) {
	t, ok := builtins[local]
	return t, ok
}

// IsBuiltinName reports whether local names an XML Schema builtin type.
func IsBuiltinName(local string) bool {
	_, ok := builtins[local]
	return ok
}

// PrimitiveBase walks the base chain of t until it reaches a builtin
// type and returns that builtin's name. The walk is cycle-guarded; ok
// is false when no builtin is reachable (unresolved bases, pure
// complex content).
func PrimitiveBase(t Type) (string, bool) {
	seen := map[Type]bool{}
	for t != nil && !seen[t] {
		seen[t] = true
		switch v := t.(type) {
		case *SimpleType:
			if v.IsBuiltin() {
				return v.Name, true
			}
			if v.Base == nil && IsBuiltinName(v.BaseName) {
				return v.BaseName, true
			}
			t = v.Base
		case *ComplexType:
			if v.Base == nil && IsBuiltinName(v.BaseName) {
				return v.BaseName, true
			}
			t = v.Base
		default:
			return "", false
		}
	}
	return "", false
}
