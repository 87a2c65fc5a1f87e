// Package xsd models a resolved XML Schema as a closed set of node kinds.
//
// The model deliberately covers only the shapes the formatter consumes:
// simple types, complex types, elements, attributes, model groups,
// particles and identity constraints. Anything else (xs:any,
// xs:anyAttribute) is represented by the Wildcard arm so that callers
// can detect and skip unsupported shapes instead of guessing.
//
// Load parses schema documents with encoding/xml and then runs a resolve
// pass that links QName references into direct pointers. After Load
// returns, type references are either resolved (Type != nil) or carry
// the declared name for diagnostics (TypeName set, Type == nil).
package xsd
