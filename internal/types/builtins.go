package types

// LinkMLTypesURI is the from_schema provenance of the built-in types
// library.  Types carrying it are kept by subsetting whether used or not.
const LinkMLTypesURI = "https://w3id.org/linkml/types"

// BuiltinTypes are the type names every schema may use as a range without
// declaring them, because they come from the built-in types library.
var BuiltinTypes = map[string]struct{}{
	"string":           {},
	"integer":          {},
	"boolean":          {},
	"float":            {},
	"double":           {},
	"decimal":          {},
	"time":             {},
	"date":             {},
	"datetime":         {},
	"date_or_datetime": {},
	"uriorcurie":       {},
	"curie":            {},
	"uri":              {},
	"ncname":           {},
	"objectidentifier": {},
	"nodeidentifier":   {},
	"jsonpointer":      {},
	"jsonpath":         {},
	"sparqlpath":       {},
}

func IsBuiltinType(name string) bool {
	_, ok := BuiltinTypes[name]
	return ok
}
