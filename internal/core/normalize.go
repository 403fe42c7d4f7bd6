package core

import "strings"

// builtinNames are the bare names of XML Schema built-in primitives
// recognized by the compatibility rules.
var builtinNames = map[string]struct{}{
	"string":        {},
	"double":        {},
	"float":         {},
	"integer":       {},
	"int":           {},
	"long":          {},
	"short":         {},
	"byte":          {},
	"boolean":       {},
	"decimal":       {},
	"date":          {},
	"dateTime":      {},
	"time":          {},
	"anyURI":        {},
	"QName":         {},
	"anyType":       {},
	"anySimpleType": {},
}

// prefixAliases maps well-known prefix spellings to their canonical
// form. Namespace labels assigned by the classifier pass through
// untouched; parse-time canonicalization already rewrote document
// prefixes to labels, so only alias spellings remain to normalize.
var prefixAliases = map[string]string{
	"xsd": "xs",
}

// Normalize yields the canonical form of a type name for registry and
// mapping-file lookups.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if idx := strings.Index(name, ":"); idx >= 0 {
		if canonical, ok := prefixAliases[name[:idx]]; ok {
			return canonical + ":" + name[idx+1:]
		}
	}
	return name
}

// IsBuiltin reports whether a type name denotes an XML Schema built-in
// primitive, either by its "xs:" prefix or by bare name.
func IsBuiltin(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "xs:") || strings.HasPrefix(name, "xsd:") {
		return true
	}
	bare := name
	if idx := strings.Index(name, ":"); idx >= 0 {
		bare = name[idx+1:]
	}
	_, ok := builtinNames[bare]
	return ok
}
