package types

import "sort"

// ElementDef is one element declaration inside a complex type, after
// ref dereferencing and type-reference canonicalization. Type holds a
// qualified name ("label:Local"), a built-in ("xs:string"), or "" when
// the element declares its type inline.
type ElementDef struct {
	Name      string
	Type      string
	MinOccurs Occurs
	MaxOccurs Occurs
}

// AttributeDef is one attribute declaration. Ref marks an unresolved
// reference to a global attribute: Name then holds the reference as
// written (possibly prefixed) and the resolver dereferences it through
// the version's bare-name attribute table, since attribute references
// in this schema family cross namespace boundaries unqualified.
type AttributeDef struct {
	Name string
	Type string
	Use  AttributeUse
	Ref  bool
}

// MemberGroup is one sequence or choice grouping construct. Groups nest
// arbitrarily; grouping structure is irrelevant to compatibility
// analysis and is flattened before resolution.
type MemberGroup struct {
	Kind     GroupKind
	Elements []ElementDef
	Groups   []MemberGroup
}

// ComplexTypeDef is a named complex type as declared in one document.
// Members holds the nested grouping tree of the type's own content
// (for a derived type, the content of its extension/restriction body).
type ComplexTypeDef struct {
	Name        QName
	Base        string
	IsExtension bool
	Members     []MemberGroup
	Attributes  []AttributeDef
}

// SimpleTypeDef is a named simple type. Body is the serialized
// restriction/base content, compared textually between versions and
// never interpreted.
type SimpleTypeDef struct {
	Name QName
	Body string
}

// SchemaDocument is one parsed schema file: its classified namespace
// label plus the global declarations it contributes.
type SchemaDocument struct {
	Path            string
	TargetNamespace string
	Label           string
	Version         string
	ComplexTypes    []ComplexTypeDef
	SimpleTypes     []SimpleTypeDef
	Attributes      []AttributeDef
}

// SchemaIndex is the merged registry for one schema version. It is
// built once at load time and immutable afterwards.
type SchemaIndex struct {
	Version      string
	ComplexTypes map[QName]ComplexTypeDef
	SimpleTypes  map[QName]SimpleTypeDef

	// Attributes is a single bare-name table: attribute references in
	// this schema family cross namespace boundaries unqualified.
	Attributes map[string]AttributeDef
}

// ComplexTypeNames returns the registry keys in sorted order.
func (ix *SchemaIndex) ComplexTypeNames() []QName {
	return sortedQNames(ix.ComplexTypes)
}

// SimpleTypeNames returns the simple-type registry keys in sorted order.
func (ix *SchemaIndex) SimpleTypeNames() []QName {
	return sortedQNames(ix.SimpleTypes)
}

func sortedQNames[V any](m map[QName]V) []QName {
	names := make([]QName, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
