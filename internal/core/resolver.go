package core

import (
	"github.com/rs/zerolog/log"

	"schema-compat/internal/types"
)

// maxResolveDepth caps inheritance-chain recursion during content-model
// resolution. Hitting the cap truncates to a partial model instead of
// failing the type.
const maxResolveDepth = 20

// ResolvedModel is a content model plus the outcome of computing it,
// so callers can tell a truncated resolution from a genuinely empty
// member set.
type ResolvedModel struct {
	Model   types.ContentModel
	Outcome types.ResolutionOutcome
}

// Resolver computes effective (inheritance-flattened) content models
// against one version's registry. Top-level results are memoized for
// the lifetime of the resolver; mid-chain results depend on the
// visited path and are recomputed.
type Resolver struct {
	index       *types.SchemaIndex
	cache       map[types.QName]ResolvedModel
	truncations int
}

func NewResolver(index *types.SchemaIndex) *Resolver {
	return &Resolver{
		index: index,
		cache: map[types.QName]ResolvedModel{},
	}
}

// Truncations returns how many times resolution hit a cycle or the
// depth cap since the resolver was created.
func (r *Resolver) Truncations() int {
	return r.truncations
}

// Resolve computes the effective member set of the named type. A name
// that is empty, built-in, or absent from the registry resolves to an
// empty model with a Resolved outcome; cycles and the depth cap yield
// a Truncated outcome.
func (r *Resolver) Resolve(name types.QName) ResolvedModel {
	if cached, ok := r.cache[name]; ok {
		return cached
	}
	result := r.resolve(name, 0, map[types.QName]struct{}{})
	r.cache[name] = result
	return result
}

func (r *Resolver) resolve(name types.QName, depth int, visited map[types.QName]struct{}) ResolvedModel {
	normalized := Normalize(string(name))
	if normalized == "" || IsBuiltin(normalized) {
		return ResolvedModel{Outcome: types.ResolutionResolved}
	}
	qname := types.QName(normalized)

	if depth > maxResolveDepth {
		r.truncations++
		log.Warn().Str("type", string(qname)).Int("depth", depth).
			Msg("content model resolution depth cap reached")
		return ResolvedModel{Outcome: types.ResolutionTruncated}
	}
	if _, seen := visited[qname]; seen {
		r.truncations++
		log.Warn().Str("type", string(qname)).
			Msg("content model resolution cycle truncated")
		return ResolvedModel{Outcome: types.ResolutionTruncated}
	}

	ct, ok := r.index.ComplexTypes[qname]
	if !ok {
		// Lookup miss: empty model, not an error.
		return ResolvedModel{Outcome: types.ResolutionResolved}
	}

	result := ResolvedModel{Outcome: types.ResolutionResolved}
	if ct.Base != "" {
		// Each recursive call gets its own copy of the path so sibling
		// branches may revisit shared ancestors.
		branch := make(map[types.QName]struct{}, len(visited)+1)
		for key := range visited {
			branch[key] = struct{}{}
		}
		branch[qname] = struct{}{}

		base := r.resolve(types.QName(Normalize(ct.Base)), depth+1, branch)
		if base.Outcome == types.ResolutionTruncated {
			result.Outcome = types.ResolutionTruncated
		}
		if ct.IsExtension {
			result.Model.Merge(base.Model)
		} else {
			// Restriction policy of this schema family: only attributes
			// pass through from the base; elements come exclusively from
			// the restriction's own declarations.
			for _, attrName := range base.Model.Attributes.Names() {
				attr, _ := base.Model.Attributes.Get(attrName)
				result.Model.Attributes.Put(attr)
			}
		}
	}

	for _, elem := range FlattenMembers(ct.Members) {
		result.Model.Elements.Put(elem)
	}
	for _, attr := range ct.Attributes {
		resolved, ok := r.resolveAttribute(attr)
		if !ok {
			continue
		}
		result.Model.Attributes.Put(resolved)
	}
	return result
}

// resolveAttribute dereferences global attribute references through the
// bare-name table. A reference keeps the name it was written with; its
// type comes from the global declaration and a local use overrides the
// global one. Unresolvable references are dropped, matching the lookup
// miss policy for types.
func (r *Resolver) resolveAttribute(attr types.AttributeDef) (types.AttributeDef, bool) {
	if !attr.Ref {
		if attr.Name == "" {
			return types.AttributeDef{}, false
		}
		if attr.Use == "" {
			attr.Use = types.AttributeUseOptional
		}
		return attr, true
	}
	global, ok := r.index.Attributes[types.QName(attr.Name).Local()]
	if !ok {
		return types.AttributeDef{}, false
	}
	use := attr.Use
	if use == "" {
		use = global.Use
	}
	if use == "" {
		use = types.AttributeUseOptional
	}
	return types.AttributeDef{Name: attr.Name, Type: global.Type, Use: use}, true
}
