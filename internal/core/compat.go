package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"schema-compat/internal/shared"
	"schema-compat/internal/types"
)

// maxCompatDepth caps nested element-type recursion inside the
// compatibility decision, independent of the content-model depth cap.
const maxCompatDepth = 5

// Verdict is one compatibility decision with its human-readable reason.
// Every input pair yields exactly one verdict.
type Verdict struct {
	Compatible bool
	Reason     string
}

type compatKey struct {
	old types.QName
	new types.QName
}

// Engine decides backward compatibility between one old and one new
// schema version. It owns its registries, resolvers, and memoization
// cache for the duration of one analysis run; verdicts are not portable
// across version pairs, so build a fresh Engine per pair.
type Engine struct {
	old     *types.SchemaIndex
	new     *types.SchemaIndex
	mapping types.TypeMapping

	oldResolver *Resolver
	newResolver *Resolver
	cache       map[compatKey]Verdict
}

func NewEngine(ctx context.Context, old, new *types.SchemaIndex, mapping types.TypeMapping) *Engine {
	assert.NotEmpty(ctx, old.Version, "old schema version must be set")
	assert.NotEmpty(ctx, new.Version, "new schema version must be set")
	return &Engine{
		old:         old,
		new:         new,
		mapping:     mapping,
		oldResolver: NewResolver(old),
		newResolver: NewResolver(new),
		cache:       map[compatKey]Verdict{},
	}
}

// Truncations returns the number of truncated content-model resolutions
// observed on either side so far.
func (e *Engine) Truncations() int {
	return e.oldResolver.Truncations() + e.newResolver.Truncations()
}

// MappedName applies the rename table to an old qualified name. Exact
// qualified matches win; otherwise a bare-name entry is re-qualified
// under the old name's own namespace label and accepted only if that
// target exists in the new registry. simple selects the simple-type
// registry for the existence check.
func (e *Engine) MappedName(oldName string, simple bool) (types.QName, bool) {
	normalized := Normalize(oldName)
	if target, ok := e.mapping.Lookup(normalized); ok {
		return types.QName(Normalize(target)), true
	}
	qname := types.QName(normalized)
	target, ok := e.mapping.Lookup(qname.Local())
	if !ok {
		return "", false
	}
	if strings.Contains(target, ":") {
		return types.QName(Normalize(target)), true
	}
	candidate := types.MakeQName(qname.Label(), target)
	if simple {
		if _, exists := e.new.SimpleTypes[candidate]; exists {
			return candidate, true
		}
	} else {
		if _, exists := e.new.ComplexTypes[candidate]; exists {
			return candidate, true
		}
	}
	return "", false
}

// IsCompatible decides whether substituting newName for oldName is
// backward compatible. Deterministic and total: the first applicable
// rule wins.
func (e *Engine) IsCompatible(oldName, newName string) Verdict {
	return e.isCompatible(oldName, newName, 0)
}

func (e *Engine) isCompatible(oldName, newName string, depth int) Verdict {
	if depth > maxCompatDepth {
		return Verdict{Compatible: true, Reason: "max recursion depth reached"}
	}
	key := compatKey{
		old: types.QName(Normalize(oldName)),
		new: types.QName(Normalize(newName)),
	}
	if verdict, ok := e.cache[key]; ok {
		return verdict
	}
	verdict := e.decide(string(key.old), string(key.new), depth)
	e.cache[key] = verdict
	return verdict
}

func (e *Engine) decide(oldName, newName string, depth int) Verdict {
	if oldName == newName {
		return Verdict{Compatible: true, Reason: "types identical"}
	}
	if mapped, ok := e.MappedName(oldName, false); ok && string(mapped) == newName {
		return Verdict{Compatible: true, Reason: "known mapping"}
	}
	if IsBuiltin(oldName) || IsBuiltin(newName) {
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("built-in type change: %s → %s", oldName, newName),
		}
	}
	if _, ok := e.old.ComplexTypes[types.QName(oldName)]; !ok {
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("type %s not found in old schema", oldName),
		}
	}
	if _, ok := e.new.ComplexTypes[types.QName(newName)]; !ok {
		return Verdict{
			Compatible: false,
			Reason:     fmt.Sprintf("type %s not found in new schema", newName),
		}
	}

	oldModel := e.oldResolver.Resolve(types.QName(oldName)).Model
	newModel := e.newResolver.Resolve(types.QName(newName)).Model

	if missing := missingNames(oldModel.Elements.Names(), &newModel.Elements); len(missing) > 0 {
		return Verdict{
			Compatible: false,
			Reason:     "missing elements: " + strings.Join(shared.FirstSorted(missing, 3), ", "),
		}
	}
	if missing := missingAttrNames(oldModel.Attributes.Names(), &newModel.Attributes); len(missing) > 0 {
		return Verdict{
			Compatible: false,
			Reason:     "missing attributes: " + strings.Join(shared.FirstSorted(missing, 3), ", "),
		}
	}
	for _, name := range newModel.Elements.Names() {
		if oldModel.Elements.Has(name) {
			continue
		}
		elem, _ := newModel.Elements.Get(name)
		if elem.MinOccurs != 0 {
			return Verdict{Compatible: false, Reason: "new required element: " + name}
		}
	}
	for _, name := range newModel.Attributes.Names() {
		if oldModel.Attributes.Has(name) {
			continue
		}
		attr, _ := newModel.Attributes.Get(name)
		if attr.Use == types.AttributeUseRequired {
			return Verdict{Compatible: false, Reason: "new required attribute: " + name}
		}
	}
	for _, name := range oldModel.Elements.Names() {
		oldElem, _ := oldModel.Elements.Get(name)
		newElem, ok := newModel.Elements.Get(name)
		if !ok {
			continue
		}
		if oldElem.MinOccurs.Less(newElem.MinOccurs) || newElem.MaxOccurs.Less(oldElem.MaxOccurs) {
			return Verdict{Compatible: false, Reason: "cardinality restricted on element: " + name}
		}
		if oldElem.Type != newElem.Type && newElem.Type != "" {
			nested := e.isCompatible(oldElem.Type, newElem.Type, depth+1)
			if !nested.Compatible {
				return Verdict{
					Compatible: false,
					Reason:     fmt.Sprintf("incompatible type change on %s: %s", name, nested.Reason),
				}
			}
		}
	}
	for _, name := range oldModel.Attributes.Names() {
		oldAttr, _ := oldModel.Attributes.Get(name)
		newAttr, ok := newModel.Attributes.Get(name)
		if !ok {
			continue
		}
		if attrUse(oldAttr.Use) == types.AttributeUseOptional && newAttr.Use == types.AttributeUseRequired {
			return Verdict{Compatible: false, Reason: "attribute now required: " + name}
		}
	}
	return Verdict{Compatible: true, Reason: "content models compatible"}
}

func missingNames(names []string, in *types.ElementSet) []string {
	var missing []string
	for _, name := range names {
		if !in.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func missingAttrNames(names []string, in *types.AttributeSet) []string {
	var missing []string
	for _, name := range names {
		if !in.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// attrUse treats an unset use as optional, the schema default.
func attrUse(use types.AttributeUse) types.AttributeUse {
	if use == "" {
		return types.AttributeUseOptional
	}
	return use
}
