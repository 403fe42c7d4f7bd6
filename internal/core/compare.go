package core

import (
	"fmt"
	"sort"
	"strings"

	"schema-compat/internal/shared"
	"schema-compat/internal/types"
)

// CompareType builds the full structured record for one old complex
// type: membership changes, cardinality changes, nested type changes,
// and the overall verdict.
func (e *Engine) CompareType(qname types.QName) types.TypeReport {
	report := types.TypeReport{Name: qname, Compatible: true}

	target := qname
	mapped, hasMapped := e.MappedName(string(qname), false)
	if hasMapped {
		target = mapped
	}

	ctOld := e.old.ComplexTypes[qname]
	ctNew, ok := e.new.ComplexTypes[target]
	if !ok {
		report.Removed = true
		report.Compatible = false
		report.Notes = "type not found in new version"
		return report
	}
	if hasMapped {
		report.RenamedTo = mapped
		report.Notes = fmt.Sprintf("type renamed from %s to %s", qname, mapped)
	}

	baseOld := Normalize(ctOld.Base)
	baseNew := Normalize(ctNew.Base)
	if baseOld != baseNew && baseNew != "" {
		was := baseOld
		if was == "" {
			was = "none"
		}
		report.BaseTypeChange = fmt.Sprintf("%s (was: %s)", baseNew, was)
	}

	oldModel := e.oldResolver.Resolve(qname).Model
	newModel := e.newResolver.Resolve(target).Model

	for _, name := range sortedNames(newModel.Elements.Names()) {
		if oldModel.Elements.Has(name) {
			continue
		}
		elem, _ := newModel.Elements.Get(name)
		report.NewMembers = append(report.NewMembers,
			name+shared.FormatCardinality(elem.MinOccurs, elem.MaxOccurs))
		if elem.MinOccurs != 0 {
			report.Compatible = false
			report.Notes = shared.AppendNote(report.Notes, "new required element: "+name)
		}
	}
	for _, name := range sortedNames(newModel.Attributes.Names()) {
		if oldModel.Attributes.Has(name) {
			continue
		}
		attr, _ := newModel.Attributes.Get(name)
		report.NewMembers = append(report.NewMembers,
			fmt.Sprintf("@%s(%s)", name, attrUse(attr.Use)))
		if attr.Use == types.AttributeUseRequired {
			report.Compatible = false
			report.Notes = shared.AppendNote(report.Notes, "new required attribute: "+name)
		}
	}

	for _, name := range sortedNames(oldModel.Elements.Names()) {
		if newModel.Elements.Has(name) {
			continue
		}
		report.MissingMembers = append(report.MissingMembers, name)
		report.Compatible = false
		report.Notes = shared.AppendNote(report.Notes, "element removed: "+name)
	}
	for _, name := range sortedNames(oldModel.Attributes.Names()) {
		if newModel.Attributes.Has(name) {
			continue
		}
		report.MissingMembers = append(report.MissingMembers, "@"+name)
		report.Compatible = false
		report.Notes = shared.AppendNote(report.Notes, "attribute removed: "+name)
	}

	for _, name := range sortedNames(oldModel.Elements.Names()) {
		oldElem, _ := oldModel.Elements.Get(name)
		newElem, ok := newModel.Elements.Get(name)
		if !ok {
			continue
		}
		card := shared.FormatCardinality(newElem.MinOccurs, newElem.MaxOccurs)
		switch {
		case newElem.MinOccurs.Less(oldElem.MinOccurs) || oldElem.MaxOccurs.Less(newElem.MaxOccurs):
			report.ExpandedCardinality = append(report.ExpandedCardinality, name+card)
		case oldElem.MinOccurs.Less(newElem.MinOccurs) || newElem.MaxOccurs.Less(oldElem.MaxOccurs):
			report.RestrictedCardinality = append(report.RestrictedCardinality, name+card)
			report.Compatible = false
			report.Notes = shared.AppendNote(report.Notes, "cardinality restricted: "+name)
		}

		if oldElem.Type != newElem.Type && newElem.Type != "" {
			verdict := e.IsCompatible(oldElem.Type, newElem.Type)
			note := fmt.Sprintf("%s: %s → %s", name, oldElem.Type, newElem.Type)
			if verdict.Compatible {
				report.TypeChanges = append(report.TypeChanges, note+" [OK]")
			} else {
				report.TypeChanges = append(report.TypeChanges,
					fmt.Sprintf("%s [INCOMPATIBLE: %s]", note, verdict.Reason))
				report.Compatible = false
				report.Notes = shared.AppendNote(report.Notes,
					fmt.Sprintf("incompatible type change: %s (%s)", name, verdict.Reason))
			}
		}
	}

	for _, name := range sortedNames(oldModel.Attributes.Names()) {
		oldAttr, _ := oldModel.Attributes.Get(name)
		newAttr, ok := newModel.Attributes.Get(name)
		if !ok {
			continue
		}
		oldUse := attrUse(oldAttr.Use)
		newUse := attrUse(newAttr.Use)
		if oldUse == types.AttributeUseRequired && newUse == types.AttributeUseOptional {
			report.ExpandedCardinality = append(report.ExpandedCardinality,
				fmt.Sprintf("@%s(optional)", name))
		} else if oldUse == types.AttributeUseOptional && newUse == types.AttributeUseRequired {
			report.RestrictedCardinality = append(report.RestrictedCardinality,
				fmt.Sprintf("@%s(required)", name))
			report.Compatible = false
			report.Notes = shared.AppendNote(report.Notes, "attribute now required: "+name)
		}
	}

	if report.Compatible && report.BaseTypeChange != "" {
		report.Notes = "base type changed but content model compatible (architectural refactoring)"
	}
	return report
}

// CompareSimpleType decides simple-type compatibility: compatible iff
// the serialized restriction/base body is textually identical.
func (e *Engine) CompareSimpleType(qname types.QName) types.SimpleTypeReport {
	report := types.SimpleTypeReport{Name: qname, Compatible: true}

	target := qname
	mapped, hasMapped := e.MappedName(string(qname), true)
	if hasMapped {
		target = mapped
	}

	stOld := e.old.SimpleTypes[qname]
	stNew, ok := e.new.SimpleTypes[target]
	if !ok {
		report.Removed = true
		report.Compatible = false
		report.Notes = "simpleType not found in new version"
		return report
	}
	if hasMapped {
		report.RenamedTo = mapped
		report.Notes = fmt.Sprintf("simpleType renamed from %s to %s", qname, mapped)
	}

	if normalizeBody(stOld.Body) != normalizeBody(stNew.Body) {
		report.RestrictionChanged = true
		report.Compatible = false
		report.Notes = shared.AppendNote(report.Notes, "restriction or base type changed")
	}
	return report
}

// MembershipDiff lists types present only in the old version and types
// present only in the new version, excluding names the rename table
// accounts for on either side.
func (e *Engine) MembershipDiff() (removed, added []types.QName) {
	mappedOld := map[types.QName]struct{}{}
	mappedNew := map[types.QName]struct{}{}
	for oldName, newName := range e.mapping {
		markMapped(mappedOld, oldName, e.old)
		markMapped(mappedNew, newName, e.new)
	}

	removed = membershipOnly(e.old, e.new, mappedOld)
	added = membershipOnly(e.new, e.old, mappedNew)
	return removed, added
}

// membershipOnly collects names registered in a but not in b, skipping
// excluded names, over both complex and simple types.
func membershipOnly(a, b *types.SchemaIndex, excluded map[types.QName]struct{}) []types.QName {
	var only []types.QName
	for _, name := range a.ComplexTypeNames() {
		if _, ok := b.ComplexTypes[name]; ok {
			continue
		}
		if _, skip := excluded[name]; skip {
			continue
		}
		only = append(only, name)
	}
	for _, name := range a.SimpleTypeNames() {
		if _, ok := b.SimpleTypes[name]; ok {
			continue
		}
		if _, skip := excluded[name]; skip {
			continue
		}
		only = append(only, name)
	}
	sort.Slice(only, func(i, j int) bool { return only[i] < only[j] })
	return only
}

// markMapped records the registry name a mapping entry refers to,
// resolving bare names against qualified registry keys.
func markMapped(set map[types.QName]struct{}, name string, index *types.SchemaIndex) {
	qname := types.QName(Normalize(name))
	if _, ok := index.ComplexTypes[qname]; ok {
		set[qname] = struct{}{}
		return
	}
	if _, ok := index.SimpleTypes[qname]; ok {
		set[qname] = struct{}{}
		return
	}
	bare := qname.Local()
	for _, candidate := range index.ComplexTypeNames() {
		if candidate.Local() == bare {
			set[candidate] = struct{}{}
			return
		}
	}
	for _, candidate := range index.SimpleTypeNames() {
		if candidate.Local() == bare {
			set[candidate] = struct{}{}
			return
		}
	}
}

func sortedNames(names []string) []string {
	ordered := append([]string(nil), names...)
	sort.Strings(ordered)
	return ordered
}

// normalizeBody collapses whitespace runs so equivalent serializations
// of a simple-type body compare equal across pretty-printing changes.
func normalizeBody(body string) string {
	return strings.Join(strings.Fields(body), " ")
}
