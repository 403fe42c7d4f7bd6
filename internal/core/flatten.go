package core

import "schema-compat/internal/types"

// FlattenMembers folds arbitrarily nested sequence/choice groups into
// one ordered, deduplicated element list. Members of sequence groups
// come first (walk order at any depth), then members of choice groups;
// the first occurrence of a name wins. Grouping structure itself is
// irrelevant to compatibility analysis, only membership and
// cardinalities matter.
func FlattenMembers(groups []types.MemberGroup) []types.ElementDef {
	ordered := collectGroups(groups)

	var flat []types.ElementDef
	seen := map[string]struct{}{}
	appendMembers := func(kind types.GroupKind) {
		for _, group := range ordered {
			if group.Kind != kind {
				continue
			}
			for _, elem := range group.Elements {
				if elem.Name == "" {
					continue
				}
				if _, dup := seen[elem.Name]; dup {
					continue
				}
				seen[elem.Name] = struct{}{}
				flat = append(flat, elem)
			}
		}
	}
	appendMembers(types.GroupKindSequence)
	appendMembers(types.GroupKindChoice)
	return flat
}

// collectGroups walks the group tree depth-first, preserving the
// declaration order of the groups themselves.
func collectGroups(groups []types.MemberGroup) []types.MemberGroup {
	var out []types.MemberGroup
	for _, group := range groups {
		out = append(out, group)
		out = append(out, collectGroups(group.Groups)...)
	}
	return out
}
