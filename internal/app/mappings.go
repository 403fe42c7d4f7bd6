package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema-compat/internal/core"
	"schema-compat/internal/types"
)

// CheckMappings verifies a rename table against both schema versions,
// flagging entries whose source is unknown in the old version or whose
// target is unknown in the new one.
func (s Service) CheckMappings(ctx context.Context, req MappingsRequest) (MappingsResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return MappingsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mapping file path is required")
	}
	oldDir := strings.TrimSpace(req.OldDir)
	newDir := strings.TrimSpace(req.NewDir)
	if oldDir == "" || newDir == "" {
		return MappingsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("old and new schema directories are required")
	}

	mapping, err := s.Mapping.Load(path)
	if err != nil {
		return MappingsResult{}, err
	}
	oldIndex, err := s.Schemas.LoadVersion(oldDir)
	if err != nil {
		return MappingsResult{}, err
	}
	newIndex, err := s.Schemas.LoadVersion(newDir)
	if err != nil {
		return MappingsResult{}, err
	}

	result := MappingsResult{}
	for oldName, newName := range mapping {
		check := MappingCheck{
			Old:      oldName,
			New:      newName,
			OldFound: nameRegistered(oldIndex, oldName),
			NewFound: nameRegistered(newIndex, newName),
		}
		if !check.OldFound || !check.NewFound {
			result.Broken++
		}
		result.Entries = append(result.Entries, check)
	}
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Old < result.Entries[j].Old
	})
	return result, nil
}

// nameRegistered checks a possibly bare mapping-file name against the
// complex and simple type registries of one version.
func nameRegistered(index *types.SchemaIndex, name string) bool {
	qname := types.QName(core.Normalize(name))
	if qname.Qualified() {
		if _, ok := index.ComplexTypes[qname]; ok {
			return true
		}
		_, ok := index.SimpleTypes[qname]
		return ok
	}
	for _, candidate := range index.ComplexTypeNames() {
		if candidate.Local() == string(qname) {
			return true
		}
	}
	for _, candidate := range index.SimpleTypeNames() {
		if candidate.Local() == string(qname) {
			return true
		}
	}
	return false
}
