package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema-compat/internal/core"
	"schema-compat/internal/types"
)

// ResolveType resolves the effective content model of a single type
// against one schema directory, for inspecting what a type actually
// exposes after inheritance flattening.
func (s Service) ResolveType(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	dir := strings.TrimSpace(req.Dir)
	typeName := strings.TrimSpace(req.TypeName)
	if dir == "" || typeName == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema directory and type name are required")
	}

	index, err := s.Schemas.LoadVersion(dir)
	if err != nil {
		return ResolveResult{}, err
	}
	qname, err := matchTypeName(index, typeName)
	if err != nil {
		return ResolveResult{}, err
	}

	resolver := core.NewResolver(index)
	resolved := resolver.Resolve(qname)

	result := ResolveResult{
		Name:    qname,
		Version: index.Version,
		Outcome: resolved.Outcome,
	}
	for _, name := range resolved.Model.Elements.Names() {
		elem, _ := resolved.Model.Elements.Get(name)
		result.Elements = append(result.Elements, elem)
	}
	for _, name := range resolved.Model.Attributes.Names() {
		attr, _ := resolved.Model.Attributes.Get(name)
		result.Attributes = append(result.Attributes, attr)
	}
	return result, nil
}

// matchTypeName accepts either a qualified registry key or a bare local
// name that matches exactly one registered complex type.
func matchTypeName(index *types.SchemaIndex, typeName string) (types.QName, error) {
	qname := types.QName(core.Normalize(typeName))
	if qname.Qualified() {
		if _, ok := index.ComplexTypes[qname]; !ok {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("type not found: " + string(qname))
		}
		return qname, nil
	}

	var candidates []types.QName
	for _, name := range index.ComplexTypeNames() {
		if name.Local() == string(qname) {
			candidates = append(candidates, name)
		}
	}
	switch len(candidates) {
	case 0:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("type not found: " + string(qname))
	case 1:
		return candidates[0], nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ambiguous type name " + string(qname) + ", candidates: " + joinQNames(candidates))
	}
}

func joinQNames(names []types.QName) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, string(name))
	}
	return strings.Join(parts, ", ")
}
