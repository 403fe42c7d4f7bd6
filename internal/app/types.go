package app

import "schema-compat/internal/types"

type AnalyzeRequest struct {
	OldDir      string
	NewDir      string
	MappingPath string
	OutputDir   string
	Workers     int
}

type AnalyzeResult struct {
	RunID              string
	OldVersion         string
	NewVersion         string
	OutputDir          string
	TypesChecked       int
	Compatible         int
	Incompatible       int
	Renamed            int
	Removed            int
	SimpleTypesChecked int
	Truncations        int
}

type ResolveRequest struct {
	Dir      string
	TypeName string
}

type ResolveResult struct {
	Name       types.QName
	Version    string
	Outcome    types.ResolutionOutcome
	Elements   []types.ElementDef
	Attributes []types.AttributeDef
}

type MappingsRequest struct {
	Path   string
	OldDir string
	NewDir string
}

type MappingCheck struct {
	Old      string
	New      string
	OldFound bool
	NewFound bool
}

type MappingsResult struct {
	Entries []MappingCheck
	Broken  int
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	Summary types.AnalysisSummary
}
