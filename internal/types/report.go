package types

type TypeReport struct {
	Name                  QName
	Removed               bool
	RenamedTo             QName
	BaseTypeChange        string
	NewMembers            []string
	MissingMembers        []string
	ExpandedCardinality   []string
	RestrictedCardinality []string
	TypeChanges           []string
	Notes                 string
	Compatible            bool
}

type SimpleTypeReport struct {
	Name               QName
	Removed            bool
	RenamedTo          QName
	RestrictionChanged bool
	Notes              string
	Compatible         bool
}

type MappingEntry struct {
	Old string
	New string
}

type AnalysisSummary struct {
	RunID              string `yaml:"run_id"`
	OldVersion         string `yaml:"old_version"`
	NewVersion         string `yaml:"new_version"`
	CreatedAt          string `yaml:"created_at"`
	TypesChecked       int    `yaml:"types_checked"`
	Compatible         int    `yaml:"compatible"`
	Incompatible       int    `yaml:"incompatible"`
	Renamed            int    `yaml:"renamed"`
	Removed            int    `yaml:"removed"`
	SimpleTypesChecked int    `yaml:"simple_types_checked"`
	SimpleIncompatible int    `yaml:"simple_incompatible"`
	Truncations        int    `yaml:"truncations"`
}

// AnalysisReport is the complete output of one analysis run. Rendering
// it to files is an adapter concern; the record shapes above are the
// core's contract.
type AnalysisReport struct {
	Summary         AnalysisSummary
	Types           []TypeReport
	SimpleTypes     []SimpleTypeReport
	RemovedTypes    []QName
	AddedTypes      []QName
	AppliedMappings []MappingEntry
}
