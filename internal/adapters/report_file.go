package adapters

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"schema-compat/internal/ports"
	"schema-compat/internal/types"
)

const (
	typesFileName       = "types.csv"
	simpleTypesFileName = "simpletypes.csv"
	mappingsFileName    = "mappings.tsv"
	removedFileName     = "removed_types.txt"
	addedFileName       = "added_types.txt"
	summaryFileName     = "summary.yaml"
)

// ReportFileAdapter renders an analysis report into a directory of
// plain files and reads the summary back. The record shapes are the
// core's contract; this adapter only decides the file layout.
type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

func (a ReportFileAdapter) WriteAnalysis(dir string, report types.AnalysisReport) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory: " + dir).
			WithCause(err)
	}
	if err := a.writeTypes(filepath.Join(dir, typesFileName), report.Types); err != nil {
		return err
	}
	if err := a.writeSimpleTypes(filepath.Join(dir, simpleTypesFileName), report.SimpleTypes); err != nil {
		return err
	}
	if err := a.writeMappings(filepath.Join(dir, mappingsFileName), report.AppliedMappings); err != nil {
		return err
	}
	if err := writeNameList(filepath.Join(dir, removedFileName), report.RemovedTypes); err != nil {
		return err
	}
	if err := writeNameList(filepath.Join(dir, addedFileName), report.AddedTypes); err != nil {
		return err
	}
	return a.writeSummary(filepath.Join(dir, summaryFileName), report.Summary)
}

func (a ReportFileAdapter) ReadSummary(dir string) (types.AnalysisSummary, error) {
	path := filepath.Join(dir, summaryFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return types.AnalysisSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("analysis summary not found: " + path).
			WithCause(err)
	}
	var summary types.AnalysisSummary
	if err := yaml.Unmarshal(content, &summary); err != nil {
		return types.AnalysisSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse analysis summary: " + path).
			WithCause(err)
	}
	return summary, nil
}

func (a ReportFileAdapter) writeTypes(path string, reports []types.TypeReport) error {
	rows := [][]string{{
		"name", "removed", "renamed_to", "base_type_change",
		"new_members", "missing_members", "expanded_cardinality",
		"restricted_cardinality", "type_changes", "notes", "compatible",
	}}
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.Name),
			yesNo(r.Removed),
			string(r.RenamedTo),
			r.BaseTypeChange,
			strings.Join(r.NewMembers, "; "),
			strings.Join(r.MissingMembers, "; "),
			strings.Join(r.ExpandedCardinality, "; "),
			strings.Join(r.RestrictedCardinality, "; "),
			strings.Join(r.TypeChanges, "; "),
			r.Notes,
			yesNo(r.Compatible),
		})
	}
	return writeCSV(path, rows)
}

func (a ReportFileAdapter) writeSimpleTypes(path string, reports []types.SimpleTypeReport) error {
	rows := [][]string{{
		"name", "removed", "renamed_to", "restriction_changed", "notes", "compatible",
	}}
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.Name),
			yesNo(r.Removed),
			string(r.RenamedTo),
			yesNo(r.RestrictionChanged),
			r.Notes,
			yesNo(r.Compatible),
		})
	}
	return writeCSV(path, rows)
}

func (a ReportFileAdapter) writeMappings(path string, entries []types.MappingEntry) error {
	ordered := append([]types.MappingEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Old < ordered[j].Old })
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, entry.Old+"\t"+entry.New)
	}
	return writeFile(path, strings.Join(lines, "\n"))
}

func (a ReportFileAdapter) writeSummary(path string, summary types.AnalysisSummary) error {
	content, err := yaml.Marshal(summary)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode analysis summary").
			WithCause(err)
	}
	return writeFile(path, string(content))
}

func writeNameList(path string, names []types.QName) error {
	var lines []string
	for _, name := range names {
		lines = append(lines, string(name))
	}
	return writeFile(path, strings.Join(lines, "\n"))
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report file: " + path).
			WithCause(err)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report file: " + path).
			WithCause(err)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report file: " + path).
			WithCause(err)
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

var _ ports.ReportWriterPort = ReportFileAdapter{}
var _ ports.ReportReaderPort = ReportFileAdapter{}
