package adapters

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-compat/internal/types"
)

func sampleReport() types.AnalysisReport {
	return types.AnalysisReport{
		Summary: types.AnalysisSummary{
			RunID:              "run-1",
			OldVersion:         "2.5.2",
			NewVersion:         "2.6",
			CreatedAt:          "2026-08-29T10:00:00Z",
			TypesChecked:       2,
			Compatible:         1,
			Incompatible:       1,
			SimpleTypesChecked: 1,
		},
		Types: []types.TypeReport{
			{
				Name:       "diggs:AlphaType",
				NewMembers: []string{"email(0..1)"},
				Notes:      "ok",
				Compatible: true,
			},
			{
				Name:                  "diggs:BetaType",
				RestrictedCardinality: []string{"@id(required)"},
				Notes:                 "attribute now required: id",
			},
		},
		SimpleTypes: []types.SimpleTypeReport{
			{Name: "diggs:StatusType", Compatible: true},
		},
		RemovedTypes:    []types.QName{"diggs:GoneType"},
		AddedTypes:      []types.QName{"diggs:FreshType"},
		AppliedMappings: []types.MappingEntry{{Old: "diggs:OldType", New: "diggs:NewType"}},
	}
}

func TestWriteAnalysisLaysOutReportDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	adapter := NewReportFileAdapter()
	require.NoError(t, adapter.WriteAnalysis(dir, sampleReport()))

	for _, name := range []string{
		"types.csv", "simpletypes.csv", "mappings.tsv",
		"removed_types.txt", "added_types.txt", "summary.yaml",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing report file %s", name)
	}

	file, err := os.Open(filepath.Join(dir, "types.csv"))
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "name", rows[0][0])
	assert.Equal(t, "diggs:AlphaType", rows[1][0])
	assert.Equal(t, "yes", rows[1][10])
	assert.Equal(t, "no", rows[2][10])
	assert.Equal(t, "@id(required)", rows[2][7])

	removed, err := os.ReadFile(filepath.Join(dir, "removed_types.txt"))
	require.NoError(t, err)
	assert.Equal(t, "diggs:GoneType", strings.TrimSpace(string(removed)))

	mappings, err := os.ReadFile(filepath.Join(dir, "mappings.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "diggs:OldType\tdiggs:NewType", strings.TrimSpace(string(mappings)))
}

func TestReadSummaryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	adapter := NewReportFileAdapter()
	report := sampleReport()
	require.NoError(t, adapter.WriteAnalysis(dir, report))

	summary, err := adapter.ReadSummary(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(report.Summary, summary); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestReadSummaryMissing(t *testing.T) {
	_, err := NewReportFileAdapter().ReadSummary(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestReadSummaryMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary.yaml"), []byte("{unterminated"), 0644))

	_, err := NewReportFileAdapter().ReadSummary(dir)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
