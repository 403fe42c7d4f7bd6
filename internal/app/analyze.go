package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema-compat/internal/core"
	"schema-compat/internal/types"
)

// Analyze runs the full compatibility analysis of one old schema
// version against one new one and writes the report directory.
func (s Service) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	oldDir := strings.TrimSpace(req.OldDir)
	newDir := strings.TrimSpace(req.NewDir)
	if oldDir == "" || newDir == "" {
		return AnalyzeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("old and new schema directories are required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = "compat-report"
	}

	oldIndex, err := s.Schemas.LoadVersion(oldDir)
	if err != nil {
		return AnalyzeResult{}, err
	}
	newIndex, err := s.Schemas.LoadVersion(newDir)
	if err != nil {
		return AnalyzeResult{}, err
	}
	mapping, err := s.Mapping.Load(req.MappingPath)
	if err != nil {
		return AnalyzeResult{}, err
	}

	engine := core.NewEngine(ctx, oldIndex, newIndex, mapping)
	names := oldIndex.ComplexTypeNames()
	typeReports, truncations := compareTypes(ctx, oldIndex, newIndex, mapping, names, req.Workers)

	var simpleReports []types.SimpleTypeReport
	for _, name := range oldIndex.SimpleTypeNames() {
		simpleReports = append(simpleReports, engine.CompareSimpleType(name))
	}
	removed, added := engine.MembershipDiff()
	truncations += engine.Truncations()

	summary := types.AnalysisSummary{
		RunID:              s.NewRunID(),
		OldVersion:         oldIndex.Version,
		NewVersion:         newIndex.Version,
		CreatedAt:          s.Clock().UTC().Format(time.RFC3339),
		TypesChecked:       len(typeReports),
		SimpleTypesChecked: len(simpleReports),
		Truncations:        truncations,
	}
	for _, report := range typeReports {
		switch {
		case report.Removed:
			summary.Removed++
		case report.Compatible:
			summary.Compatible++
		default:
			summary.Incompatible++
		}
		if report.RenamedTo != "" {
			summary.Renamed++
		}
	}
	for _, report := range simpleReports {
		if !report.Compatible {
			summary.SimpleIncompatible++
		}
	}

	report := types.AnalysisReport{
		Summary:         summary,
		Types:           typeReports,
		SimpleTypes:     simpleReports,
		RemovedTypes:    removed,
		AddedTypes:      added,
		AppliedMappings: mappingEntries(mapping),
	}
	if err := s.ReportWriter.WriteAnalysis(outputDir, report); err != nil {
		return AnalyzeResult{}, err
	}

	log.Info().
		Str("run_id", summary.RunID).
		Str("old_version", summary.OldVersion).
		Str("new_version", summary.NewVersion).
		Int("compatible", summary.Compatible).
		Int("incompatible", summary.Incompatible).
		Int("renamed", summary.Renamed).
		Int("removed", summary.Removed).
		Int("truncations", summary.Truncations).
		Msg("analysis completed")

	return AnalyzeResult{
		RunID:              summary.RunID,
		OldVersion:         summary.OldVersion,
		NewVersion:         summary.NewVersion,
		OutputDir:          outputDir,
		TypesChecked:       summary.TypesChecked,
		Compatible:         summary.Compatible,
		Incompatible:       summary.Incompatible,
		Renamed:            summary.Renamed,
		Removed:            summary.Removed,
		SimpleTypesChecked: summary.SimpleTypesChecked,
		Truncations:        summary.Truncations,
	}, nil
}

// compareTypes shards the sorted type-name list across workers. Each
// worker owns an independent engine cache over the shared immutable
// registries, so no coordination is needed beyond joining; results land
// at their name's index, keeping output order deterministic.
func compareTypes(ctx context.Context, oldIndex, newIndex *types.SchemaIndex, mapping types.TypeMapping, names []types.QName, workers int) ([]types.TypeReport, int) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(names) {
		workers = len(names)
	}
	if workers <= 1 {
		engine := core.NewEngine(ctx, oldIndex, newIndex, mapping)
		reports := make([]types.TypeReport, 0, len(names))
		for _, name := range names {
			reports = append(reports, engine.CompareType(name))
		}
		return reports, engine.Truncations()
	}

	reports := make([]types.TypeReport, len(names))
	truncations := make(chan int, workers)
	chunk := (len(names) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(names); start += chunk {
		end := min(start+chunk, len(names))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			engine := core.NewEngine(ctx, oldIndex, newIndex, mapping)
			for i := start; i < end; i++ {
				reports[i] = engine.CompareType(names[i])
			}
			truncations <- engine.Truncations()
		}(start, end)
	}
	wg.Wait()
	close(truncations)
	total := 0
	for count := range truncations {
		total += count
	}
	return reports, total
}

func mappingEntries(mapping types.TypeMapping) []types.MappingEntry {
	entries := make([]types.MappingEntry, 0, mapping.Len())
	for oldName, newName := range mapping {
		entries = append(entries, types.MappingEntry{Old: oldName, New: newName})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Old < entries[j].Old })
	return entries
}
