package ports

import "schema-compat/internal/types"

type ReportWriterPort interface {
	WriteAnalysis(dir string, report types.AnalysisReport) error
}

type ReportReaderPort interface {
	ReadSummary(dir string) (types.AnalysisSummary, error)
}
