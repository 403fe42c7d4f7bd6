package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect reads the summary of a previously written report directory.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report directory is required")
	}
	summary, err := s.ReportReader.ReadSummary(outputDir)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Summary: summary}, nil
}
