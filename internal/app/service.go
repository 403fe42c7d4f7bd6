package app

import (
	"time"

	"github.com/google/uuid"

	"schema-compat/internal/adapters"
	"schema-compat/internal/policies"
	"schema-compat/internal/ports"
)

type Service struct {
	Schemas      ports.SchemaSourcePort
	Mapping      ports.MappingPort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	Clock        func() time.Time
	NewRunID     func() string
}

func NewService() Service {
	report := adapters.NewReportFileAdapter()
	return Service{
		Schemas:      adapters.NewSchemaDirAdapter(policies.NewNamespaceClassifier(), adapters.DefaultFamilyMarker),
		Mapping:      adapters.NewMappingFileAdapter(),
		ReportWriter: report,
		ReportReader: report,
		Clock:        time.Now,
		NewRunID:     uuid.NewString,
	}
}
