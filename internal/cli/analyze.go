package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-compat/internal/adapters"
	"schema-compat/internal/app"
	"schema-compat/internal/policies"
)

type analyzeOptions struct {
	OldDir      string
	NewDir      string
	MappingPath string
	OutputDir   string
	Workers     int
	Namespaces  string
	Family      string
}

func newAnalyzeCommand() *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare two schema versions and write a compatibility report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OldDir, "old-dir", "", "Directory of the old schema version")
	cmd.Flags().StringVar(&opts.NewDir, "new-dir", "", "Directory of the new schema version")
	cmd.Flags().StringVar(&opts.MappingPath, "mappings", "", "Type rename mapping file (TSV)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "compat-report", "Report output directory")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "Number of comparison workers")
	cmd.Flags().StringVar(&opts.Namespaces, "namespaces", "", "Namespace classification rules file (YAML)")
	cmd.Flags().StringVar(&opts.Family, "family", adapters.DefaultFamilyMarker, "Schema family marker for version detection")

	_ = viper.BindPFlag("old_dir", cmd.Flags().Lookup("old-dir"))
	_ = viper.BindPFlag("new_dir", cmd.Flags().Lookup("new-dir"))
	_ = viper.BindPFlag("mappings", cmd.Flags().Lookup("mappings"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("namespaces", cmd.Flags().Lookup("namespaces"))
	_ = viper.BindPFlag("family", cmd.Flags().Lookup("family"))

	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, opts analyzeOptions) error {
	service := newAppService()
	namespaces := resolveString(cmd, opts.Namespaces, "namespaces", "namespaces")
	family := resolveString(cmd, opts.Family, "family", "family")
	if err := configureSchemaSource(&service, namespaces, family); err != nil {
		return err
	}

	result, err := service.Analyze(ctx, app.AnalyzeRequest{
		OldDir:      resolveString(cmd, opts.OldDir, "old_dir", "old-dir"),
		NewDir:      resolveString(cmd, opts.NewDir, "new_dir", "new-dir"),
		MappingPath: resolveString(cmd, opts.MappingPath, "mappings", "mappings"),
		OutputDir:   resolveString(cmd, opts.OutputDir, "output", "output"),
		Workers:     resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("compared %s -> %s (run %s)\n", result.OldVersion, result.NewVersion, result.RunID)
	fmt.Printf("complex types checked: %d (compatible %d, incompatible %d, renamed %d, removed %d)\n",
		result.TypesChecked, result.Compatible, result.Incompatible, result.Renamed, result.Removed)
	fmt.Printf("simple types checked: %d\n", result.SimpleTypesChecked)
	if result.Truncations > 0 {
		fmt.Printf("resolution truncations: %d\n", result.Truncations)
	}
	fmt.Printf("report written to %s\n", result.OutputDir)
	return nil
}

// configureSchemaSource swaps the default schema adapter for one with
// custom namespace rules or a custom family marker.
func configureSchemaSource(service *app.Service, namespaces, family string) error {
	if namespaces == "" && (family == "" || family == adapters.DefaultFamilyMarker) {
		return nil
	}
	classifier := policies.NewNamespaceClassifier()
	if namespaces != "" {
		loaded, err := policies.LoadNamespaceClassifier(namespaces)
		if err != nil {
			return err
		}
		classifier = loaded
	}
	service.Schemas = adapters.NewSchemaDirAdapter(classifier, family)
	return nil
}
