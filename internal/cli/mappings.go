package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-compat/internal/app"
)

type mappingsOptions struct {
	Path   string
	OldDir string
	NewDir string
}

func newMappingsCommand() *cobra.Command {
	opts := mappingsOptions{}
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Verify a type rename mapping file against both schema versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMappings(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Path, "file", "", "Type rename mapping file (TSV)")
	cmd.Flags().StringVar(&opts.OldDir, "old-dir", "", "Directory of the old schema version")
	cmd.Flags().StringVar(&opts.NewDir, "new-dir", "", "Directory of the new schema version")
	_ = viper.BindPFlag("mapping_file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("old_dir", cmd.Flags().Lookup("old-dir"))
	_ = viper.BindPFlag("new_dir", cmd.Flags().Lookup("new-dir"))
	return cmd
}

func runMappings(ctx context.Context, cmd *cobra.Command, opts mappingsOptions) error {
	service := newAppService()
	result, err := service.CheckMappings(ctx, app.MappingsRequest{
		Path:   resolveString(cmd, opts.Path, "mapping_file", "file"),
		OldDir: resolveString(cmd, opts.OldDir, "old_dir", "old-dir"),
		NewDir: resolveString(cmd, opts.NewDir, "new_dir", "new-dir"),
	})
	if err != nil {
		return err
	}

	for _, entry := range result.Entries {
		status := "ok"
		switch {
		case !entry.OldFound && !entry.NewFound:
			status = "both sides unknown"
		case !entry.OldFound:
			status = "old type unknown"
		case !entry.NewFound:
			status = "new type unknown"
		}
		fmt.Printf("- %s -> %s: %s\n", entry.Old, entry.New, status)
	}
	fmt.Printf("%d entries checked, %d broken\n", len(result.Entries), result.Broken)
	return nil
}
