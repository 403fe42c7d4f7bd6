package cli

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-compat/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the summary of a previously written report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "compat-report", "Report directory to inspect")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(cmd.Context(), app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	summary := result.Summary
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Run ID", summary.RunID})
	table.Append([]string{"Old version", summary.OldVersion})
	table.Append([]string{"New version", summary.NewVersion})
	table.Append([]string{"Created at", summary.CreatedAt})
	table.Append([]string{"Types checked", strconv.Itoa(summary.TypesChecked)})
	table.Append([]string{"Compatible", strconv.Itoa(summary.Compatible)})
	table.Append([]string{"Incompatible", strconv.Itoa(summary.Incompatible)})
	table.Append([]string{"Renamed", strconv.Itoa(summary.Renamed)})
	table.Append([]string{"Removed", strconv.Itoa(summary.Removed)})
	table.Append([]string{"Simple types checked", strconv.Itoa(summary.SimpleTypesChecked)})
	table.Append([]string{"Simple incompatible", strconv.Itoa(summary.SimpleIncompatible)})
	table.Append([]string{"Truncations", strconv.Itoa(summary.Truncations)})
	table.Render()
	return nil
}
