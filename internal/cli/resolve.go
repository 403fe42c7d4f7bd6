package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-compat/internal/app"
	"schema-compat/internal/shared"
	"schema-compat/internal/types"
)

type resolveOptions struct {
	Dir      string
	TypeName string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the effective content model of one type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Schema directory")
	cmd.Flags().StringVar(&opts.TypeName, "type", "", "Type name, qualified or bare")
	_ = viper.BindPFlag("dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("type", cmd.Flags().Lookup("type"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.ResolveType(ctx, app.ResolveRequest{
		Dir:      resolveString(cmd, opts.Dir, "dir", "dir"),
		TypeName: resolveString(cmd, opts.TypeName, "type", "type"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (version %s)\n", result.Name, result.Version)
	if result.Outcome == types.ResolutionTruncated {
		fmt.Println("resolution truncated, content model is partial")
	}
	fmt.Printf("elements: %d\n", len(result.Elements))
	for _, elem := range result.Elements {
		fmt.Printf("- %s %s: %s\n", elem.Name,
			shared.FormatCardinality(elem.MinOccurs, elem.MaxOccurs), elem.Type)
	}
	fmt.Printf("attributes: %d\n", len(result.Attributes))
	for _, attr := range result.Attributes {
		fmt.Printf("- @%s (%s): %s\n", attr.Name, attr.Use, attr.Type)
	}
	return nil
}
