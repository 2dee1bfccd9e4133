package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lmtk/internal/app"
	"lmtk/internal/cli/ui"
)

type subsetOptions struct {
	Classes          []string
	IncludeInherited bool
	Output           string
	Source           sourceFlags
}

func newSubsetCommand() *cobra.Command {
	opts := subsetOptions{}
	cmd := &cobra.Command{
		Use:   "subset SCHEMA",
		Short: "Write the classes a schema needs to stay consistent around the given ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubset(commandContext(cmd), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Classes, "classes", "c", nil, "Classes to keep")
	cmd.Flags().BoolVar(&opts.IncludeInherited, "include-inherited", false, "Also keep parents and mixins")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output schema path")
	opts.Source.register(cmd)
	_ = cmd.MarkFlagRequired("classes")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runSubset(ctx context.Context, cmd *cobra.Command, path string, opts subsetOptions) error {
	result, err := newAppService().Subset(ctx, app.SubsetRequest{
		SchemaPath:       path,
		Classes:          opts.Classes,
		IncludeInherited: resolveBool(cmd, opts.IncludeInherited, "include_inherited", "include-inherited"),
		OutputPath:       opts.Output,
		Source:           opts.Source.options(),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "skipped unknown classes: %s\n", strings.Join(result.Skipped, ", "))
	}
	table := ui.NewTable(out, []string{"Section", "Kept", "Names"}, noColor())
	table.AddRow("classes", strconv.Itoa(len(result.Classes)), strings.Join(result.Classes, ", "))
	table.AddRow("slots", strconv.Itoa(len(result.Slots)), strings.Join(result.Slots, ", "))
	table.AddRow("types", strconv.Itoa(len(result.Types)), strings.Join(result.Types, ", "))
	table.AddRow("enums", strconv.Itoa(len(result.Enums)), strings.Join(result.Enums, ", "))
	table.Render()
	ui.Success(out, fmt.Sprintf("subset written to %s", result.OutputPath), noColor())
	return nil
}
