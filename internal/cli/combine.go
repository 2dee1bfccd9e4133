package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lmtk/internal/adapters"
	"lmtk/internal/app"
	"lmtk/internal/cli/ui"
)

type combineOptions struct {
	Schemas   string
	InputType string
	Output    string
	Strict    bool
	Source    sourceFlags
}

type combineRunner func(app.Service, context.Context, app.CombineRequest) (app.CombineResult, error)

func newMergeCommand() *cobra.Command {
	return newCombineCommand("merge", "Merge schemas, unioning same-named elements", "merged", app.Service.Merge)
}

func newConcatCommand() *cobra.Command {
	return newCombineCommand("concat", "Concatenate schemas, renaming colliding elements", "concatenated", app.Service.Concat)
}

func newCombineCommand(use string, short string, verb string, run combineRunner) *cobra.Command {
	opts := combineOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCombine(commandContext(cmd), cmd, opts, verb, run)
		},
	}
	cmd.Flags().StringVarP(&opts.Schemas, "schemas", "s", "", "Comma separated schema paths or a file listing them")
	cmd.Flags().StringVar(&opts.InputType, "input-type", adapters.InputTypeAuto, "How to read --schemas (auto, file, list)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output schema path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Abort on the first validation error of any input")
	opts.Source.register(cmd)
	_ = cmd.MarkFlagRequired("schemas")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runCombine(ctx context.Context, cmd *cobra.Command, opts combineOptions, verb string, run combineRunner) error {
	result, err := run(newAppService(), ctx, app.CombineRequest{
		Schemas:    opts.Schemas,
		InputType:  resolveString(cmd, opts.InputType, "input_type", "input-type"),
		OutputPath: opts.Output,
		Strict:     resolveBool(cmd, opts.Strict, "strict", "strict"),
		Source:     opts.Source.options(),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, report := range result.Diagnostics {
		ui.FormatDiagnostics(out, report.Source, report.Diagnostics, noColor())
	}
	ui.Success(out, fmt.Sprintf("%s %d schemas into %s", verb, len(result.Inputs), result.OutputPath), noColor())
	return nil
}
