package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lmtk/internal/app"
	"lmtk/internal/cli/ui"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SCHEMA",
		Short: "Check the cross references of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(commandContext(cmd), cmd, args[0])
		},
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command, path string) error {
	result, err := newAppService().Validate(ctx, app.ValidateRequest{
		SchemaPath:     path,
		ResolveImports: viper.GetBool("resolve_imports"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(result.Diagnostics) == 0 {
		ui.Success(out, fmt.Sprintf("%s is valid", path), noColor())
		return nil
	}
	ui.FormatDiagnostics(out, path, result.Diagnostics, noColor())
	if result.Valid() {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("schema validation failed for " + path)
}
