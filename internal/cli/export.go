package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lmtk/internal/adapters"
	"lmtk/internal/app"
	"lmtk/internal/cli/ui"
)

type exportOptions struct {
	Format     string
	Output     string
	SQLDialect string
	RDFFormat  string
	Verify     bool
	VerifyDSN  string
	Source     sourceFlags
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export SCHEMA",
		Short: "Render a schema as JSON Schema, RDF, GraphQL, SQL, CSV or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(commandContext(cmd), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Format, "format", "f", adapters.FormatJSONSchema, "Export format (json, rdf, graphql, sql, csv, html, all)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output path; with --format all the extension is replaced per format")
	cmd.Flags().StringVar(&opts.SQLDialect, "sql-dialect", string(adapters.SQLDialectPostgreSQL), "SQL dialect (sqlite, postgresql, mysql, duckdb)")
	cmd.Flags().StringVar(&opts.RDFFormat, "rdf-format", adapters.RDFFormatTurtle, "RDF serialization (turtle, nquads)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Execute the generated SQL against a scratch database")
	cmd.Flags().StringVar(&opts.VerifyDSN, "verify-dsn", "", "PostgreSQL DSN used by --verify")
	opts.Source.register(cmd)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, path string, opts exportOptions) error {
	result, err := newAppService().Export(ctx, app.ExportRequest{
		SchemaPath: path,
		Format:     opts.Format,
		OutputPath: opts.Output,
		SQLDialect: resolveString(cmd, opts.SQLDialect, "sql_dialect", "sql-dialect"),
		RDFFormat:  resolveString(cmd, opts.RDFFormat, "rdf_format", "rdf-format"),
		Verify:     opts.Verify,
		VerifyDSN:  resolveString(cmd, opts.VerifyDSN, "verify_dsn", "verify-dsn"),
		Source:     opts.Source.options(),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, file := range result.Files {
		message := fmt.Sprintf("%s written to %s", file.Format, file.Path)
		if file.Verified {
			message += " (DDL verified)"
		}
		ui.Success(out, message, noColor())
	}
	return nil
}
