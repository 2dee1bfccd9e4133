package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/ports"
	"lmtk/internal/shared"
	"lmtk/internal/types"
)

const (
	FormatJSONSchema = "json"
	FormatGraphQL    = "graphql"
	FormatSQL        = "sql"
	FormatCSV        = "csv"
	FormatRDF        = "rdf"
	FormatHTML       = "html"
)

// ExportFormats lists every export format in the order `--format all`
// writes them.
var ExportFormats = []string{FormatJSONSchema, FormatRDF, FormatGraphQL, FormatSQL, FormatCSV, FormatHTML}

type ExportOptions struct {
	SQLDialect string
	RDFFormat  string
}

// NewExporter returns the exporter for format.
func NewExporter(format string, opts ExportOptions) (ports.ExporterPort, error) {
	switch strings.ToLower(format) {
	case FormatJSONSchema:
		return NewJSONSchemaExporter(), nil
	case FormatGraphQL:
		return NewGraphQLExporter(), nil
	case FormatSQL:
		dialect, err := ParseSQLDialect(opts.SQLDialect)
		if err != nil {
			return nil, err
		}
		return NewSQLExporter(dialect), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatRDF:
		rdfFormat, err := ParseRDFFormat(opts.RDFFormat)
		if err != nil {
			return nil, err
		}
		return NewRDFExporter(rdfFormat), nil
	case FormatHTML:
		return NewHTMLExporter(), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported export format: " + format)
	}
}

// FileExtension returns the extension used when `--format all` derives
// output names from a base path.
func FileExtension(format string, opts ExportOptions) string {
	switch format {
	case FormatJSONSchema:
		return ".schema.json"
	case FormatRDF:
		if opts.RDFFormat == RDFFormatNQuads {
			return ".nq"
		}
		return ".ttl"
	case FormatGraphQL:
		return ".graphql"
	case FormatSQL:
		return ".sql"
	case FormatCSV:
		return ".csv"
	case FormatHTML:
		return ".html"
	}
	return "." + format
}

// schemaTitle names the schema in exporter headers.
func schemaTitle(doc types.Document) string {
	if doc.Name != "" {
		return doc.Name
	}
	if stem := shared.FileStem(doc.Source); stem != "" {
		return stem
	}
	return "schema"
}
