package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/adapters"
)

// Export renders the schema in one format, or in every format when the
// format is "all".  With "all" each file name is the output path with its
// extension replaced by the format's extension.
func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	output, err := requireOutput(req.OutputPath)
	if err != nil {
		return ExportResult{}, err
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if req.Verify && format != adapters.FormatSQL && format != FormatAll {
		return ExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("verification applies to sql exports only")
	}
	opts := adapters.ExportOptions{SQLDialect: req.SQLDialect, RDFFormat: req.RDFFormat}
	if format != FormatAll {
		if _, err := adapters.NewExporter(format, opts); err != nil {
			return ExportResult{}, err
		}
	}

	doc, _, err := s.loadSchema(ctx, req.SchemaPath, req.Source)
	if err != nil {
		return ExportResult{}, err
	}

	targets := map[string]string{format: output}
	formats := []string{format}
	if format == FormatAll {
		formats = adapters.ExportFormats
		base := strings.TrimSuffix(output, filepath.Ext(output))
		for _, name := range formats {
			targets[name] = base + adapters.FileExtension(name, opts)
		}
	}

	var result ExportResult
	for _, name := range formats {
		exporter, err := adapters.NewExporter(name, opts)
		if err != nil {
			return ExportResult{}, err
		}
		data, err := exporter.Export(doc)
		if err != nil {
			return ExportResult{}, err
		}
		file := ExportedFile{Format: name, Path: targets[name]}
		if req.Verify && name == adapters.FormatSQL {
			if err := s.verify(ctx, req, string(data)); err != nil {
				return ExportResult{}, err
			}
			file.Verified = true
		}
		if err := s.Output.WriteArtifact(file.Path, data); err != nil {
			return ExportResult{}, err
		}
		result.Files = append(result.Files, file)
	}
	return result, nil
}

func (s Service) verify(ctx context.Context, req ExportRequest, ddl string) error {
	dialect, err := adapters.ParseSQLDialect(req.SQLDialect)
	if err != nil {
		return err
	}
	verifier, err := s.Verifier(dialect, req.VerifyDSN)
	if err != nil {
		return err
	}
	return verifier.Verify(ctx, ddl)
}
