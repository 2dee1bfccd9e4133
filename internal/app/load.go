package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/ports"
	"lmtk/internal/types"
)

// loadSchema reads one schema and, when asked, validates it.  ERROR
// diagnostics abort with FailedPrecondition; warnings are returned.
func (s Service) loadSchema(ctx context.Context, path string, opts SourceOptions) (types.Document, []types.Diagnostic, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return types.Document{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema path is required")
	}
	doc, err := s.Loader.Load(ctx, path, loadOptions(opts))
	if err != nil {
		return types.Document{}, nil, err
	}
	if !opts.Validate {
		return doc, nil, nil
	}
	diagnostics := s.Validator.Validate(doc)
	if first, ok := types.FirstError(diagnostics); ok {
		return types.Document{}, diagnostics, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("schema validation failed for " + path + ": " + first.Message)
	}
	return doc, diagnostics, nil
}

func requireOutput(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	return path, nil
}

func loadOptions(opts SourceOptions) ports.LoadOptions {
	return ports.LoadOptions{ResolveImports: opts.ResolveImports}
}
