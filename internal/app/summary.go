package app

import (
	"context"

	"lmtk/internal/core"
)

func (s Service) Summary(ctx context.Context, req SummaryRequest) (SummaryResult, error) {
	doc, diagnostics, err := s.loadSchema(ctx, req.SchemaPath, req.Source)
	if err != nil {
		return SummaryResult{}, err
	}
	summary, err := core.Summarize(doc, req.Sections, req.Detailed)
	if err != nil {
		return SummaryResult{}, err
	}
	result := SummaryResult{Summary: summary, Diagnostics: diagnostics}
	if req.OutputPath != "" {
		if err := s.Output.WriteJSON(req.OutputPath, summary); err != nil {
			return SummaryResult{}, err
		}
		result.OutputPath = req.OutputPath
	}
	return result, nil
}
