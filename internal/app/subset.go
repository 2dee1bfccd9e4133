package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/shared"
)

// Subset writes the dependency closure of the requested classes.
func (s Service) Subset(ctx context.Context, req SubsetRequest) (SubsetResult, error) {
	output, err := requireOutput(req.OutputPath)
	if err != nil {
		return SubsetResult{}, err
	}
	var classes []string
	for _, value := range req.Classes {
		classes = append(classes, shared.SplitList(value)...)
	}
	if len(classes) == 0 {
		return SubsetResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one class name is required")
	}
	doc, _, err := s.loadSchema(ctx, req.SchemaPath, req.Source)
	if err != nil {
		return SubsetResult{}, err
	}
	subset, err := s.Subsetter.Subset(ctx, doc, classes, req.IncludeInherited)
	if err != nil {
		return SubsetResult{}, err
	}
	if err := s.Writer.Save(ctx, subset.Document, output); err != nil {
		return SubsetResult{}, err
	}
	return SubsetResult{
		OutputPath: output,
		Requested:  subset.Requested,
		Skipped:    subset.Skipped,
		Classes:    subset.Classes,
		Slots:      subset.Slots,
		Types:      subset.Types,
		Enums:      subset.Enums,
		SubsetTags: subset.SubsetTags,
	}, nil
}
