package app

import (
	"context"

	"lmtk/internal/core"
)

// Merge combines the listed schemas into the first one, unioning same-named
// elements, and writes the result.
func (s Service) Merge(ctx context.Context, req CombineRequest) (CombineResult, error) {
	return s.combine(ctx, req, s.Combiner.Merge)
}

// Concat combines the listed schemas keeping every element, renaming the
// ones that collide, and writes the result.
func (s Service) Concat(ctx context.Context, req CombineRequest) (CombineResult, error) {
	return s.combine(ctx, req, s.Combiner.Concat)
}

type combineFunc func(context.Context, []core.CombineInput, core.CombineOptions) (core.CombineResult, error)

func (s Service) combine(ctx context.Context, req CombineRequest, run combineFunc) (CombineResult, error) {
	output, err := requireOutput(req.OutputPath)
	if err != nil {
		return CombineResult{}, err
	}
	paths, err := s.Lists.Resolve(req.Schemas, req.InputType)
	if err != nil {
		return CombineResult{}, err
	}

	inputs := make([]core.CombineInput, 0, len(paths))
	for _, path := range paths {
		doc, err := s.Loader.Load(ctx, path, loadOptions(req.Source))
		if err != nil {
			return CombineResult{}, err
		}
		input := core.CombineInput{Document: doc}
		if req.Source.Validate {
			input.Diagnostics = s.Validator.Validate(doc)
		}
		inputs = append(inputs, input)
	}

	combined, err := run(ctx, inputs, core.CombineOptions{Strict: req.Strict})
	if err != nil {
		return CombineResult{}, err
	}
	if err := s.Writer.Save(ctx, combined.Document, output); err != nil {
		return CombineResult{}, err
	}
	return CombineResult{
		Inputs:      paths,
		OutputPath:  output,
		Document:    combined.Document,
		Diagnostics: combined.Diagnostics,
	}, nil
}
