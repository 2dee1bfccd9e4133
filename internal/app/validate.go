package app

import (
	"context"
)

// Validate loads one schema and returns every diagnostic the rules
// produce.  Findings are not an error; callers check Valid.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	doc, _, err := s.loadSchema(ctx, req.SchemaPath, SourceOptions{ResolveImports: req.ResolveImports})
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Schema:      doc.Name,
		Diagnostics: s.Validator.Validate(doc),
	}, nil
}
