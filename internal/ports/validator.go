package ports

import "lmtk/internal/types"

// ValidatorPort checks the cross references of one document.  Findings are
// returned as diagnostics, never as an error.
type ValidatorPort interface {
	Validate(doc types.Document) []types.Diagnostic
}
