package ports

import (
	"context"

	"lmtk/internal/types"
)

type LoadOptions struct {
	// ResolveImports pulls the entity sections of local `imports` into the
	// loaded document.  Imported definitions replace same-named local ones.
	ResolveImports bool
}

// SchemaLoaderPort reads one schema file into a Document.
type SchemaLoaderPort interface {
	Load(ctx context.Context, path string, opts LoadOptions) (types.Document, error)
}

// SchemaWriterPort writes a Document back out with the section order and
// empty-value spelling it carries.
type SchemaWriterPort interface {
	Save(ctx context.Context, doc types.Document, path string) error
}

// SchemaListPort expands a schema list argument into file paths.  The
// input type is one of auto, file or list.
type SchemaListPort interface {
	Resolve(spec string, inputType string) ([]string, error)
}
