package ports

import (
	"context"

	"lmtk/internal/types"
)

// ExporterPort renders a Document into another schema language.
type ExporterPort interface {
	Format() string
	Export(doc types.Document) ([]byte, error)
}

// DDLVerifierPort executes generated DDL against a scratch database.
type DDLVerifierPort interface {
	Verify(ctx context.Context, ddl string) error
}
