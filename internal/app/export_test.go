package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmtk/internal/adapters"
	"lmtk/internal/ports"
)

type recordingVerifier struct {
	ddl []string
	err error
}

func (v *recordingVerifier) Verify(_ context.Context, ddl string) error {
	v.ddl = append(v.ddl, ddl)
	return v.err
}

func TestExportAppSQLWithVerification(t *testing.T) {
	output := filepath.Join(t.TempDir(), "people.sql")
	result, err := NewService().Export(t.Context(), ExportRequest{
		SchemaPath: fixture(t, "people.yaml"),
		Format:     "SQL",
		OutputPath: output,
		SQLDialect: "sqlite",
		Verify:     true,
		Source:     SourceOptions{Validate: true},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, ExportedFile{Format: adapters.FormatSQL, Path: output, Verified: true}, result.Files[0])

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- SQL Dialect: sqlite")
	assert.Contains(t, string(data), "CREATE TABLE Person (")
}

func TestExportAppUsesInjectedVerifier(t *testing.T) {
	verifier := &recordingVerifier{}
	var gotDialect adapters.SQLDialect
	var gotDSN string
	service := NewService()
	service.Verifier = func(dialect adapters.SQLDialect, dsn string) (ports.DDLVerifierPort, error) {
		gotDialect, gotDSN = dialect, dsn
		return verifier, nil
	}

	_, err := service.Export(t.Context(), ExportRequest{
		SchemaPath: fixture(t, "people.yaml"),
		Format:     adapters.FormatSQL,
		OutputPath: filepath.Join(t.TempDir(), "people.sql"),
		Verify:     true,
		VerifyDSN:  "postgres://localhost/scratch",
	})
	require.NoError(t, err)
	assert.Equal(t, adapters.SQLDialectPostgreSQL, gotDialect)
	assert.Equal(t, "postgres://localhost/scratch", gotDSN)
	require.Len(t, verifier.ddl, 1)
	assert.Contains(t, verifier.ddl[0], "CREATE TYPE PersonStatus_enum AS ENUM ('ALIVE', 'DEAD');")
}

func TestExportAppVerificationFailureWritesNothing(t *testing.T) {
	service := NewService()
	service.Verifier = func(adapters.SQLDialect, string) (ports.DDLVerifierPort, error) {
		return &recordingVerifier{err: errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("DDL statement 1 failed").
			WithCause(errors.New("boom"))}, nil
	}
	output := filepath.Join(t.TempDir(), "people.sql")

	_, err := service.Export(t.Context(), ExportRequest{
		SchemaPath: fixture(t, "people.yaml"),
		Format:     adapters.FormatSQL,
		OutputPath: output,
		Verify:     true,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.NoFileExists(t, output)
}

func TestExportAppAllFormats(t *testing.T) {
	dir := t.TempDir()
	result, err := NewService().Export(t.Context(), ExportRequest{
		SchemaPath: fixture(t, "people.yaml"),
		Format:     FormatAll,
		OutputPath: filepath.Join(dir, "people.out"),
		RDFFormat:  adapters.RDFFormatNQuads,
	})
	require.NoError(t, err)

	var paths []string
	for _, file := range result.Files {
		paths = append(paths, filepath.Base(file.Path))
		assert.FileExists(t, file.Path)
		assert.False(t, file.Verified)
	}
	assert.Equal(t, []string{
		"people.schema.json",
		"people.nq",
		"people.graphql",
		"people.sql",
		"people.csv",
		"people.html",
	}, paths)
}

func TestExportAppRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  ExportRequest
		want string
	}{
		{
			name: "unknown format",
			req:  ExportRequest{Format: "xsd", OutputPath: "out.xsd"},
			want: "unsupported export format: xsd",
		},
		{
			name: "verify non sql",
			req:  ExportRequest{Format: adapters.FormatGraphQL, OutputPath: "out.graphql", Verify: true},
			want: "verification applies to sql exports only",
		},
		{
			name: "bad dialect",
			req:  ExportRequest{Format: adapters.FormatSQL, OutputPath: "out.sql", SQLDialect: "oracle"},
			want: "unsupported SQL dialect: oracle",
		},
		{
			name: "missing output",
			req:  ExportRequest{Format: adapters.FormatSQL},
			want: "output path is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.SchemaPath = fixture(t, "people.yaml")
			_, err := NewService().Export(t.Context(), tt.req)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
