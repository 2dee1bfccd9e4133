package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmtk/internal/ports"
)

func combineInputs(t *testing.T, names ...string) string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, fixture(t, name))
	}
	return strings.Join(paths, ",")
}

func TestMergeApp(t *testing.T) {
	service := NewService()
	output := filepath.Join(t.TempDir(), "merged.yaml")

	result, err := service.Merge(t.Context(), CombineRequest{
		Schemas:    combineInputs(t, "people.yaml", "organizations.yaml"),
		OutputPath: output,
		Source:     SourceOptions{Validate: true},
	})
	require.NoError(t, err)
	assert.Len(t, result.Inputs, 2)
	assert.Equal(t, output, result.OutputPath)
	require.Len(t, result.Diagnostics, 2)
	assert.Empty(t, result.Diagnostics[0].Diagnostics)

	doc, err := service.Loader.Load(t.Context(), output, ports.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "people", doc.Name)
	if diff := cmp.Diff([]string{"NamedThing", "Person", "Address", "Organization"}, doc.Classes().Keys()); diff != "" {
		t.Fatalf("unexpected classes (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"core", "registry"}, doc.Subsets().Keys())

	person, ok := doc.Classes().Get("Person")
	require.True(t, ok)
	assert.Equal(t, "An employee", person.Class.Description)
	assert.Equal(t, "NamedThing", person.Class.IsA)
	assert.Equal(t, []string{"employer"}, person.Class.Slots)
	assert.True(t, doc.Slots().Has("employees"))
}

func TestConcatApp(t *testing.T) {
	service := NewService()
	output := filepath.Join(t.TempDir(), "concat.yaml")

	result, err := service.Concat(t.Context(), CombineRequest{
		Schemas:    combineInputs(t, "people.yaml", "organizations.yaml"),
		InputType:  "list",
		OutputPath: output,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"NamedThing", "Person", "Address", "Person_organizations", "Organization"}, result.Document.Classes().Keys())
	assert.Equal(t, []string{
		"id", "name", "age", "address", "street", "city", "status",
		"id_organizations", "name_organizations", "employer", "employees",
	}, result.Document.Slots().Keys())

	person, _ := result.Document.Classes().Get("Person")
	assert.Equal(t, "A human being", person.Class.Description)
}

func TestMergeAppStrictValidation(t *testing.T) {
	_, err := NewService().Merge(t.Context(), CombineRequest{
		Schemas:    combineInputs(t, "people.yaml", "invalid.yaml"),
		OutputPath: filepath.Join(t.TempDir(), "merged.yaml"),
		Strict:     true,
		Source:     SourceOptions{Validate: true},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid.yaml")
}

func TestMergeAppReportsWithoutStrict(t *testing.T) {
	result, err := NewService().Merge(t.Context(), CombineRequest{
		Schemas:    combineInputs(t, "people.yaml", "invalid.yaml"),
		OutputPath: filepath.Join(t.TempDir(), "merged.yaml"),
		Source:     SourceOptions{Validate: true},
	})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 2)
	assert.Len(t, result.Diagnostics[1].Diagnostics, 3)
}

func TestCombineAppRequiresInputs(t *testing.T) {
	service := NewService()

	_, err := service.Merge(t.Context(), CombineRequest{Schemas: fixture(t, "people.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "output path is required")

	_, err = service.Merge(t.Context(), CombineRequest{
		Schemas:    fixture(t, "people.yaml"),
		OutputPath: filepath.Join(t.TempDir(), "merged.yaml"),
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
