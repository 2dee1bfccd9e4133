package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmtk/internal/ports"
	"lmtk/internal/types"
)

func writeSchema(t *testing.T, dir string, name string, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestSchemaFileRoundTrip(t *testing.T) {
	text := `id: https://example.org/shape
name: shape
subsets:
  core:
classes:
  Empty: {}
  Person:
    description: A person
    slots:
      - name
slots:
  name:
enums: {}
`
	dir := t.TempDir()
	path := writeSchema(t, dir, "shape.yaml", text)
	adapter := NewSchemaFileAdapter()

	doc, err := adapter.Load(t.Context(), path, ports.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "shape", doc.Name)
	assert.Equal(t, "https://example.org/shape", doc.ID)
	assert.Equal(t, path, doc.Source)

	out := filepath.Join(dir, "nested", "copy.yaml")
	require.NoError(t, adapter.Save(t.Context(), doc, out))
	again, err := adapter.Load(t.Context(), out, ports.LoadOptions{})
	require.NoError(t, err)

	if diff := cmp.Diff(doc.Sections.Keys(), again.Sections.Keys()); diff != "" {
		t.Fatalf("round trip changed the section order (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Empty", "Person"}, again.Classes().Keys())
	empty, _ := again.Classes().Get("Empty")
	assert.Equal(t, types.EmptyFormMapping, empty.EmptyForm())
	enums, _ := again.Section(types.SectionEnums)
	assert.Equal(t, types.EmptyFormMapping, enums.Empty)
	core, _ := again.Subsets().Get("core")
	assert.Equal(t, types.EmptyFormNull, types.EmptyFormOf(core))
}

func TestSchemaFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	adapter := NewSchemaFileAdapter()

	_, err := adapter.Load(t.Context(), filepath.Join(dir, "missing.yaml"), ports.LoadOptions{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to read schema file")

	bad := writeSchema(t, dir, "bad.yaml", "- just\n- a list\n")
	_, err = adapter.Load(t.Context(), bad, ports.LoadOptions{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to parse schema file")
}

func TestSchemaFileResolveImports(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "common.yaml", `name: common
classes:
  Person:
    description: imported person
slots:
  id:
    identifier: true
types:
  Code:
    typeof: string
`)
	path := writeSchema(t, dir, "main.yaml", `name: main
imports:
  - linkml:types
  - https://example.org/remote
  - common
classes:
  Person:
    description: local person
  Place:
`)
	adapter := NewSchemaFileAdapter()

	plain, err := adapter.Load(t.Context(), path, ports.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "imports", "classes"}, plain.Sections.Keys())

	doc, err := adapter.Load(t.Context(), path, ports.LoadOptions{ResolveImports: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "imports", "classes", "slots", "types"}, doc.Sections.Keys())
	assert.Equal(t, []string{"Person", "Place"}, doc.Classes().Keys())
	person, _ := doc.Classes().Get("Person")
	assert.Equal(t, "imported person", person.Class.Description)
	assert.True(t, doc.Slots().Has("id"))
	assert.True(t, doc.Types().Has("Code"))
}

func TestSchemaFileMissingImport(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "main.yaml", "name: main\nimports:\n  - absent\n")

	_, err := NewSchemaFileAdapter().Load(t.Context(), path, ports.LoadOptions{ResolveImports: true})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "import file not found")
}
