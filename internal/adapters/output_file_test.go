package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFileAdapterWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter()

	path := filepath.Join(dir, "out", "schema.graphql")
	require.NoError(t, adapter.WriteArtifact(path, []byte("type A {}\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "type A {}\n", string(data))

	report := filepath.Join(dir, "reports", "summary.json")
	require.NoError(t, adapter.WriteJSON(report, map[string][]string{"classes": {"A", "B"}}))
	data, err = os.ReadFile(report)
	require.NoError(t, err)
	want := "{\n  \"classes\": [\n    \"A\",\n    \"B\"\n  ]\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapterRejectsEmptyPath(t *testing.T) {
	err := NewOutputFileAdapter().WriteArtifact("", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
