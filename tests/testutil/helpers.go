// Package testutil provides shared test helpers for the integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// Fixture returns the absolute path of a file under fixtures/.
func Fixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", name)
}

// CompareGolden compares actual with the golden file of the given name
// under dir.  A missing golden file fails the test.
//
// To update golden files after an intentional change, re-run the tests
// with UPDATE_GOLDEN=1 and review the diff.
func CompareGolden(t *testing.T, dir string, name string, actual []byte) {
	t.Helper()
	goldenPath := filepath.Join(dir, name)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
		t.Logf("golden file written: %s", goldenPath)
		return
	}
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "missing golden file %s -- run with UPDATE_GOLDEN=1 to create it", name)
	require.Equal(t, string(expected), string(actual),
		"golden mismatch for %s -- run with UPDATE_GOLDEN=1 to regenerate", name)
}
