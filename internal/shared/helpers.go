// Package shared provides common utility functions used across multiple
// packages in the lmtk codebase.
package shared

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileStem returns the base name of a path without its final extension,
// so "schemas/people.yaml" becomes "people".
func FileStem(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SortedCopy returns a sorted copy of values.
func SortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty items.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
