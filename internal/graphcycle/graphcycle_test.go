package graphcycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findIn(graph map[string][]string, roots ...string) ([]string, error) {
	return Find(roots,
		func(n string) bool {
			_, ok := graph[n]
			return ok
		},
		func(n string) ([]string, error) {
			return graph[n], nil
		})
}

func TestFind(t *testing.T) {
	tests := []struct {
		name  string
		graph map[string][]string
		roots []string
		want  []string
	}{
		{
			name:  "three step loop",
			graph: map[string][]string{"Person": {"Agent"}, "Agent": {"Thing"}, "Thing": {"Person"}},
			roots: []string{"Person"},
			want:  []string{"Person", "Agent", "Thing", "Person"},
		},
		{
			name:  "self loop",
			graph: map[string][]string{"X": {"X"}},
			roots: []string{"X"},
			want:  []string{"X", "X"},
		},
		{
			name:  "loop below the root",
			graph: map[string][]string{"Root": {"A"}, "A": {"B"}, "B": {"A"}},
			roots: []string{"Root"},
			want:  []string{"A", "B", "A"},
		},
		{
			name:  "diamond",
			graph: map[string][]string{"D": {"B", "C"}, "B": {"A"}, "C": {"A"}, "A": nil},
			roots: []string{"D", "B"},
		},
		{
			name:  "unknown successor is a leaf",
			graph: map[string][]string{"Person": {"Ghost"}},
			roots: []string{"Person", "Ghost"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycle, err := findIn(tt.graph, tt.roots...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cycle)
		})
	}
}

func TestFindNilKnownVisitsEverything(t *testing.T) {
	cycle, err := Find([]int{1}, nil, func(n int) ([]int, error) {
		return []int{(n % 3) + 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1}, cycle)
}

func TestFindStopsOnSuccessorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Find([]string{"a"}, nil, func(string) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
