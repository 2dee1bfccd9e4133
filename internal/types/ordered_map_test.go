package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMapSetExistingKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	value, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", value)
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestOrderedMapNilIsEmpty(t *testing.T) {
	var m *OrderedMap[int]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
}

func TestOrderedMapRangeStopsEarly(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	var seen []string
	m.Range(func(key string, _ int) bool {
		seen = append(seen, key)
		return false
	})
	assert.Equal(t, []string{"a"}, seen)
}

func TestOrderedMapUnmarshalYAML(t *testing.T) {
	var values struct {
		Values *OrderedMap[PermissibleValue] `yaml:"values"`
	}
	data := []byte("values:\n  RED:\n    description: red\n  GREEN:\n  BLUE:\n    meaning: x:blue\n")
	require.NoError(t, yaml.Unmarshal(data, &values))
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, values.Values.Keys())
	blue, _ := values.Values.Get("BLUE")
	assert.Equal(t, "x:blue", blue.Meaning)
}
