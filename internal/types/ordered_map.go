package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value in place; the key keeps its
// original position.  The zero value is not usable, use NewOrderedMap.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores value under key, appending the key when it is new.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	value, ok := m.values[key]
	return value, ok
}

func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *OrderedMap[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, existing := range m.keys {
		if existing == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (m *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}

// Clone returns a shallow copy: the key order is copied, values are not.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := NewOrderedMap[V]()
	m.Range(func(key string, value V) bool {
		out.Set(key, value)
		return true
	})
	return out
}

// UnmarshalYAML decodes a mapping node keeping document order.  A null
// node decodes to an empty map.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	node = resolveAlias(node)
	if IsNullNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping, got %s", node.Line, kindName(node.Kind))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		m.Set(node.Content[i].Value, value)
	}
	return nil
}
