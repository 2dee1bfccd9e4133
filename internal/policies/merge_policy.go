package policies

import (
	"gopkg.in/yaml.v3"

	"lmtk/internal/types"
)

// MergeAttributes shallow-merges two element attribute mappings: keys from
// incoming replace same-named keys of base, new keys are appended.  It
// returns false and leaves base untouched when either side is not a
// mapping, because merging into a scalar would corrupt it.
func MergeAttributes(base, incoming *yaml.Node) (*yaml.Node, bool) {
	if !isMapping(base) || !isMapping(incoming) {
		return base, false
	}
	return overlayMapping(base, incoming), true
}

// MergeMetadata combines a later document's metadata value into the base
// value.  Sequences become a de-duplicated union (base items first),
// mappings are shallow-merged with later keys winning, and anything else
// keeps the base value.
func MergeMetadata(base, incoming *yaml.Node) *yaml.Node {
	switch {
	case isSequence(base) && isSequence(incoming):
		return unionSequence(base, incoming)
	case isMapping(base) && isMapping(incoming):
		return overlayMapping(base, incoming)
	default:
		return base
	}
}

func overlayMapping(base, incoming *yaml.Node) *yaml.Node {
	merged := types.CloneNode(deref(base))
	if len(merged.Content) == 0 {
		merged.Style &^= yaml.FlowStyle
	}
	source := deref(incoming)
	for i := 0; i+1 < len(source.Content); i += 2 {
		types.MappingSet(merged, source.Content[i].Value, types.CloneNode(source.Content[i+1]))
	}
	return merged
}

func unionSequence(base, incoming *yaml.Node) *yaml.Node {
	merged := types.CloneNode(deref(base))
	seen := map[string]struct{}{}
	for _, item := range merged.Content {
		seen[itemKey(item)] = struct{}{}
	}
	for _, item := range deref(incoming).Content {
		key := itemKey(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged.Content = append(merged.Content, types.CloneNode(item))
	}
	return merged
}

// itemKey identifies a sequence item for de-duplication.  Scalars compare
// by value; structured items compare by their encoded form.
func itemKey(node *yaml.Node) string {
	node = deref(node)
	if node.Kind == yaml.ScalarNode {
		return "s:" + node.Value
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return "n:" + node.Value
	}
	return "n:" + string(data)
}

func isMapping(node *yaml.Node) bool {
	node = deref(node)
	return node != nil && node.Kind == yaml.MappingNode
}

func isSequence(node *yaml.Node) bool {
	node = deref(node)
	return node != nil && node.Kind == yaml.SequenceNode
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
