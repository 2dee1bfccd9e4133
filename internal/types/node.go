package types

import "gopkg.in/yaml.v3"

const (
	tagNull = "!!null"
	tagStr  = "!!str"
	tagMap  = "!!map"
	tagSeq  = "!!seq"
)

// EmptyForm records how an empty value was spelled in a source document.
// Downstream consumers distinguish `key:` from `key: {}` and `key: ""`, so
// a rewritten document has to reuse the original spelling.
type EmptyForm string

const (
	EmptyFormNone     EmptyForm = ""
	EmptyFormNull     EmptyForm = "null"
	EmptyFormMapping  EmptyForm = "mapping"
	EmptyFormString   EmptyForm = "string"
	EmptyFormSequence EmptyForm = "sequence"
)

// EmptyFormOf reports the empty spelling of node, or EmptyFormNone when the
// node carries content.
func EmptyFormOf(node *yaml.Node) EmptyForm {
	node = resolveAlias(node)
	if node == nil {
		return EmptyFormNull
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == tagNull {
			return EmptyFormNull
		}
		if node.Value == "" {
			return EmptyFormString
		}
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			return EmptyFormMapping
		}
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return EmptyFormSequence
		}
	}
	return EmptyFormNone
}

// IsNullNode reports whether node is absent or an explicit null scalar.
func IsNullNode(node *yaml.Node) bool {
	return EmptyFormOf(node) == EmptyFormNull
}

// NewEmptyNode builds a fresh node spelling the given empty form.
// EmptyFormNone yields a null scalar.
func NewEmptyNode(form EmptyForm) *yaml.Node {
	switch form {
	case EmptyFormMapping:
		return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap, Style: yaml.FlowStyle}
	case EmptyFormSequence:
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq, Style: yaml.FlowStyle}
	case EmptyFormString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: "", Style: yaml.DoubleQuotedStyle}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: ""}
	}
}

func NewStringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: value}
}

func NewMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
}

// CloneNode deep-copies node so that later edits never reach the source
// document.  Aliases are copied as aliases pointing at the original anchor.
func CloneNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	out := *node
	if len(node.Content) > 0 {
		out.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			out.Content[i] = CloneNode(child)
		}
	}
	return &out
}

// MappingGet returns the value stored under key in a mapping node.
func MappingGet(node *yaml.Node, key string) (*yaml.Node, bool) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1], true
		}
	}
	return nil, false
}

// MappingSet replaces the value under key or appends a new pair.
func MappingSet(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content, NewStringNode(key), value)
}

// MappingKeys lists the keys of a mapping node in document order.
func MappingKeys(node *yaml.Node) []string {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// ScalarValue returns the string of a non-null scalar node.
func ScalarValue(node *yaml.Node) (string, bool) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() == tagNull {
		return "", false
	}
	return node.Value, true
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
