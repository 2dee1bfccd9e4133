package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList decodes either a single scalar or a sequence of scalars, the
// two spellings schema authors use for in_subset, mixins and slots.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if IsNullNode(node) {
			*l = nil
			return nil
		}
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*l = values
		return nil
	default:
		return fmt.Errorf("line %d: expected scalar or sequence, got %s", node.Line, kindName(node.Kind))
	}
}

type ClassDef struct {
	Description string     `yaml:"description"`
	IsA         string     `yaml:"is_a"`
	Mixins      StringList `yaml:"mixins"`
	Slots       StringList `yaml:"slots"`
	Abstract    bool       `yaml:"abstract"`
	Mixin       bool       `yaml:"mixin"`
	InSubset    StringList `yaml:"in_subset"`

	// SlotUsage holds per-slot overrides; each value is decoded as a slot.
	SlotUsage *OrderedMap[SlotDef] `yaml:"slot_usage"`

	// Attributes are slots declared inline on the class.
	Attributes *OrderedMap[SlotDef] `yaml:"attributes"`
}

type SlotDef struct {
	Description  string     `yaml:"description"`
	Range        string     `yaml:"range"`
	Required     bool       `yaml:"required"`
	Multivalued  bool       `yaml:"multivalued"`
	Identifier   bool       `yaml:"identifier"`
	Pattern      string     `yaml:"pattern"`
	Domain       string     `yaml:"domain"`
	MinimumValue *float64   `yaml:"minimum_value"`
	MaximumValue *float64   `yaml:"maximum_value"`
	InSubset     StringList `yaml:"in_subset"`
}

type PermissibleValue struct {
	Description string `yaml:"description"`
	Meaning     string `yaml:"meaning"`
}

type EnumDef struct {
	Description       string                        `yaml:"description"`
	PermissibleValues *OrderedMap[PermissibleValue] `yaml:"permissible_values"`
	InSubset          StringList                    `yaml:"in_subset"`
}

type TypeDef struct {
	Description string     `yaml:"description"`
	Typeof      string     `yaml:"typeof"`
	Base        string     `yaml:"base"`
	URI         string     `yaml:"uri"`
	Repr        string     `yaml:"repr"`
	FromSchema  string     `yaml:"from_schema"`
	InSubset    StringList `yaml:"in_subset"`
}

var knownAttributes = map[EntityKind]map[string]struct{}{
	EntityClass: knownSet("description", "is_a", "mixins", "slots", "abstract", "mixin", "in_subset", "slot_usage", "attributes"),
	EntitySlot: knownSet("description", "range", "required", "multivalued", "identifier", "pattern", "domain",
		"minimum_value", "maximum_value", "in_subset"),
	EntityEnum: knownSet("description", "permissible_values", "in_subset"),
	EntityType: knownSet("description", "typeof", "base", "uri", "repr", "from_schema", "in_subset"),
}

// Element is one named entry of an entity section.  Attrs is the attribute
// node exactly as it appeared in the source and is what gets written back;
// the typed view matching Kind is decoded from it, and Extra keeps the
// attributes the typed view does not model.
type Element struct {
	Kind  EntityKind
	Attrs *yaml.Node

	Class *ClassDef
	Slot  *SlotDef
	Type  *TypeDef
	Enum  *EnumDef

	Extra *OrderedMap[*yaml.Node]
}

// NewElement decodes attrs into the typed view for kind.  A nil attrs is
// treated as a null value.  Non-mapping values are kept verbatim with a
// zero typed view.
func NewElement(kind EntityKind, attrs *yaml.Node) (*Element, error) {
	if attrs == nil {
		attrs = NewEmptyNode(EmptyFormNull)
	}
	element := &Element{Kind: kind, Attrs: attrs, Extra: NewOrderedMap[*yaml.Node]()}
	node := resolveAlias(attrs)
	mapping := node.Kind == yaml.MappingNode
	var err error
	switch kind {
	case EntityClass:
		element.Class = &ClassDef{}
		if mapping {
			err = attrs.Decode(element.Class)
		}
	case EntitySlot:
		element.Slot = &SlotDef{}
		if mapping {
			err = attrs.Decode(element.Slot)
		}
	case EntityType:
		element.Type = &TypeDef{}
		if mapping {
			err = attrs.Decode(element.Type)
		}
	case EntityEnum:
		element.Enum = &EnumDef{}
		if mapping {
			err = attrs.Decode(element.Enum)
		}
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	known := knownAttributes[kind]
	for i := 0; mapping && i+1 < len(node.Content); i += 2 {
		if _, ok := known[node.Content[i].Value]; ok {
			continue
		}
		element.Extra.Set(node.Content[i].Value, node.Content[i+1])
	}
	return element, nil
}

// IsMapping reports whether the element's attributes form a mapping.
func (e *Element) IsMapping() bool {
	return resolveAlias(e.Attrs).Kind == yaml.MappingNode
}

// EmptyForm reports the empty spelling of the element's value.
func (e *Element) EmptyForm() EmptyForm {
	return EmptyFormOf(e.Attrs)
}

// InSubset returns the subset names the element is tagged with.
func (e *Element) InSubset() []string {
	switch e.Kind {
	case EntityClass:
		return e.Class.InSubset
	case EntitySlot:
		return e.Slot.InSubset
	case EntityType:
		return e.Type.InSubset
	case EntityEnum:
		return e.Enum.InSubset
	}
	return nil
}

// Description returns the element's description attribute.
func (e *Element) Description() string {
	switch e.Kind {
	case EntityClass:
		return e.Class.Description
	case EntitySlot:
		return e.Slot.Description
	case EntityType:
		return e.Type.Description
	case EntityEnum:
		return e.Enum.Description
	}
	return ""
}

// Clone deep-copies the attribute node and re-decodes the typed view.
func (e *Element) Clone() *Element {
	clone, err := NewElement(e.Kind, CloneNode(e.Attrs))
	if err != nil {
		// The node decoded once already, a copy cannot fail.
		panic(err)
	}
	return clone
}

func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}
