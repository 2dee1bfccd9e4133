package types

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeDocument parses schema YAML into a Document, keeping key order and
// the spelling of empty values.
func DecodeDocument(source string, data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return Document{}, fmt.Errorf("schema must be a YAML mapping")
	}
	return DocumentFromNode(source, root.Content[0])
}

// DocumentFromNode builds a Document from a top-level mapping node.  The
// node tree is owned by the returned document afterwards.
func DocumentFromNode(source string, node *yaml.Node) (Document, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("schema must be a YAML mapping")
	}
	doc := NewDocument(source)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		section, err := decodeSection(key, value)
		if err != nil {
			return Document{}, err
		}
		doc.Sections.Set(key, section)
	}
	doc.Name = doc.MetadataString(KeyName)
	doc.ID = doc.MetadataString(KeyID)
	if doc.ID == "" {
		doc.ID = DefaultID(doc.Name)
	}
	return doc, nil
}

func decodeSection(key string, value *yaml.Node) (*Section, error) {
	switch SectionKindOf(key) {
	case SectionKindEntity:
		kind, _ := EntityKindOf(key)
		empty := EmptyFormOf(value)
		if empty != EmptyFormNone {
			return NewEntitySection(nil, empty), nil
		}
		mapping := resolveAlias(value)
		if mapping.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: section %s must be a mapping", value.Line, key)
		}
		elements := NewOrderedMap[*Element]()
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			name := mapping.Content[i].Value
			element, err := NewElement(kind, mapping.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", key, name, err)
			}
			elements.Set(name, element)
		}
		return NewEntitySection(elements, EmptyFormNone), nil
	case SectionKindSubsets:
		empty := EmptyFormOf(value)
		if empty != EmptyFormNone {
			return NewSubsetsSection(nil, empty), nil
		}
		mapping := resolveAlias(value)
		if mapping.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: section %s must be a mapping", value.Line, key)
		}
		subsets := NewOrderedMap[*yaml.Node]()
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			subsets.Set(mapping.Content[i].Value, mapping.Content[i+1])
		}
		return NewSubsetsSection(subsets, EmptyFormNone), nil
	default:
		return NewMetadataSection(value), nil
	}
}

// DocumentNode renders a Document back into a top-level mapping node.
// Empty sections reuse their recorded spelling, defaulting to `{}`.
func DocumentNode(doc Document) *yaml.Node {
	out := NewMappingNode()
	doc.Sections.Range(func(key string, section *Section) bool {
		out.Content = append(out.Content, NewStringNode(key), sectionNode(section))
		return true
	})
	return out
}

func sectionNode(section *Section) *yaml.Node {
	switch section.Kind {
	case SectionKindEntity:
		if section.Elements.Len() == 0 {
			return NewEmptyNode(emptyOrMapping(section.Empty))
		}
		node := NewMappingNode()
		section.Elements.Range(func(name string, element *Element) bool {
			node.Content = append(node.Content, NewStringNode(name), element.Attrs)
			return true
		})
		return node
	case SectionKindSubsets:
		if section.Subsets.Len() == 0 {
			return NewEmptyNode(emptyOrMapping(section.Empty))
		}
		node := NewMappingNode()
		section.Subsets.Range(func(name string, marker *yaml.Node) bool {
			node.Content = append(node.Content, NewStringNode(name), marker)
			return true
		})
		return node
	default:
		if section.Value == nil {
			return NewEmptyNode(EmptyFormNull)
		}
		return section.Value
	}
}

func emptyOrMapping(form EmptyForm) EmptyForm {
	if form == EmptyFormNone {
		return EmptyFormMapping
	}
	return form
}

// EncodeDocument serializes a Document as YAML with two-space indentation.
func EncodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(DocumentNode(doc)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
