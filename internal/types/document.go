package types

import "gopkg.in/yaml.v3"

// Section is one top-level entry of a schema document.  Exactly one payload
// is populated, chosen by Kind.  Empty records the spelling of the section
// value when the source left it empty (`classes:` versus `classes: {}`).
type Section struct {
	Kind     SectionKind
	Value    *yaml.Node
	Elements *OrderedMap[*Element]
	Subsets  *OrderedMap[*yaml.Node]
	Empty    EmptyForm
}

func NewMetadataSection(value *yaml.Node) *Section {
	return &Section{Kind: SectionKindMetadata, Value: value}
}

func NewEntitySection(elements *OrderedMap[*Element], empty EmptyForm) *Section {
	if elements == nil {
		elements = NewOrderedMap[*Element]()
	}
	return &Section{Kind: SectionKindEntity, Elements: elements, Empty: empty}
}

func NewSubsetsSection(subsets *OrderedMap[*yaml.Node], empty EmptyForm) *Section {
	if subsets == nil {
		subsets = NewOrderedMap[*yaml.Node]()
	}
	return &Section{Kind: SectionKindSubsets, Subsets: subsets, Empty: empty}
}

// Clone deep-copies the section payload.
func (s *Section) Clone() *Section {
	out := &Section{Kind: s.Kind, Empty: s.Empty}
	switch s.Kind {
	case SectionKindMetadata:
		out.Value = CloneNode(s.Value)
	case SectionKindEntity:
		out.Elements = NewOrderedMap[*Element]()
		s.Elements.Range(func(name string, element *Element) bool {
			out.Elements.Set(name, element.Clone())
			return true
		})
	case SectionKindSubsets:
		out.Subsets = NewOrderedMap[*yaml.Node]()
		s.Subsets.Range(func(name string, marker *yaml.Node) bool {
			out.Subsets.Set(name, CloneNode(marker))
			return true
		})
	}
	return out
}

// Document is one parsed schema file.  Sections keeps the top-level keys
// in file order.  Name and ID are read from the metadata; ID falls back to
// a URI derived from Name when the file has none, without adding an id
// section.
type Document struct {
	Source   string
	Name     string
	ID       string
	Sections *OrderedMap[*Section]
}

func NewDocument(source string) Document {
	return Document{Source: source, Sections: NewOrderedMap[*Section]()}
}

// Section returns the named top-level section.
func (d Document) Section(name string) (*Section, bool) {
	return d.Sections.Get(name)
}

// Elements returns the elements of an entity section, or an empty map when
// the document lacks the section.
func (d Document) Elements(section string) *OrderedMap[*Element] {
	if s, ok := d.Sections.Get(section); ok && s.Kind == SectionKindEntity {
		return s.Elements
	}
	return NewOrderedMap[*Element]()
}

func (d Document) Classes() *OrderedMap[*Element] { return d.Elements(SectionClasses) }
func (d Document) Slots() *OrderedMap[*Element]   { return d.Elements(SectionSlots) }
func (d Document) Types() *OrderedMap[*Element]   { return d.Elements(SectionTypes) }
func (d Document) Enums() *OrderedMap[*Element]   { return d.Elements(SectionEnums) }

// Subsets returns the subset markers, or an empty map.
func (d Document) Subsets() *OrderedMap[*yaml.Node] {
	if s, ok := d.Sections.Get(SectionSubsets); ok && s.Kind == SectionKindSubsets {
		return s.Subsets
	}
	return NewOrderedMap[*yaml.Node]()
}

// Metadata returns the value node of a metadata section.
func (d Document) Metadata(key string) (*yaml.Node, bool) {
	if s, ok := d.Sections.Get(key); ok && s.Kind == SectionKindMetadata {
		return s.Value, true
	}
	return nil, false
}

// MetadataString returns a scalar metadata value.
func (d Document) MetadataString(key string) string {
	node, ok := d.Metadata(key)
	if !ok {
		return ""
	}
	value, _ := ScalarValue(node)
	return value
}

func (d Document) Description() string {
	return d.MetadataString(KeyDescription)
}

// Clone deep-copies every section so the copy can be edited freely.
func (d Document) Clone() Document {
	out := Document{Source: d.Source, Name: d.Name, ID: d.ID, Sections: NewOrderedMap[*Section]()}
	d.Sections.Range(func(name string, section *Section) bool {
		out.Sections.Set(name, section.Clone())
		return true
	})
	return out
}

// DefaultID synthesizes a schema id from its name.
func DefaultID(name string) string {
	if name == "" {
		return ""
	}
	return "https://w3id.org/" + name
}
