package core

import (
	"gopkg.in/yaml.v3"

	"lmtk/internal/types"
)

// CaptureStructure records the top-level key order of doc and the spelling
// of every empty value inside its entity, subsets and mapping-valued
// metadata sections.  It does not modify doc.
func CaptureStructure(doc types.Document) types.StructureTemplate {
	template := types.StructureTemplate{
		Order:        doc.Sections.Keys(),
		EmptyValues:  map[string]map[string]types.EmptyForm{},
		SectionForms: map[string]types.EmptyForm{},
	}
	record := func(section, key string, form types.EmptyForm) {
		if form == types.EmptyFormNone {
			return
		}
		if template.EmptyValues[section] == nil {
			template.EmptyValues[section] = map[string]types.EmptyForm{}
		}
		template.EmptyValues[section][key] = form
	}

	doc.Sections.Range(func(name string, section *types.Section) bool {
		switch section.Kind {
		case types.SectionKindEntity:
			if section.Empty != types.EmptyFormNone {
				template.SectionForms[name] = section.Empty
			}
			section.Elements.Range(func(key string, element *types.Element) bool {
				record(name, key, element.EmptyForm())
				return true
			})
		case types.SectionKindSubsets:
			if section.Empty != types.EmptyFormNone {
				template.SectionForms[name] = section.Empty
			}
			section.Subsets.Range(func(key string, marker *yaml.Node) bool {
				record(name, key, types.EmptyFormOf(marker))
				return true
			})
		case types.SectionKindMetadata:
			if form := types.EmptyFormOf(section.Value); form != types.EmptyFormNone {
				template.SectionForms[name] = form
				return true
			}
			node := section.Value
			if node.Kind != yaml.MappingNode {
				return true
			}
			for i := 0; i+1 < len(node.Content); i += 2 {
				record(name, node.Content[i].Value, types.EmptyFormOf(node.Content[i+1]))
			}
		}
		return true
	})
	return template
}

// reassemble orders sections by the template: keys the template knows come
// first in template order, everything else follows in the order given.
// Entity and subsets sections left without entries take the spelling the
// template recorded for them.
func reassemble(template types.StructureTemplate, sections *types.OrderedMap[*types.Section]) *types.OrderedMap[*types.Section] {
	out := types.NewOrderedMap[*types.Section]()
	for _, name := range template.Order {
		if section, ok := sections.Get(name); ok {
			out.Set(name, section)
		}
	}
	sections.Range(func(name string, section *types.Section) bool {
		if !out.Has(name) {
			out.Set(name, section)
		}
		return true
	})
	out.Range(func(name string, section *types.Section) bool {
		form, recorded := template.SectionForms[name]
		if !recorded {
			return true
		}
		switch section.Kind {
		case types.SectionKindEntity:
			if section.Elements.Len() == 0 {
				section.Empty = form
			}
		case types.SectionKindSubsets:
			if section.Subsets.Len() == 0 {
				section.Empty = form
			}
		}
		return true
	})
	return out
}

// applyElementForms respells empty elements with the form the template
// recorded for the same name, so the base document decides how an empty
// element looks in the output.
func applyElementForms(template types.StructureTemplate, name string, section *types.Section) {
	if section.Kind != types.SectionKindEntity {
		return
	}
	section.Elements.Range(func(key string, element *types.Element) bool {
		current := element.EmptyForm()
		if current == types.EmptyFormNone {
			return true
		}
		form, ok := template.EmptyForm(name, key)
		if !ok || form == current {
			return true
		}
		element.Attrs = types.NewEmptyNode(form)
		return true
	})
}
