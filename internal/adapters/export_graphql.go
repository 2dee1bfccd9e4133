package adapters

import (
	"fmt"
	"strings"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

var graphQLScalars = map[string]string{
	"string":  "String",
	"integer": "Int",
	"float":   "Float",
	"double":  "Float",
	"decimal": "Float",
	"boolean": "Boolean",
}

// GraphQLExporter renders the schema as GraphQL SDL.  Abstract classes
// become interfaces and concrete classes implement their abstract
// ancestors.
type GraphQLExporter struct{}

func NewGraphQLExporter() GraphQLExporter {
	return GraphQLExporter{}
}

func (e GraphQLExporter) Format() string { return FormatGraphQL }

func (e GraphQLExporter) Export(doc types.Document) ([]byte, error) {
	resolver := core.NewReferenceResolver(doc)
	var b strings.Builder
	fmt.Fprintf(&b, "# GraphQL schema for %s\n", schemaTitle(doc))

	doc.Enums().Range(func(name string, element *types.Element) bool {
		b.WriteString("\n")
		writeGraphQLDescription(&b, "", element.Enum.Description)
		fmt.Fprintf(&b, "enum %s {\n", graphQLName(name))
		for _, value := range element.Enum.PermissibleValues.Keys() {
			fmt.Fprintf(&b, "  %s\n", graphQLName(value))
		}
		b.WriteString("}\n")
		return true
	})

	var err error
	doc.Classes().Range(func(name string, element *types.Element) bool {
		var slots []core.InducedSlot
		if slots, err = resolver.InducedSlots(name); err != nil {
			return false
		}
		var ancestors []string
		if ancestors, err = resolver.ParentChain(name); err != nil {
			return false
		}
		var interfaces []string
		for _, ancestor := range ancestors {
			if class, _ := resolver.Class(ancestor); class != nil && class.Abstract {
				interfaces = append(interfaces, graphQLName(ancestor))
			}
		}

		b.WriteString("\n")
		writeGraphQLDescription(&b, "", element.Class.Description)
		keyword := "type"
		if element.Class.Abstract {
			keyword = "interface"
		}
		fmt.Fprintf(&b, "%s %s", keyword, graphQLName(name))
		if len(interfaces) > 0 {
			fmt.Fprintf(&b, " implements %s", strings.Join(interfaces, " & "))
		}
		b.WriteString(" {\n")
		if len(slots) == 0 {
			// SDL rejects empty field sets.
			b.WriteString("  _empty: Boolean\n")
		}
		for _, slot := range slots {
			writeGraphQLDescription(&b, "  ", slot.Description)
			fmt.Fprintf(&b, "  %s: %s\n", graphQLName(slot.Name), graphQLFieldType(resolver, slot))
		}
		b.WriteString("}\n")
		return true
	})
	if err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func graphQLFieldType(resolver core.ReferenceResolver, slot core.InducedSlot) string {
	var base string
	switch {
	case slot.Identifier:
		base = "ID"
	case resolver.ResolveRange(slot.Range) == types.RangeClass,
		resolver.ResolveRange(slot.Range) == types.RangeEnum:
		base = graphQLName(slot.Range)
	default:
		base = graphQLScalars[resolver.BuiltinBase(slot.Range)]
		if base == "" {
			base = "String"
		}
	}
	if slot.Multivalued {
		base = "[" + base + "]"
	}
	if slot.Required || slot.Identifier {
		base += "!"
	}
	return base
}

func writeGraphQLDescription(b *strings.Builder, indent string, description string) {
	if description == "" {
		return
	}
	fmt.Fprintf(b, "%s\"\"\"%s\"\"\"\n", indent, strings.ReplaceAll(description, `"""`, `\"""`))
}

// graphQLName maps a schema name onto the GraphQL Name grammar.
func graphQLName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "_" + out
	}
	return out
}
