package adapters

import (
	"encoding/json"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

const jsonSchemaDialect = "https://json-schema.org/draft/2019-09/schema"

type jsonSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Format               string                 `json:"format,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Items                *jsonSchema            `json:"items,omitempty"`
	Properties           map[string]*jsonSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Defs                 map[string]*jsonSchema `json:"$defs,omitempty"`
}

// JSONSchemaExporter renders classes as JSON Schema 2019-09 object
// definitions under $defs and enums as string enumerations.
type JSONSchemaExporter struct{}

func NewJSONSchemaExporter() JSONSchemaExporter {
	return JSONSchemaExporter{}
}

func (e JSONSchemaExporter) Format() string { return FormatJSONSchema }

func (e JSONSchemaExporter) Export(doc types.Document) ([]byte, error) {
	resolver := core.NewReferenceResolver(doc)
	closed := false
	root := &jsonSchema{
		Schema:      jsonSchemaDialect,
		ID:          doc.ID,
		Title:       schemaTitle(doc),
		Description: doc.Description(),
		Type:        "object",
		Defs:        map[string]*jsonSchema{},
	}

	var err error
	doc.Classes().Range(func(name string, element *types.Element) bool {
		var slots []core.InducedSlot
		slots, err = resolver.InducedSlots(name)
		if err != nil {
			return false
		}
		def := &jsonSchema{
			Title:                name,
			Description:          element.Class.Description,
			Type:                 "object",
			Properties:           map[string]*jsonSchema{},
			AdditionalProperties: &closed,
		}
		for _, slot := range slots {
			def.Properties[slot.Name] = slotSchema(resolver, slot)
			if slot.Required {
				def.Required = append(def.Required, slot.Name)
			}
		}
		root.Defs[name] = def
		return true
	})
	if err != nil {
		return nil, err
	}
	doc.Enums().Range(func(name string, element *types.Element) bool {
		root.Defs[name] = &jsonSchema{
			Title:       name,
			Description: element.Enum.Description,
			Type:        "string",
			Enum:        element.Enum.PermissibleValues.Keys(),
		}
		return true
	})

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal json schema").
			WithCause(err)
	}
	return append(data, '\n'), nil
}

func slotSchema(resolver core.ReferenceResolver, slot core.InducedSlot) *jsonSchema {
	var value *jsonSchema
	switch resolver.ResolveRange(slot.Range) {
	case types.RangeClass, types.RangeEnum:
		value = &jsonSchema{Ref: "#/$defs/" + slot.Range}
	default:
		value = builtinSchema(resolver.BuiltinBase(slot.Range))
		value.Pattern = slot.Pattern
		value.Minimum = slot.MinimumValue
		value.Maximum = slot.MaximumValue
	}
	if slot.Multivalued {
		value = &jsonSchema{Type: "array", Items: value}
	}
	value.Description = slot.Description
	return value
}

func builtinSchema(base string) *jsonSchema {
	switch base {
	case "integer":
		return &jsonSchema{Type: "integer"}
	case "float", "double", "decimal":
		return &jsonSchema{Type: "number"}
	case "boolean":
		return &jsonSchema{Type: "boolean"}
	case "date":
		return &jsonSchema{Type: "string", Format: "date"}
	case "datetime":
		return &jsonSchema{Type: "string", Format: "date-time"}
	case "time":
		return &jsonSchema{Type: "string", Format: "time"}
	case "uri", "uriorcurie":
		return &jsonSchema{Type: "string", Format: "uri"}
	default:
		return &jsonSchema{Type: "string"}
	}
}
