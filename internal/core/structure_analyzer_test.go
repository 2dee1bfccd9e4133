package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmtk/internal/types"
)

const shapeSchema = `name: shapes
id: https://example.org/shapes
prefixes:
  ex: https://example.org/
  empty: {}
subsets:
  core:
  draft: {}
classes:
  Shape:
    slots: [area]
  Blank:
  Hollow: {}
  Quoted: ""
slots:
  area:
enums:
types: {}
`

func TestCaptureStructureRecordsOrderAndEmptyForms(t *testing.T) {
	doc := decodeSchema(t, "shapes.yaml", shapeSchema)

	template := CaptureStructure(doc)

	wantOrder := []string{"name", "id", "prefixes", "subsets", "classes", "slots", "enums", "types"}
	if diff := cmp.Diff(wantOrder, template.Order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	wantEmpty := map[string]map[string]types.EmptyForm{
		"prefixes": {"empty": types.EmptyFormMapping},
		"subsets":  {"core": types.EmptyFormNull, "draft": types.EmptyFormMapping},
		"classes": {
			"Blank":  types.EmptyFormNull,
			"Hollow": types.EmptyFormMapping,
			"Quoted": types.EmptyFormString,
		},
		"slots": {"area": types.EmptyFormNull},
	}
	if diff := cmp.Diff(wantEmpty, template.EmptyValues); diff != "" {
		t.Fatalf("unexpected empty values (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]types.EmptyForm{
		"enums": types.EmptyFormNull,
		"types": types.EmptyFormMapping,
	}, template.SectionForms)
}

func TestCaptureStructureDoesNotModifyDocument(t *testing.T) {
	doc := decodeSchema(t, "shapes.yaml", shapeSchema)
	before, err := types.EncodeDocument(doc)
	require.NoError(t, err)

	CaptureStructure(doc)
	CaptureStructure(doc)

	after, err := types.EncodeDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestReassembleFollowsTemplateOrder(t *testing.T) {
	template := types.StructureTemplate{
		Order:        []string{"name", "classes", "slots"},
		SectionForms: map[string]types.EmptyForm{"slots": types.EmptyFormNull},
	}
	sections := types.NewOrderedMap[*types.Section]()
	sections.Set("license", types.NewMetadataSection(types.NewStringNode("MIT")))
	sections.Set("slots", types.NewEntitySection(nil, types.EmptyFormNone))
	sections.Set("classes", types.NewEntitySection(nil, types.EmptyFormNone))
	sections.Set("name", types.NewMetadataSection(types.NewStringNode("x")))

	out := reassemble(template, sections)

	assert.Equal(t, []string{"name", "classes", "slots", "license"}, out.Keys())
	slots, _ := out.Get("slots")
	assert.Equal(t, types.EmptyFormNull, slots.Empty)
}
