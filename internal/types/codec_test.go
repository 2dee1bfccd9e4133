package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codecSchema = `name: people
id: https://example.org/people
description: People schema
prefixes:
  ex: https://example.org/
subsets:
  core:
  extra: {}
classes:
  Person:
    is_a: Agent
    slots:
      - name
    annotations:
      owner: team-a
  Agent:
  Empty: ""
slots:
  name:
    range: string
    in_subset: core
enums:
  Color:
    permissible_values:
      RED:
      GREEN:
types:
`

func TestDecodeDocumentKeepsOrder(t *testing.T) {
	doc, err := DecodeDocument("people.yaml", []byte(codecSchema))
	require.NoError(t, err)

	want := []string{"name", "id", "description", "prefixes", "subsets", "classes", "slots", "enums", "types"}
	if diff := cmp.Diff(want, doc.Sections.Keys()); diff != "" {
		t.Fatalf("unexpected section order (-want +got):\n%s", diff)
	}
	assert.Equal(t, "people", doc.Name)
	assert.Equal(t, "https://example.org/people", doc.ID)
	assert.Equal(t, []string{"Person", "Agent", "Empty"}, doc.Classes().Keys())
}

func TestDecodeDocumentTypedViews(t *testing.T) {
	doc, err := DecodeDocument("people.yaml", []byte(codecSchema))
	require.NoError(t, err)

	person, ok := doc.Classes().Get("Person")
	require.True(t, ok)
	assert.Equal(t, "Agent", person.Class.IsA)
	assert.Equal(t, []string{"name"}, []string(person.Class.Slots))
	assert.Equal(t, []string{"annotations"}, person.Extra.Keys())

	name, _ := doc.Slots().Get("name")
	assert.Equal(t, "string", name.Slot.Range)
	assert.Equal(t, []string{"core"}, name.InSubset())

	color, _ := doc.Enums().Get("Color")
	assert.Equal(t, []string{"RED", "GREEN"}, color.Enum.PermissibleValues.Keys())
}

func TestDecodeDocumentEmptyForms(t *testing.T) {
	doc, err := DecodeDocument("people.yaml", []byte(codecSchema))
	require.NoError(t, err)

	agent, _ := doc.Classes().Get("Agent")
	assert.Equal(t, EmptyFormNull, agent.EmptyForm())
	empty, _ := doc.Classes().Get("Empty")
	assert.Equal(t, EmptyFormString, empty.EmptyForm())

	core, _ := doc.Subsets().Get("core")
	assert.Equal(t, EmptyFormNull, EmptyFormOf(core))
	extra, _ := doc.Subsets().Get("extra")
	assert.Equal(t, EmptyFormMapping, EmptyFormOf(extra))

	typesSection, ok := doc.Section(SectionTypes)
	require.True(t, ok)
	assert.Equal(t, EmptyFormNull, typesSection.Empty)
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	doc, err := DecodeDocument("people.yaml", []byte(codecSchema))
	require.NoError(t, err)

	data, err := EncodeDocument(doc)
	require.NoError(t, err)

	again, err := DecodeDocument("people.yaml", data)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.Sections.Keys(), again.Sections.Keys()); diff != "" {
		t.Fatalf("section order changed (-want +got):\n%s", diff)
	}
	core, _ := again.Subsets().Get("core")
	assert.Equal(t, EmptyFormNull, EmptyFormOf(core))
	extra, _ := again.Subsets().Get("extra")
	assert.Equal(t, EmptyFormMapping, EmptyFormOf(extra))
	empty, _ := again.Classes().Get("Empty")
	assert.Equal(t, EmptyFormString, empty.EmptyForm())
}

func TestDecodeDocumentDefaultsID(t *testing.T) {
	doc, err := DecodeDocument("x.yaml", []byte("name: loose\nclasses: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://w3id.org/loose", doc.ID)
	assert.False(t, doc.Sections.Has(KeyID))
}

func TestDecodeDocumentRejectsNonMapping(t *testing.T) {
	_, err := DecodeDocument("x.yaml", []byte("- a\n- b\n"))
	require.Error(t, err)

	_, err = DecodeDocument("x.yaml", []byte(""))
	require.Error(t, err)

	_, err = DecodeDocument("x.yaml", []byte("name: x\nclasses:\n  - A\n"))
	require.Error(t, err)
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	doc, err := DecodeDocument("people.yaml", []byte(codecSchema))
	require.NoError(t, err)

	clone := doc.Clone()
	clone.Classes().Delete("Person")
	name, _ := clone.Slots().Get("name")
	MappingSet(name.Attrs, "range", NewStringNode("integer"))

	assert.True(t, doc.Classes().Has("Person"))
	original, _ := doc.Slots().Get("name")
	value, _ := MappingGet(original.Attrs, "range")
	assert.Equal(t, "string", value.Value)
}
