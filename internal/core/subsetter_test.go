package core

import (
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lmtk/internal/types"
)

const subsetSchema = `id: https://example.org/org
name: org
description: Organisation schema
subsets:
  core:
  admin:
classes:
  Agent:
    abstract: true
    slots:
      - id
  Person:
    is_a: Agent
    slots:
      - name
      - address
    in_subset: core
  Address:
    slots:
      - street
      - country
  Country:
    slots:
      - code
  Company:
    slots:
      - employees
  Audit:
    attributes:
      checked_by:
        range: Person
slots:
  id:
    identifier: true
    range: string
  name:
    range: ShortText
  address:
    range: Address
  street:
    range: string
  country:
    range: Country
  code:
    range: CountryCode
  employees:
    range: Person
    multivalued: true
  status:
    range: Status
types:
  ShortText:
    typeof: Text
  Text:
    typeof: string
  string:
    uri: xsd:string
    base: str
    from_schema: https://w3id.org/linkml/types
  Unused:
    typeof: string
enums:
  CountryCode:
    permissible_values:
      NL:
      DE:
  Status:
    permissible_values:
      ACTIVE:
`

// ----- Closure -----

func TestSubsetIncludesInheritedParents(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Person"}, true)
	require.NoError(t, err)

	out := result.Document
	assert.Equal(t, []string{"Agent", "Person", "Address", "Country"}, out.Classes().Keys())
	assert.Equal(t, []string{"id", "name", "address", "street", "country", "code"}, out.Slots().Keys())
	assert.Equal(t, []string{"ShortText", "Text", "string"}, out.Types().Keys())
	assert.Equal(t, []string{"CountryCode"}, out.Enums().Keys())
	assert.Equal(t, []string{"core"}, result.SubsetTags)
}

func TestSubsetCollectsTagsFromClassesAndSlots(t *testing.T) {
	doc := decodeSchema(t, "tags.yaml", `name: tags
subsets:
  core:
  admin:
  extra:
classes:
  Person:
    slots: [name, nickname]
    in_subset: [admin, admin]
slots:
  name:
    in_subset: [core, extra]
  nickname:
    in_subset: core
`)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Person"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "core", "extra"}, result.SubsetTags)
}

func TestSubsetWithoutInheritanceStillUsesEffectiveSlots(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Person"}, false)
	require.NoError(t, err)

	out := result.Document
	assert.False(t, out.Classes().Has("Agent"))
	assert.True(t, out.Slots().Has("id"))
}

func TestSubsetClosureProperties(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	for _, requested := range [][]string{{"Person"}, {"Company"}, {"Audit"}, {"Address", "Agent"}} {
		t.Run(strings.Join(requested, "+"), func(t *testing.T) {
			result, err := NewSubsetter().Subset(t.Context(), doc, requested, true)
			require.NoError(t, err)
			out := result.Document
			resolver := NewReferenceResolver(out)

			for _, class := range out.Classes().Keys() {
				slots, err := resolver.EffectiveSlots(class)
				require.NoError(t, err)
				for _, slot := range slots {
					assert.True(t, out.Slots().Has(slot), "class %s needs slot %s", class, slot)
				}
			}
			out.Slots().Range(func(name string, slot *types.Element) bool {
				if NewReferenceResolver(doc).ResolveRange(slot.Slot.Range) == types.RangeClass {
					assert.True(t, out.Classes().Has(slot.Slot.Range), "slot %s ranges over %s", name, slot.Slot.Range)
				}
				return true
			})
		})
	}
}

func TestSubsetFollowsInlineAttributes(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Audit"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Address", "Country", "Audit"}, result.Document.Classes().Keys())
}

func TestSubsetKeepsOriginalElementAttributes(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Company"}, true)
	require.NoError(t, err)

	original, _ := doc.Slots().Get("employees")
	kept, ok := result.Document.Slots().Get("employees")
	require.True(t, ok)
	assert.Equal(t, types.MappingKeys(original.Attrs), types.MappingKeys(kept.Attrs))
	assert.NotSame(t, original.Attrs, kept.Attrs)
}

// ----- Requested names -----

func TestSubsetSkipsUnknownClasses(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Ghost", "Country"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Country"}, result.Requested)
	assert.Equal(t, []string{"Ghost"}, result.Skipped)
}

func TestSubsetFailsWithoutValidClasses(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	_, err := NewSubsetter().Subset(t.Context(), doc, []string{"Ghost", "Phantom"}, true)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "no valid classes found")
}

// ----- Output shape -----

func TestSubsetKeepsSectionsAndSubsets(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Country"}, true)
	require.NoError(t, err)

	out := result.Document
	if diff := cmp.Diff(doc.Sections.Keys(), out.Sections.Keys()); diff != "" {
		t.Fatalf("unexpected section order (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"core", "admin"}, out.Subsets().Keys())

	data, err := types.EncodeDocument(out)
	require.NoError(t, err)
	reloaded, err := types.DecodeDocument("out.yaml", data)
	require.NoError(t, err)
	reloaded.Subsets().Range(func(name string, marker *yaml.Node) bool {
		assert.Equal(t, types.EmptyFormNull, types.EmptyFormOf(marker), "subset %s", name)
		return true
	})
}

func TestSubsetDescriptionNoteIsIdempotent(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)
	subsetter := NewSubsetter()

	first, err := subsetter.Subset(t.Context(), doc, []string{"Person", "Country"}, true)
	require.NoError(t, err)
	second, err := subsetter.Subset(t.Context(), first.Document, []string{"Person", "Country"}, true)
	require.NoError(t, err)

	description := second.Document.Description()
	assert.Equal(t, 1, strings.Count(description, SubsetNoteMarker))
	assert.Equal(t, "Organisation schema This subset includes classes: Country, Person.", description)
	assert.Equal(t, first.Document.Description(), description)
}

func TestSubsetAddsDescriptionAfterID(t *testing.T) {
	doc := decodeSchema(t, "bare.yaml", `name: bare
id: https://example.org/bare
classes:
  Thing:
`)

	result, err := NewSubsetter().Subset(t.Context(), doc, []string{"Thing"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id", "description", "classes"}, result.Document.Sections.Keys())
	assert.Equal(t, "This subset includes classes: Thing.", result.Document.Description())
}

func TestAppendSubsetNote(t *testing.T) {
	tests := []struct {
		name        string
		description string
		classes     []string
		want        string
	}{
		{name: "empty", description: "", classes: []string{"A"}, want: "This subset includes classes: A."},
		{name: "plain", description: "Schema.", classes: []string{"A", "B"}, want: "Schema. This subset includes classes: A, B."},
		{
			name:        "replaces previous note",
			description: "Schema. This subset includes classes: X.",
			classes:     []string{"A"},
			want:        "Schema. This subset includes classes: A.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppendSubsetNote(tt.description, tt.classes))
		})
	}
}
