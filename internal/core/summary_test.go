package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeListsAllSections(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	summary, err := Summarize(doc, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "org", summary.Schema)
	require.Len(t, summary.Sections, 4)
	var names []string
	for _, section := range summary.Sections {
		names = append(names, section.Name)
		assert.Empty(t, section.Details)
	}
	assert.Equal(t, SummarySections, names)
	assert.Equal(t, []string{"CountryCode", "Status"}, summary.Sections[2].Elements)
}

func TestSummarizeDetailed(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	summary, err := Summarize(doc, []string{"types", "slots"}, true)
	require.NoError(t, err)
	require.Len(t, summary.Sections, 2)
	assert.Equal(t, "slots", summary.Sections[0].Name)
	assert.Equal(t, "types", summary.Sections[1].Name)

	employees := summary.Sections[0].Details[6]
	want := ElementDetail{Name: "employees", Range: "Person", Multivalued: true}
	if diff := cmp.Diff(want, employees); diff != "" {
		t.Fatalf("unexpected detail (-want +got):\n%s", diff)
	}

	var bases []string
	for _, detail := range summary.Sections[1].Details {
		bases = append(bases, detail.Base)
	}
	assert.Equal(t, []string{"Text", "string", "str", "string"}, bases)
}

func TestSummarizeEnumValues(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	summary, err := Summarize(doc, []string{"enums"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"NL", "DE"}, summary.Sections[0].Details[0].PermissibleValues)
}

func TestSummarizeRejectsUnknownSections(t *testing.T) {
	doc := decodeSchema(t, "org.yaml", subsetSchema)

	_, err := Summarize(doc, []string{"classes", "widgets"}, false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "widgets")
}
