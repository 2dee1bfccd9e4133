package ui

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"lmtk/internal/types"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Name", "Range"}, true)
	table.AddRow("id", "string")
	table.AddRow("address", "Address")
	table.Render()

	want := "Name     Range\n" +
		"───────  ───────\n" +
		"id       string\n" +
		"address  Address\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, table.Len())
}

func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, nil, true).Render()
	assert.Empty(t, buf.String())
}

func TestFormatDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	FormatDiagnostics(&buf, "people.yaml", []types.Diagnostic{
		{Path: "classes.Person", Message: "Class 'Person' references undefined slot 'phone'", Severity: types.SeverityError},
		{Message: "Slot 'name' has undefined domain 'Ghost'", Severity: types.SeverityWarning},
	}, true)

	want := "ERROR   classes.Person: Class 'Person' references undefined slot 'phone'\n" +
		"WARNING Slot 'name' has undefined domain 'Ghost'\n" +
		"people.yaml: 1 error(s), 1 warning(s)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected diagnostics (-want +got):\n%s", diff)
	}

	buf.Reset()
	FormatDiagnostics(&buf, "people.yaml", nil, true)
	assert.Empty(t, buf.String())
}

func TestHeading(t *testing.T) {
	var buf bytes.Buffer
	Heading(&buf, "Classes", true)
	assert.Equal(t, "Classes\n───────\n", buf.String())
}
