package adapters

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/types"
)

var csvHeader = []string{"section", "name", "description", "is_a", "mixins", "slots", "range", "required", "multivalued", "values"}

// CSVExporter writes one row per class, slot, type and enum.  List
// columns are joined with "|".
type CSVExporter struct{}

func NewCSVExporter() CSVExporter {
	return CSVExporter{}
}

func (e CSVExporter) Format() string { return FormatCSV }

func (e CSVExporter) Export(doc types.Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	rows := [][]string{csvHeader}

	for _, section := range types.EntitySections {
		doc.Elements(section).Range(func(name string, element *types.Element) bool {
			rows = append(rows, csvRow(section, name, element))
			return true
		})
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write csv export").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

func csvRow(section string, name string, element *types.Element) []string {
	row := make([]string, len(csvHeader))
	row[0] = section
	row[1] = name
	row[2] = element.Description()
	switch element.Kind {
	case types.EntityClass:
		row[3] = element.Class.IsA
		row[4] = strings.Join(element.Class.Mixins, "|")
		row[5] = strings.Join(element.Class.Slots, "|")
	case types.EntitySlot:
		row[6] = element.Slot.Range
		row[7] = strconv.FormatBool(element.Slot.Required)
		row[8] = strconv.FormatBool(element.Slot.Multivalued)
	case types.EntityType:
		row[6] = element.Type.Typeof
		if row[6] == "" {
			row[6] = element.Type.Base
		}
	case types.EntityEnum:
		row[9] = strings.Join(element.Enum.PermissibleValues.Keys(), "|")
	}
	return row
}
