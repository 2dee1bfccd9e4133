package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/types"
)

// SummarySections lists the sections a summary covers, in report order.
var SummarySections = []string{types.SectionClasses, types.SectionSlots, types.SectionEnums, types.SectionTypes}

type Summary struct {
	Schema   string           `json:"schema"`
	Detailed bool             `json:"detailed"`
	Sections []SectionSummary `json:"sections"`
}

type SectionSummary struct {
	Name     string          `json:"name"`
	Elements []string        `json:"elements"`
	Details  []ElementDetail `json:"details,omitempty"`
}

// ElementDetail holds the per-kind fields of a detailed summary.  Only the
// fields of the element's kind are filled.
type ElementDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Slots  []string `json:"slots,omitempty"`
	IsA    string   `json:"is_a,omitempty"`
	Mixins []string `json:"mixins,omitempty"`

	Range       string `json:"range,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Multivalued bool   `json:"multivalued,omitempty"`
	Pattern     string `json:"pattern,omitempty"`

	PermissibleValues []string `json:"permissible_values,omitempty"`

	Base string `json:"base,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// Summarize lists the elements of the requested sections, all four entity
// sections when none are given.  Detailed summaries add the main fields of
// every element.
func Summarize(doc types.Document, sections []string, detailed bool) (Summary, error) {
	selected, err := selectSections(sections)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Schema: doc.Name, Detailed: detailed}
	for _, name := range selected {
		elements := doc.Elements(name)
		section := SectionSummary{Name: name, Elements: elements.Keys()}
		if detailed {
			elements.Range(func(key string, element *types.Element) bool {
				section.Details = append(section.Details, detailOf(key, element))
				return true
			})
		}
		summary.Sections = append(summary.Sections, section)
	}
	return summary, nil
}

func selectSections(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return SummarySections, nil
	}
	wanted := map[string]struct{}{}
	var invalid []string
	for _, name := range requested {
		if _, ok := types.EntityKindOf(name); !ok {
			invalid = append(invalid, name)
			continue
		}
		wanted[name] = struct{}{}
	}
	if len(invalid) > 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid sections: %s", strings.Join(invalid, ", ")))
	}
	var out []string
	for _, name := range SummarySections {
		if _, ok := wanted[name]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func detailOf(name string, element *types.Element) ElementDetail {
	detail := ElementDetail{Name: name, Description: element.Description()}
	switch {
	case element.Class != nil:
		detail.Slots = element.Class.Slots
		detail.IsA = element.Class.IsA
		detail.Mixins = element.Class.Mixins
	case element.Slot != nil:
		detail.Range = element.Slot.Range
		detail.Required = element.Slot.Required
		detail.Multivalued = element.Slot.Multivalued
		detail.Pattern = element.Slot.Pattern
	case element.Enum != nil:
		detail.PermissibleValues = element.Enum.PermissibleValues.Keys()
	case element.Type != nil:
		detail.Base = element.Type.Base
		if detail.Base == "" {
			detail.Base = element.Type.Typeof
		}
		detail.URI = element.Type.URI
	}
	return detail
}
