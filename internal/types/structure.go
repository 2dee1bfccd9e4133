package types

// StructureTemplate captures the cosmetic shape of a document: the order
// of its top-level keys and, per section, how empty values were spelled.
// It is derived on demand and never persisted.
type StructureTemplate struct {
	Order []string

	// EmptyValues maps section name to the keys inside that section whose
	// value was empty, and the spelling used.
	EmptyValues map[string]map[string]EmptyForm

	// SectionForms records sections whose own value was empty.
	SectionForms map[string]EmptyForm
}

// EmptyForm returns the recorded spelling for key inside section.
func (t StructureTemplate) EmptyForm(section, key string) (EmptyForm, bool) {
	forms, ok := t.EmptyValues[section]
	if !ok {
		return EmptyFormNone, false
	}
	form, ok := forms[key]
	return form, ok
}

// FirstEmptyForm returns the spelling of the first empty key recorded for
// section, following the order keys were captured in.
func (t StructureTemplate) FirstEmptyForm(section string, keys []string) (EmptyForm, bool) {
	for _, key := range keys {
		if form, ok := t.EmptyForm(section, key); ok {
			return form, true
		}
	}
	return EmptyFormNone, false
}
