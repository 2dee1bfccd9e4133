package core

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"lmtk/internal/types"
)

// SubsetNoteMarker opens the provenance sentence the subsetter appends to a
// schema description.  Everything from the marker on is replaced on the
// next run.
const SubsetNoteMarker = "This subset includes classes:"

// SubsetResult carries the reduced document and the closure that produced it.
type SubsetResult struct {
	Document   types.Document
	Requested  []string
	Skipped    []string
	Classes    []string
	Slots      []string
	Types      []string
	Enums      []string
	SubsetTags []string
}

type Subsetter struct{}

func NewSubsetter() Subsetter {
	return Subsetter{}
}

// closure accumulates the names a subset needs, keeping discovery order.
type closure struct {
	resolver ReferenceResolver
	inherit  bool

	classes *types.OrderedMap[struct{}]
	slots   *types.OrderedMap[struct{}]
	types   *types.OrderedMap[struct{}]
	enums   *types.OrderedMap[struct{}]
	tags    *types.OrderedMap[struct{}]
}

func newClosure(resolver ReferenceResolver, inherit bool) *closure {
	return &closure{
		resolver: resolver,
		inherit:  inherit,
		classes:  types.NewOrderedMap[struct{}](),
		slots:    types.NewOrderedMap[struct{}](),
		types:    types.NewOrderedMap[struct{}](),
		enums:    types.NewOrderedMap[struct{}](),
		tags:     types.NewOrderedMap[struct{}](),
	}
}

func (c *closure) addClass(name string) error {
	if c.classes.Has(name) || !c.resolver.HasClass(name) {
		return nil
	}
	c.classes.Set(name, struct{}{})
	class, err := c.resolver.Class(name)
	if err != nil {
		return err
	}
	if err := c.tagElement(name, types.SectionClasses); err != nil {
		return err
	}

	if c.inherit {
		parents, err := c.resolver.Parents(name)
		if err != nil {
			return err
		}
		for _, parent := range parents {
			if err := c.addClass(parent); err != nil {
				return err
			}
		}
	}

	slots, err := c.resolver.EffectiveSlots(name)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if err := c.addSlot(slot); err != nil {
			return err
		}
	}
	var inline []*types.SlotDef
	for _, usages := range []*types.OrderedMap[types.SlotDef]{class.SlotUsage, class.Attributes} {
		usages.Range(func(_ string, def types.SlotDef) bool {
			inline = append(inline, &def)
			return true
		})
	}
	for _, def := range inline {
		c.tag(def.InSubset)
		if err := c.addRange(def.Range); err != nil {
			return err
		}
	}
	return nil
}

func (c *closure) addSlot(name string) error {
	if c.slots.Has(name) || !c.resolver.HasSlot(name) {
		return nil
	}
	c.slots.Set(name, struct{}{})
	slot, err := c.resolver.Slot(name)
	if err != nil {
		return err
	}
	if err := c.tagElement(name, types.SectionSlots); err != nil {
		return err
	}
	return c.addRange(slot.Range)
}

func (c *closure) addRange(name string) error {
	switch c.resolver.ResolveRange(name) {
	case types.RangeClass:
		return c.addClass(name)
	case types.RangeType:
		return c.addType(name)
	case types.RangeEnum:
		c.enums.Set(name, struct{}{})
	}
	return nil
}

func (c *closure) addType(name string) error {
	for name != "" && !c.types.Has(name) && c.resolver.HasType(name) {
		c.types.Set(name, struct{}{})
		def, err := c.resolver.Type(name)
		if err != nil {
			return err
		}
		name = def.Typeof
	}
	return nil
}

func (c *closure) tagElement(name string, section string) error {
	subsets, err := c.resolver.SubsetsTouched(name, section)
	if err != nil {
		return err
	}
	c.tag(subsets)
	return nil
}

func (c *closure) tag(names []string) {
	for _, name := range names {
		c.tags.Set(name, struct{}{})
	}
}

// Subset reduces doc to the requested classes plus everything they need to
// stay loadable: parents and mixins when includeInherited is set, effective
// slots, and the classes, types and enums those slots range over.  Built-in
// types and all subsets are always carried over.
func (s Subsetter) Subset(ctx context.Context, doc types.Document, classNames []string, includeInherited bool) (SubsetResult, error) {
	resolver := NewReferenceResolver(doc)
	var requested, skipped []string
	for _, name := range classNames {
		if resolver.HasClass(name) {
			requested = append(requested, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	if len(requested) == 0 {
		return SubsetResult{}, noValidClassesError(classNames)
	}
	for _, name := range skipped {
		log.Ctx(ctx).Warn().Str("class", name).Msg("requested class not found, skipping")
	}

	walk := newClosure(resolver, includeInherited)
	for _, name := range requested {
		if err := walk.addClass(name); err != nil {
			return SubsetResult{}, err
		}
	}

	template := CaptureStructure(doc)
	sections := doc.Clone().Sections
	sections.Range(func(name string, section *types.Section) bool {
		if section.Kind != types.SectionKindEntity {
			return true
		}
		keep := walk.keepFilter(name)
		for _, key := range section.Elements.Keys() {
			element, _ := section.Elements.Get(key)
			if !keep(key, element) {
				section.Elements.Delete(key)
			}
		}
		applyElementForms(template, name, section)
		return true
	})

	out := types.Document{
		Source:   doc.Source,
		Name:     doc.Name,
		ID:       doc.ID,
		Sections: reassemble(template, sections),
	}
	sorted := append([]string(nil), requested...)
	sort.Strings(sorted)
	setDescription(out.Sections, AppendSubsetNote(doc.Description(), sorted))
	result := SubsetResult{
		Document:   out,
		Requested:  requested,
		Skipped:    skipped,
		Classes:    walk.classes.Keys(),
		Slots:      walk.slots.Keys(),
		Types:      out.Types().Keys(),
		Enums:      walk.enums.Keys(),
		SubsetTags: walk.tags.Keys(),
	}
	log.Ctx(ctx).Debug().
		Strs("requested", requested).
		Int("classes", len(result.Classes)).
		Int("slots", len(result.Slots)).
		Int("types", len(result.Types)).
		Int("enums", len(result.Enums)).
		Msg("subset computed")
	return result, nil
}

func (c *closure) keepFilter(section string) func(string, *types.Element) bool {
	switch section {
	case types.SectionClasses:
		return func(name string, _ *types.Element) bool { return c.classes.Has(name) }
	case types.SectionSlots:
		return func(name string, _ *types.Element) bool { return c.slots.Has(name) }
	case types.SectionEnums:
		return func(name string, _ *types.Element) bool { return c.enums.Has(name) }
	default:
		return func(name string, element *types.Element) bool {
			if c.types.Has(name) {
				return true
			}
			return element.Type != nil && element.Type.FromSchema == types.LinkMLTypesURI
		}
	}
}

// AppendSubsetNote replaces any earlier provenance sentence in description
// with one naming classes, which must already be sorted.
func AppendSubsetNote(description string, classes []string) string {
	if idx := strings.Index(description, SubsetNoteMarker); idx >= 0 {
		description = description[:idx]
	}
	description = strings.TrimRight(description, " \t\n")
	note := SubsetNoteMarker + " " + strings.Join(classes, ", ") + "."
	if description == "" {
		return note
	}
	return description + " " + note
}

// setDescription writes the description section, placing a new one after
// id, else after name, else first.
func setDescription(sections *types.OrderedMap[*types.Section], description string) {
	if section, ok := sections.Get(types.KeyDescription); ok && section.Kind == types.SectionKindMetadata {
		section.Value = types.NewStringNode(description)
		return
	}
	anchor := ""
	for _, key := range []string{types.KeyID, types.KeyName} {
		if sections.Has(key) {
			anchor = key
			break
		}
	}
	out := types.NewOrderedMap[*types.Section]()
	added := false
	if anchor == "" {
		out.Set(types.KeyDescription, types.NewMetadataSection(types.NewStringNode(description)))
		added = true
	}
	sections.Range(func(name string, section *types.Section) bool {
		out.Set(name, section)
		if !added && name == anchor {
			out.Set(types.KeyDescription, types.NewMetadataSection(types.NewStringNode(description)))
			added = true
		}
		return true
	})
	*sections = *out
}
