package core

import (
	"lmtk/internal/graphcycle"
	"lmtk/internal/types"
)

// ReferenceResolver answers structural questions about one document:
// which slots a class carries, what its ancestors are and what a slot's
// range points at.  It never modifies the document.
type ReferenceResolver struct {
	classes  *types.OrderedMap[*types.Element]
	slots    *types.OrderedMap[*types.Element]
	typeDefs *types.OrderedMap[*types.Element]
	enums    *types.OrderedMap[*types.Element]
}

func NewReferenceResolver(doc types.Document) ReferenceResolver {
	return ReferenceResolver{
		classes:  doc.Classes(),
		slots:    doc.Slots(),
		typeDefs: doc.Types(),
		enums:    doc.Enums(),
	}
}

func (r ReferenceResolver) HasClass(name string) bool { return r.classes.Has(name) }
func (r ReferenceResolver) HasSlot(name string) bool  { return r.slots.Has(name) }
func (r ReferenceResolver) HasType(name string) bool  { return r.typeDefs.Has(name) }
func (r ReferenceResolver) HasEnum(name string) bool  { return r.enums.Has(name) }

// Class returns the typed view of a class.
func (r ReferenceResolver) Class(name string) (*types.ClassDef, error) {
	element, ok := r.classes.Get(name)
	if !ok {
		return nil, unknownElementError(types.SectionClasses, name)
	}
	return element.Class, nil
}

// Slot returns the typed view of a slot.
func (r ReferenceResolver) Slot(name string) (*types.SlotDef, error) {
	element, ok := r.slots.Get(name)
	if !ok {
		return nil, unknownElementError(types.SectionSlots, name)
	}
	return element.Slot, nil
}

// Type returns the typed view of a type.
func (r ReferenceResolver) Type(name string) (*types.TypeDef, error) {
	element, ok := r.typeDefs.Get(name)
	if !ok {
		return nil, unknownElementError(types.SectionTypes, name)
	}
	return element.Type, nil
}

// DirectSlots returns the slots declared on the class itself.
func (r ReferenceResolver) DirectSlots(className string) ([]string, error) {
	class, err := r.Class(className)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), class.Slots...), nil
}

// EffectiveSlots returns the class's own slots followed by those inherited
// through is_a and then through each mixin, depth-first.  Repeats keep
// their first position.  Ancestors missing from the document contribute
// nothing; inheritance loops are cut at the first revisit.
func (r ReferenceResolver) EffectiveSlots(className string) ([]string, error) {
	if !r.classes.Has(className) {
		return nil, unknownElementError(types.SectionClasses, className)
	}
	seen := map[string]struct{}{}
	visited := map[string]struct{}{}
	var out []string
	var walk func(name string)
	walk = func(name string) {
		if _, ok := visited[name]; ok {
			return
		}
		visited[name] = struct{}{}
		element, ok := r.classes.Get(name)
		if !ok {
			return
		}
		for _, slot := range element.Class.Slots {
			if _, dup := seen[slot]; dup {
				continue
			}
			seen[slot] = struct{}{}
			out = append(out, slot)
		}
		if element.Class.IsA != "" {
			walk(element.Class.IsA)
		}
		for _, mixin := range element.Class.Mixins {
			walk(mixin)
		}
	}
	walk(className)
	return out, nil
}

// ParentChain follows is_a from className upwards and returns the
// ancestors nearest first.  The walk stops at a class without a parent or
// at a parent the document does not define.  A chain longer than the number
// of classes can only come from a loop and fails with CyclicInheritance.
func (r ReferenceResolver) ParentChain(className string) ([]string, error) {
	class, err := r.Class(className)
	if err != nil {
		return nil, err
	}
	limit := r.classes.Len()
	var chain []string
	for parent := class.IsA; parent != ""; {
		if len(chain) >= limit {
			return nil, cyclicInheritanceError(className)
		}
		element, ok := r.classes.Get(parent)
		if !ok {
			break
		}
		chain = append(chain, parent)
		parent = element.Class.IsA
	}
	return chain, nil
}

// Parents returns the is_a parent followed by the mixins of a class.
func (r ReferenceResolver) Parents(className string) ([]string, error) {
	class, err := r.Class(className)
	if err != nil {
		return nil, err
	}
	var parents []string
	if class.IsA != "" {
		parents = append(parents, class.IsA)
	}
	return append(parents, class.Mixins...), nil
}

// CheckAcyclic reports the first is_a/mixins loop among all classes as
// CyclicInheritance.  Undefined parents are ignored.
func (r ReferenceResolver) CheckAcyclic() error {
	cycle, err := graphcycle.Find(r.classes.Keys(), r.classes.Has, r.Parents)
	if err != nil {
		return err
	}
	if len(cycle) > 0 {
		return cyclicInheritanceError(cycle[0])
	}
	return nil
}

// ResolveRange looks a range name up among classes, then types, then enums.
func (r ReferenceResolver) ResolveRange(rangeName string) types.RangeKind {
	switch {
	case rangeName == "":
		return types.RangeUnknown
	case r.classes.Has(rangeName):
		return types.RangeClass
	case r.typeDefs.Has(rangeName):
		return types.RangeType
	case r.enums.Has(rangeName):
		return types.RangeEnum
	default:
		return types.RangeUnknown
	}
}

// RangeKind resolves the range of a slot.  A slot without a range, or with
// a range nothing defines, is RangeUnknown; the caller decides whether that
// matters.
func (r ReferenceResolver) RangeKind(slotName string) (types.RangeKind, error) {
	slot, err := r.Slot(slotName)
	if err != nil {
		return types.RangeUnknown, err
	}
	return r.ResolveRange(slot.Range), nil
}

// SubsetsTouched returns the subsets an element is tagged with, without
// duplicates, in declaration order.
func (r ReferenceResolver) SubsetsTouched(elementName string, section string) ([]string, error) {
	var elements *types.OrderedMap[*types.Element]
	switch section {
	case types.SectionClasses:
		elements = r.classes
	case types.SectionSlots:
		elements = r.slots
	case types.SectionTypes:
		elements = r.typeDefs
	case types.SectionEnums:
		elements = r.enums
	default:
		return nil, unknownElementError(section, elementName)
	}
	element, ok := elements.Get(elementName)
	if !ok {
		return nil, unknownElementError(section, elementName)
	}
	return dedupe(element.InSubset()), nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// InducedSlot is a slot as seen from one class: the global definition with
// the class's slot_usage applied, or an inline attribute.
type InducedSlot struct {
	Name string
	types.SlotDef
}

// InducedSlots returns the effective slots of a class that the document
// defines, with slot_usage overrides applied, followed by its inline
// attributes.  Slots named but not defined are left out.
func (r ReferenceResolver) InducedSlots(className string) ([]InducedSlot, error) {
	names, err := r.EffectiveSlots(className)
	if err != nil {
		return nil, err
	}
	class, err := r.Class(className)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []InducedSlot
	for _, name := range names {
		element, ok := r.slots.Get(name)
		if !ok {
			continue
		}
		def := *element.Slot
		if usage, ok := class.SlotUsage.Get(name); ok {
			def = overlaySlot(def, usage)
		}
		seen[name] = struct{}{}
		out = append(out, InducedSlot{Name: name, SlotDef: def})
	}
	class.Attributes.Range(func(name string, def types.SlotDef) bool {
		if _, dup := seen[name]; !dup {
			out = append(out, InducedSlot{Name: name, SlotDef: def})
		}
		return true
	})
	return out, nil
}

func overlaySlot(base, usage types.SlotDef) types.SlotDef {
	if usage.Description != "" {
		base.Description = usage.Description
	}
	if usage.Range != "" {
		base.Range = usage.Range
	}
	if usage.Pattern != "" {
		base.Pattern = usage.Pattern
	}
	if usage.MinimumValue != nil {
		base.MinimumValue = usage.MinimumValue
	}
	if usage.MaximumValue != nil {
		base.MaximumValue = usage.MaximumValue
	}
	base.Required = base.Required || usage.Required
	base.Multivalued = base.Multivalued || usage.Multivalued
	base.Identifier = base.Identifier || usage.Identifier
	return base
}

// BuiltinBase follows the typeof chain of a range until it reaches a
// built-in type name.  It returns "" for classes, enums and ranges that
// never reach a built-in type.
func (r ReferenceResolver) BuiltinBase(rangeName string) string {
	seen := map[string]struct{}{}
	for name := rangeName; name != ""; {
		if _, loop := seen[name]; loop {
			return ""
		}
		seen[name] = struct{}{}
		element, ok := r.typeDefs.Get(name)
		if !ok {
			if types.IsBuiltinType(name) {
				return name
			}
			return ""
		}
		if element.Type.Typeof == "" {
			if types.IsBuiltinType(name) {
				return name
			}
			return ""
		}
		name = element.Type.Typeof
	}
	return ""
}

// IdentifierSlot returns the induced slot marked as identifier, if any.
func (r ReferenceResolver) IdentifierSlot(className string) (InducedSlot, bool) {
	slots, err := r.InducedSlots(className)
	if err != nil {
		return InducedSlot{}, false
	}
	for _, slot := range slots {
		if slot.Identifier {
			return slot, true
		}
	}
	return InducedSlot{}, false
}
