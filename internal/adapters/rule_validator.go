package adapters

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

// RuleValidator checks the references between the named elements of one
// document.  Paths in the diagnostics point at the offending element, e.g.
// classes.Person.
type RuleValidator struct{}

func NewRuleValidator() RuleValidator {
	return RuleValidator{}
}

func (v RuleValidator) Validate(doc types.Document) []types.Diagnostic {
	var out []types.Diagnostic
	add := func(severity types.Severity, path string, message string, details ...string) {
		diagnostic := types.Diagnostic{Path: path, Message: message, Severity: severity}
		if len(details) > 0 {
			diagnostic.Details = types.NewOrderedMap[string]()
			for i := 0; i+1 < len(details); i += 2 {
				diagnostic.Details.Set(details[i], details[i+1])
			}
		}
		out = append(out, diagnostic)
	}

	for _, field := range []string{types.KeyName, types.KeyID} {
		if _, ok := doc.Section(field); !ok {
			add(types.SeverityError, field, "Missing required field: "+field)
		}
	}

	resolver := core.NewReferenceResolver(doc)
	rangeDefined := func(name string) bool {
		return resolver.ResolveRange(name) != types.RangeUnknown || types.IsBuiltinType(name)
	}
	subsets := doc.Subsets()

	doc.Classes().Range(func(name string, element *types.Element) bool {
		path := types.SectionClasses + "." + name
		class := element.Class
		slots, err := resolver.DirectSlots(name)
		if err != nil {
			return true
		}
		for _, slot := range slots {
			if !resolver.HasSlot(slot) {
				add(types.SeverityError, path,
					fmt.Sprintf("Class '%s' references undefined slot '%s'", name, slot),
					"class", name, "slot", slot)
			}
		}
		if class.IsA != "" && !resolver.HasClass(class.IsA) {
			add(types.SeverityError, path,
				fmt.Sprintf("Class '%s' inherits from undefined class '%s'", name, class.IsA),
				"class", name, "is_a", class.IsA)
		}
		for _, mixin := range class.Mixins {
			if !resolver.HasClass(mixin) {
				add(types.SeverityError, path,
					fmt.Sprintf("Class '%s' uses undefined mixin '%s'", name, mixin),
					"class", name, "mixin", mixin)
			}
		}
		class.Attributes.Range(func(attribute string, def types.SlotDef) bool {
			if def.Range != "" && !rangeDefined(def.Range) {
				add(types.SeverityError, path+".attributes."+attribute,
					fmt.Sprintf("Attribute '%s' of class '%s' references undefined range '%s'", attribute, name, def.Range),
					"class", name, "attribute", attribute, "range", def.Range)
			}
			return true
		})
		checkSubsets(add, subsets, path, class.InSubset)
		return true
	})

	if err := resolver.CheckAcyclic(); err != nil {
		add(types.SeverityError, types.SectionClasses, err.Error())
	}

	doc.Slots().Range(func(name string, element *types.Element) bool {
		path := types.SectionSlots + "." + name
		slot := element.Slot
		if slot.Range != "" && !rangeDefined(slot.Range) {
			add(types.SeverityError, path,
				fmt.Sprintf("Slot '%s' references undefined range '%s'", name, slot.Range),
				"slot", name, "range", slot.Range)
		}
		if slot.Domain != "" && !resolver.HasClass(slot.Domain) {
			add(types.SeverityWarning, path,
				fmt.Sprintf("Slot '%s' has undefined domain '%s'", name, slot.Domain),
				"slot", name, "domain", slot.Domain)
		}
		checkSubsets(add, subsets, path, slot.InSubset)
		return true
	})

	for _, section := range []string{types.SectionTypes, types.SectionEnums} {
		doc.Elements(section).Range(func(name string, element *types.Element) bool {
			checkSubsets(add, subsets, section+"."+name, element.InSubset())
			return true
		})
	}
	return out
}

func checkSubsets(add func(types.Severity, string, string, ...string), subsets *types.OrderedMap[*yaml.Node], path string, tags []string) {
	for _, tag := range tags {
		if !subsets.Has(tag) {
			add(types.SeverityWarning, path,
				fmt.Sprintf("'%s' is tagged with undefined subset '%s'", path, tag),
				"subset", tag)
		}
	}
}
