package types

type EntityKind string

const (
	EntityClass EntityKind = "class"
	EntitySlot  EntityKind = "slot"
	EntityType  EntityKind = "type"
	EntityEnum  EntityKind = "enum"
)

// Top-level section names with special handling.  Every other top-level
// key is metadata and is copied verbatim.
const (
	SectionClasses = "classes"
	SectionSlots   = "slots"
	SectionTypes   = "types"
	SectionEnums   = "enums"
	SectionSubsets = "subsets"

	KeyName        = "name"
	KeyID          = "id"
	KeyDescription = "description"
	KeyImports     = "imports"
)

// EntitySections lists the entity sections in canonical order.
var EntitySections = []string{SectionClasses, SectionSlots, SectionTypes, SectionEnums}

var sectionKinds = map[string]EntityKind{
	SectionClasses: EntityClass,
	SectionSlots:   EntitySlot,
	SectionTypes:   EntityType,
	SectionEnums:   EntityEnum,
}

// EntityKindOf maps an entity section name to the kind of its elements.
func EntityKindOf(section string) (EntityKind, bool) {
	kind, ok := sectionKinds[section]
	return kind, ok
}

// SectionKind tags the payload carried by a Section.
type SectionKind string

const (
	SectionKindMetadata SectionKind = "metadata"
	SectionKindEntity   SectionKind = "entity"
	SectionKindSubsets  SectionKind = "subsets"
)

// SectionKindOf classifies a top-level key.
func SectionKindOf(name string) SectionKind {
	if _, ok := sectionKinds[name]; ok {
		return SectionKindEntity
	}
	if name == SectionSubsets {
		return SectionKindSubsets
	}
	return SectionKindMetadata
}

// RangeKind says what a slot range resolves to.  Resolution tries classes,
// then types, then enums.
type RangeKind string

const (
	RangeClass   RangeKind = "class"
	RangeType    RangeKind = "type"
	RangeEnum    RangeKind = "enum"
	RangeUnknown RangeKind = "unknown"
)

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)
