package adapters

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"gopkg.in/yaml.v3"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

const (
	RDFFormatTurtle = "turtle"
	RDFFormatNQuads = "nquads"
)

// ParseRDFFormat normalizes an RDF serialization name.  An empty name
// selects Turtle.
func ParseRDFFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", RDFFormatTurtle, "ttl":
		return RDFFormatTurtle, nil
	case RDFFormatNQuads, "nq", "n-quads":
		return RDFFormatNQuads, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unsupported RDF format: " + value + " (expected turtle or nquads)")
}

const (
	nsOWL = "http://www.w3.org/2002/07/owl#"
	nsXSD = "http://www.w3.org/2001/XMLSchema#"
)

var (
	rdfType             = quad.IRI(rdf.Type).Full()
	rdfProperty         = quad.IRI(rdf.Property).Full()
	rdfsLabel           = quad.IRI(rdfs.Label).Full()
	rdfsComment         = quad.IRI(rdfs.Comment).Full()
	rdfsSubClassOf      = quad.IRI(rdfs.SubClassOf).Full()
	rdfsRange           = quad.IRI(rdfs.Range).Full()
	rdfsDomain          = quad.IRI(rdfs.Domain).Full()
	rdfsSeeAlso         = quad.IRI(rdfs.SeeAlso).Full()
	rdfsDatatype        = quad.IRI(rdfs.Datatype).Full()
	owlOntology         = quad.IRI(nsOWL + "Ontology")
	owlClass            = quad.IRI(nsOWL + "Class")
	owlObjectProperty   = quad.IRI(nsOWL + "ObjectProperty")
	owlDatatypeProp     = quad.IRI(nsOWL + "DatatypeProperty")
	owlOnDatatype       = quad.IRI(nsOWL + "onDatatype")
	turtlePrefixes      = [][2]string{{"rdf", rdf.NS}, {"rdfs", rdfs.NS}, {"owl", nsOWL}, {"xsd", nsXSD}}
	turtleLocalPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	turtlePrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

var xsdTypes = map[string]string{
	"string":     "string",
	"integer":    "integer",
	"boolean":    "boolean",
	"float":      "float",
	"double":     "double",
	"decimal":    "decimal",
	"date":       "date",
	"datetime":   "dateTime",
	"time":       "time",
	"uri":        "anyURI",
	"uriorcurie": "anyURI",
}

// RDFExporter describes the schema as an OWL ontology.  Element IRIs live
// under the schema id, with "/" appended unless the id already ends in
// "/" or "#".
type RDFExporter struct {
	format string
}

func NewRDFExporter(format string) RDFExporter {
	return RDFExporter{format: format}
}

func (e RDFExporter) Format() string { return FormatRDF }

func (e RDFExporter) Export(doc types.Document) ([]byte, error) {
	quads := SchemaQuads(doc)
	var buf bytes.Buffer
	if e.format == RDFFormatNQuads {
		writer := nquads.NewWriter(&buf)
		for _, q := range quads {
			if err := writer.WriteQuad(q); err != nil {
				return nil, rdfWriteError(err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, rdfWriteError(err)
		}
		return buf.Bytes(), nil
	}
	writeTurtle(&buf, rdfNamespace(doc), rdfPrefixLabel(doc), quads)
	return buf.Bytes(), nil
}

func rdfWriteError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write rdf export").
		WithCause(err)
}

// SchemaQuads builds the ontology statements for doc in document order.
func SchemaQuads(doc types.Document) []quad.Quad {
	resolver := core.NewReferenceResolver(doc)
	ns := rdfNamespace(doc)
	term := func(name string) quad.IRI { return quad.IRI(ns + url.PathEscape(name)) }
	prefixes := schemaPrefixes(doc)

	var out []quad.Quad
	add := func(subject quad.IRI, predicate quad.IRI, object quad.Value) {
		out = append(out, quad.Quad{Subject: subject, Predicate: predicate, Object: object})
	}
	describe := func(subject quad.IRI, label string, comment string) {
		add(subject, rdfsLabel, quad.String(label))
		if comment != "" {
			add(subject, rdfsComment, quad.String(comment))
		}
	}

	ontology := quad.IRI(strings.TrimRight(ns, "/#"))
	add(ontology, rdfType, owlOntology)
	describe(ontology, schemaTitle(doc), doc.Description())

	doc.Classes().Range(func(name string, element *types.Element) bool {
		subject := term(name)
		add(subject, rdfType, owlClass)
		describe(subject, name, element.Class.Description)
		parents, _ := resolver.Parents(name)
		for _, parent := range parents {
			if resolver.HasClass(parent) {
				add(subject, rdfsSubClassOf, term(parent))
			}
		}
		return true
	})

	doc.Slots().Range(func(name string, element *types.Element) bool {
		subject := term(name)
		slot := element.Slot
		switch resolver.ResolveRange(slot.Range) {
		case types.RangeClass, types.RangeEnum:
			add(subject, rdfType, owlObjectProperty)
			describe(subject, name, slot.Description)
			add(subject, rdfsRange, term(slot.Range))
		default:
			if base := resolver.BuiltinBase(slot.Range); base != "" {
				add(subject, rdfType, owlDatatypeProp)
				describe(subject, name, slot.Description)
				add(subject, rdfsRange, xsdIRI(base))
			} else {
				add(subject, rdfType, rdfProperty)
				describe(subject, name, slot.Description)
			}
		}
		if slot.Domain != "" && resolver.HasClass(slot.Domain) {
			add(subject, rdfsDomain, term(slot.Domain))
		}
		return true
	})

	doc.Types().Range(func(name string, element *types.Element) bool {
		subject := term(name)
		add(subject, rdfType, rdfsDatatype)
		describe(subject, name, element.Type.Description)
		if base := resolver.BuiltinBase(name); base != "" {
			add(subject, owlOnDatatype, xsdIRI(base))
		}
		return true
	})

	doc.Enums().Range(func(name string, element *types.Element) bool {
		subject := term(name)
		add(subject, rdfType, owlClass)
		describe(subject, name, element.Enum.Description)
		element.Enum.PermissibleValues.Range(func(value string, pv types.PermissibleValue) bool {
			individual := quad.IRI(string(subject) + "/" + url.PathEscape(value))
			add(individual, rdfType, subject)
			describe(individual, value, pv.Description)
			if meaning, ok := expandCURIE(pv.Meaning, prefixes); ok {
				add(individual, rdfsSeeAlso, quad.IRI(meaning))
			}
			return true
		})
		return true
	})
	return out
}

func xsdIRI(builtin string) quad.IRI {
	name, ok := xsdTypes[builtin]
	if !ok {
		name = "string"
	}
	return quad.IRI(nsXSD + name)
}

func rdfNamespace(doc types.Document) string {
	id := doc.ID
	if id == "" {
		id = types.DefaultID(schemaTitle(doc))
	}
	if strings.HasSuffix(id, "/") || strings.HasSuffix(id, "#") {
		return id
	}
	return id + "/"
}

func rdfPrefixLabel(doc types.Document) string {
	if label := schemaTitle(doc); turtlePrefixPattern.MatchString(label) {
		for _, known := range turtlePrefixes {
			if known[0] == label {
				return "schema"
			}
		}
		return label
	}
	return "schema"
}

// schemaPrefixes reads the prefixes metadata.  Each entry is either a
// plain IRI or a mapping carrying prefix_reference.
func schemaPrefixes(doc types.Document) map[string]string {
	out := map[string]string{}
	node, ok := doc.Metadata("prefixes")
	if !ok || node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		if reference, ok := types.MappingGet(value, "prefix_reference"); ok {
			value = reference
		}
		if iri, ok := types.ScalarValue(value); ok && iri != "" {
			out[key] = iri
		}
	}
	return out
}

// expandCURIE turns prefix:local into a full IRI.  Values that already
// look like IRIs are returned as they are.
func expandCURIE(value string, prefixes map[string]string) (string, bool) {
	if value == "" {
		return "", false
	}
	if strings.Contains(value, "://") {
		return value, true
	}
	prefix, local, ok := strings.Cut(value, ":")
	if !ok {
		return "", false
	}
	base, ok := prefixes[prefix]
	if !ok {
		return "", false
	}
	return base + local, true
}

// writeTurtle groups the statements by subject, in first-seen order, and
// abbreviates IRIs under the well-known namespaces and the schema
// namespace.
func writeTurtle(buf *bytes.Buffer, ns string, label string, quads []quad.Quad) {
	prefixes := append([][2]string{{label, ns}}, turtlePrefixes...)
	for _, prefix := range prefixes {
		fmt.Fprintf(buf, "@prefix %s: <%s> .\n", prefix[0], prefix[1])
	}

	var subjects []quad.Value
	grouped := map[quad.Value][]quad.Quad{}
	for _, q := range quads {
		if _, ok := grouped[q.Subject]; !ok {
			subjects = append(subjects, q.Subject)
		}
		grouped[q.Subject] = append(grouped[q.Subject], q)
	}
	for _, subject := range subjects {
		buf.WriteString("\n")
		buf.WriteString(turtleTerm(subject, prefixes))
		for i, q := range grouped[subject] {
			predicate := turtleTerm(q.Predicate, prefixes)
			if q.Predicate == rdfType {
				predicate = "a"
			}
			separator := " ;\n    "
			if i == 0 {
				separator = " "
			}
			fmt.Fprintf(buf, "%s%s %s", separator, predicate, turtleTerm(q.Object, prefixes))
		}
		buf.WriteString(" .\n")
	}
}

func turtleTerm(value quad.Value, prefixes [][2]string) string {
	iri, ok := value.(quad.IRI)
	if !ok {
		return value.String()
	}
	for _, prefix := range prefixes {
		local, found := strings.CutPrefix(string(iri), prefix[1])
		if found && turtleLocalPattern.MatchString(local) {
			return prefix[0] + ":" + local
		}
	}
	return value.String()
}
