package adapters

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lmtk/internal/core"
	"lmtk/internal/types"
)

var htmlPage = template.Must(template.New("schema").Funcs(template.FuncMap{
	"join":   strings.Join,
	"anchor": htmlAnchor,
}).Parse(schemaPageTemplate))

// HTMLExporter renders a single self-contained page describing every
// element, with cross links between classes, slots, enums and types.
type HTMLExporter struct{}

func NewHTMLExporter() HTMLExporter {
	return HTMLExporter{}
}

func (e HTMLExporter) Format() string { return FormatHTML }

func (e HTMLExporter) Export(doc types.Document) ([]byte, error) {
	summary, err := core.Summarize(doc, nil, true)
	if err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"Title":       schemaTitle(doc),
		"ID":          doc.ID,
		"Description": doc.Description(),
		"Sections":    summary.Sections,
	}

	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, data); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render html export").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

func htmlAnchor(section string, name string) string {
	prefix := section
	if kind, ok := types.EntityKindOf(section); ok {
		prefix = string(kind)
	}
	return prefix + "-" + strings.ReplaceAll(name, " ", "_")
}

const schemaPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .ID}}<p><code>{{.ID}}</code></p>{{end}}
{{if .Description}}<p>{{.Description}}</p>{{end}}
<nav><ul>
{{range .Sections}}<li><a href="#{{.Name}}">{{.Name}}</a> ({{len .Elements}})</li>
{{end}}</ul></nav>
{{range $section := .Sections}}
<h2 id="{{$section.Name}}">{{$section.Name}}</h2>
{{if not $section.Details}}<p>None.</p>{{else}}
<table>
{{if eq $section.Name "classes"}}<tr><th>Name</th><th>Description</th><th>is_a</th><th>Mixins</th><th>Slots</th></tr>
{{range $section.Details}}<tr id="{{anchor "classes" .Name}}"><td>{{.Name}}</td><td>{{.Description}}</td><td>{{if .IsA}}<a href="#{{anchor "classes" .IsA}}">{{.IsA}}</a>{{end}}</td><td>{{join .Mixins ", "}}</td><td>{{range $i, $slot := .Slots}}{{if $i}}, {{end}}<a href="#{{anchor "slots" $slot}}">{{$slot}}</a>{{end}}</td></tr>
{{end}}{{else if eq $section.Name "slots"}}<tr><th>Name</th><th>Description</th><th>Range</th><th>Required</th><th>Multivalued</th><th>Pattern</th></tr>
{{range $section.Details}}<tr id="{{anchor "slots" .Name}}"><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.Range}}</td><td>{{if .Required}}yes{{end}}</td><td>{{if .Multivalued}}yes{{end}}</td><td>{{if .Pattern}}<code>{{.Pattern}}</code>{{end}}</td></tr>
{{end}}{{else if eq $section.Name "enums"}}<tr><th>Name</th><th>Description</th><th>Permissible values</th></tr>
{{range $section.Details}}<tr id="{{anchor "enums" .Name}}"><td>{{.Name}}</td><td>{{.Description}}</td><td>{{join .PermissibleValues ", "}}</td></tr>
{{end}}{{else}}<tr><th>Name</th><th>Description</th><th>Base</th><th>URI</th></tr>
{{range $section.Details}}<tr id="{{anchor "types" .Name}}"><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.Base}}</td><td>{{.URI}}</td></tr>
{{end}}{{end}}</table>
{{end}}{{end}}
</body>
</html>
`
