package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// Field tags understood by the DocuSeal HTML template API.
const (
	tagText      = "text-field"
	tagDate      = "date-field"
	tagNumber    = "number-field"
	tagSignature = "signature-field"
	tagSelect    = "select-field"
)

type renderField struct {
	Field
	Tag       string
	Multiline bool
	Style     template.CSS
	OptionCSV string
}

type renderSection struct {
	Title      string
	Paragraphs []string
	Fields     []renderField
}

type renderDoc struct {
	Name     string
	Sections []renderSection
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; line-height: 1.5; margin: 40px; }
h1 { font-size: 20px; text-align: center; margin-bottom: 24px; }
h2 { font-size: 14px; border-bottom: 1px solid #ccc; padding-bottom: 4px; margin-top: 24px; }
.field { margin: 8px 0; }
.field label { display: block; font-weight: bold; margin-bottom: 2px; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{- range .Sections}}
<section>
<h2>{{.Title}}</h2>
{{- range .Paragraphs}}
<p>{{.}}</p>
{{- end}}
{{- range .Fields}}
<div class="field">
<label>{{.Name}}</label>
{{- if eq .Tag "select-field"}}
<select-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" options="{{.OptionCSV}}" style="{{.Style}}"></select-field>
{{- else if eq .Tag "signature-field"}}
<signature-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" style="{{.Style}}"></signature-field>
{{- else if eq .Tag "date-field"}}
<date-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" style="{{.Style}}"></date-field>
{{- else if eq .Tag "number-field"}}
<number-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" style="{{.Style}}"></number-field>
{{- else if .Multiline}}
<text-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" multiline="true" style="{{.Style}}"></text-field>
{{- else}}
<text-field name="{{.Name}}" role="{{.Role}}" required="{{.Required}}" style="{{.Style}}"></text-field>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

// Render produces the HTML body submitted to the e-signature provider.
func Render(schema Schema) (string, error) {
	doc := renderDoc{Name: schema.Name}
	for _, sec := range schema.Sections {
		rs := renderSection{Title: sec.Title, Paragraphs: sec.Paragraphs}
		for _, f := range sec.Fields {
			rf, err := toRenderField(f)
			if err != nil {
				return "", fmt.Errorf("render %s: %w", schema.Type, err)
			}
			rs.Fields = append(rs.Fields, rf)
		}
		doc.Sections = append(doc.Sections, rs)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render %s: %w", schema.Type, err)
	}
	return buf.String(), nil
}

func toRenderField(f Field) (renderField, error) {
	rf := renderField{Field: f}
	switch f.Kind {
	case enums.FieldKindText:
		rf.Tag, rf.Style = tagText, "width: 280px; height: 20px;"
	case enums.FieldKindTextarea:
		rf.Tag, rf.Multiline, rf.Style = tagText, true, "width: 100%; height: 80px;"
	case enums.FieldKindDate:
		rf.Tag, rf.Style = tagDate, "width: 140px; height: 20px;"
	case enums.FieldKindNumber:
		rf.Tag, rf.Style = tagNumber, "width: 140px; height: 20px;"
	case enums.FieldKindSignature:
		rf.Tag, rf.Style = tagSignature, "width: 200px; height: 60px;"
	case enums.FieldKindSelect:
		if len(f.Options) == 0 {
			return rf, fmt.Errorf("select field %q has no options", f.Name)
		}
		rf.Tag, rf.Style = tagSelect, "width: 200px; height: 20px;"
		rf.OptionCSV = strings.Join(f.Options, ",")
	default:
		return rf, fmt.Errorf("field %q has unknown kind %q", f.Name, f.Kind)
	}
	return rf, nil
}
