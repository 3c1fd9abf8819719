package gen

import "text/template"

// child emits one case per field. Each case narrows the record to the field
// with a typed closure and hands it to the runtime Combine together with the
// requested capability. Every other index panics.
func child(v *recordView) (string, error) {
	return renderFragment(childTemplate, v)
}

var childTemplate = template.Must(template.New("child").Parse(`
func ({{.DescType}}) Child(index int, c {{.RT}}.Capability) {{.RT}}.RenderFunc[{{.Type}}] {
{{- if .Empty}}
	panic({{.RT}}.BadIndex(index))
{{- else}}
	switch index {
{{- range .Fields}}
	case {{.Index}}:
		return {{$.RT}}.Combine(c, func(r *{{$.Type}}) *{{.Type}} { return &r{{.Access}} })
{{- end}}
	default:
		panic({{.RT}}.BadIndex(index))
	}
{{- end}}
}
`))
