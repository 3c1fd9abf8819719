package gen

import "text/template"

// asSize emits an extractor for every uint field. The closure is typed
// func(*T) *uint, so a field of any other type fails to compile instead of
// being converted. Fields of other types report absent; invalid indices panic.
func asSize(v *recordView) (string, error) {
	return renderFragment(asSizeTemplate, v)
}

var asSizeTemplate = template.Must(template.New("asSize").Parse(`
func ({{.DescType}}) AsSize(index int) ({{.RT}}.SizeFunc[{{.Type}}], bool) {
{{- if .Empty}}
	panic({{.RT}}.BadIndex(index))
{{- else}}
	switch index {
{{- range .Fields}}{{if .IsSize}}
	case {{.Index}}:
		return {{$.RT}}.AsSize(func(r *{{$.Type}}) *uint { return &r{{.Access}} }), true
{{- end}}{{end}}
{{- if .NotSize}}
	case {{.NotSize}}:
		return nil, false
{{- end}}
	default:
		panic({{.RT}}.BadIndex(index))
	}
{{- end}}
}
`))
