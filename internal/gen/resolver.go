package gen

import "text/template"

// validateName maps format-string names to indices. Only named records have
// names; the other shapes resolve nothing.
func validateName(v *recordView) (string, error) {
	return renderFragment(validateNameTemplate, v)
}

// validateIndex accepts exactly [0, Len). Named records are index-addressable
// too.
func validateIndex(v *recordView) (string, error) {
	return renderFragment(validateIndexTemplate, v)
}

var validateNameTemplate = template.Must(template.New("validateName").Parse(`
func ({{.DescType}}) ValidateName(name string) (int, bool) {
{{- if .Named}}
	switch name {
{{- range .Fields}}
	case {{.Name}}:
		return {{.Index}}, true
{{- end}}
	default:
		return 0, false
	}
{{- else}}
	return 0, false
{{- end}}
}
`))

var validateIndexTemplate = template.Must(template.New("validateIndex").Parse(`
func ({{.DescType}}) ValidateIndex(index int) bool {
{{- if .Empty}}
	return false
{{- else}}
	return index >= 0 && index < {{.Len}}
{{- end}}
}
`))
