package gen

import (
	"fmt"
	"strings"
	"text/template"

	"fmtargs-generator/internal/analyze"
)

// fragments are the descriptor methods, in output order.
var fragments = []struct {
	name string
	fn   fragment
}{
	{"ValidateName", validateName},
	{"ValidateIndex", validateIndex},
	{"Child", child},
	{"AsSize", asSize},
}

// assembleData feeds recordTemplate.
type assembleData struct {
	*recordView
	Methods string
}

// assemble renders the full descriptor of one record: the descriptor type,
// the FormatArgs accessor and the four fragments.
func assemble(rec *analyze.Record, rt string, imports *importSet) (string, error) {
	v := newRecordView(rec, rt, imports)

	var methods strings.Builder

	for _, f := range fragments {
		src, err := f.fn(v)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", rec.ID.Name, f.name, err)
		}

		methods.WriteString(src)
	}

	return renderAssembly(&assembleData{recordView: v, Methods: methods.String()})
}

func renderAssembly(data *assembleData) (string, error) {
	var b strings.Builder
	if err := recordTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("executing record template: %w", err)
	}

	return b.String(), nil
}

var recordTemplate = template.Must(template.New("record").Parse(`
// {{.Desc}} is the fmtargs descriptor of {{.Name}}.
type {{.Desc}}{{.Params}} struct{}

// FormatArgs returns the fmtargs descriptor of {{.Name}}.
func ({{.Type}}) FormatArgs() {{.RT}}.Descriptor[{{.Type}}] {
	return {{.DescType}}{}
}
{{.Methods}}`))
