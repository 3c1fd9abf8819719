package gen

import (
	"bytes"
	"fmt"
	"text/template"
)

// fragment renders one method of a descriptor.
type fragment func(v *recordView) (string, error)

func renderFragment(tmpl *template.Template, v *recordView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
