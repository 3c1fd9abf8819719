package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases s and removes '_', '-' and spaces, so that
// "header_width", "HeaderWidth" and "header-width" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
