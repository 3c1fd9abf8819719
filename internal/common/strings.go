package common

import "strings"

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// SplitList splits a comma-separated flag value, dropping empty items and
// surrounding spaces.
func SplitList(s string) []string {
	var out []string

	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
