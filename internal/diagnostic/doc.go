// Package diagnostic provides structured errors, warnings and notes
// for the fmtargs generator.
//
// Key capabilities:
//   - Unknown type reports with "did you mean" suggestions
//   - Unsupported record kind and duplicate name errors
//   - Per-record notes describing the classified shape
package diagnostic
