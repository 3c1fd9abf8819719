// Package gen emits fmtargs descriptors for classified records.
//
// Generation uses text/template + go/format. Each record gets one zero-size
// descriptor type built from four independent fragments:
//   - ValidateName / ValidateIndex (resolver.go)
//   - Child, the per-field render dispatcher (dispatch.go)
//   - AsSize, the uint field extractor (size.go)
//
// assemble.go joins the fragments with the record's type parameters and the
// FormatArgs accessor, and generator.go renders one file per package.
package gen
