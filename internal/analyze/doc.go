// Package analyze loads Go packages and classifies record types.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find the
// types selected for generation and to turn each of them into a [Record]:
// its identity, its type parameters, its [Shape] and its addressable fields.
//
// Key types:
//   - TypeID: package import path + type name
//   - Record: a classified record type, ready for code generation
//   - Field: one addressable field of a record, with its index
//   - Shape: named, positional or empty
package analyze
