// Package fmtargs is the runtime contract targeted by fmtargs-generator.
//
// The generator emits, for every selected record type T, a zero-size
// descriptor implementing [Descriptor] plus an accessor method
//
//	func (T) FormatArgs() fmtargs.Descriptor[T]
//
// A format-string interpreter resolves an argument reference with
// [Descriptor.ValidateName] or [Descriptor.ValidateIndex] (see [Resolve]) and
// then asks for a renderer with [Descriptor.Child], or for a dynamic
// width/precision with [Descriptor.AsSize].
//
// # Contract
//
// ValidateIndex and Child never disagree: Child returns a renderer for every
// index ValidateIndex accepts and panics with an [IndexError] for every other
// index. AsSize follows the same rule for out-of-range indices, and reports
// ok == false for in-range fields that are not of type uint.
//
// Unknown names and non-size fields are ordinary "absent" results. Calling
// Child or AsSize with an unvalidated index is a caller bug.
package fmtargs
