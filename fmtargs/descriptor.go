package fmtargs

import "fmt"

// RenderFunc renders one field of *T into the sink.
type RenderFunc[T any] func(r *T, s fmt.State) error

// SizeFunc returns a pointer to a field of *T declared as uint.
type SizeFunc[T any] func(r *T) *uint

// Descriptor is the dispatch table generated for a record type T.
type Descriptor[T any] interface {
	// ValidateName maps a field name to its index.
	// Positional and empty records never resolve a name.
	ValidateName(name string) (int, bool)
	// ValidateIndex reports whether index addresses a field of T.
	ValidateIndex(index int) bool
	// Child returns a renderer for the field at index using capability c.
	// It panics with an IndexError when ValidateIndex(index) is false.
	Child(index int, c Capability) RenderFunc[T]
	// AsSize returns an extractor for the field at index when that field is
	// declared as uint. It panics with an IndexError when ValidateIndex(index)
	// is false.
	AsSize(index int) (SizeFunc[T], bool)
}

// FormatArgs is implemented by every generated record type.
type FormatArgs[T any] interface {
	FormatArgs() Descriptor[T]
}

// Combine narrows *T to one of its fields and renders that field with c.
// The narrowing closure is statically typed by the generated code, so a
// reference to a missing or mistyped field does not compile.
func Combine[T, V any](c Capability, narrow func(r *T) *V) RenderFunc[T] {
	return func(r *T, s fmt.State) error {
		return c.Render(s, *narrow(r))
	}
}

// AsSize adapts a narrowing function to a SizeFunc. Only fields declared as
// uint can be passed here: any other field type fails to compile.
func AsSize[T any](narrow func(r *T) *uint) SizeFunc[T] {
	return SizeFunc[T](narrow)
}
