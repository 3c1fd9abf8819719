package fmtargs

import (
	"fmt"
	"strconv"
)

// Bind returns a fmt.Formatter that renders r with f, whatever verb it is
// formatted with. Width, precision and flags reach f through the fmt.State.
//
//	d := fmtargs.DescriptorOf[Header]()
//	fmt.Printf("%8v\n", fmtargs.Bind(&h, d.Child(0, fmtargs.LowerHex)))
func Bind[T any](r *T, f RenderFunc[T]) fmt.Formatter {
	return bound[T]{r: r, f: f}
}

type bound[T any] struct {
	r *T
	f RenderFunc[T]
}

func (b bound[T]) Format(s fmt.State, _ rune) {
	if err := b.f(b.r, s); err != nil {
		fmt.Fprintf(s, "%%!(ERROR=%v)", err)
	}
}

// DescriptorOf returns the descriptor generated for T.
func DescriptorOf[T FormatArgs[T]]() Descriptor[T] {
	var zero T
	return zero.FormatArgs()
}

// Resolve turns an argument reference into a field index. A reference made
// only of decimal digits is checked with ValidateIndex; anything else is a
// name and goes through ValidateName.
func Resolve[T any](d Descriptor[T], ref string) (int, bool) {
	if ref == "" {
		return 0, false
	}

	if !isDecimal(ref) {
		return d.ValidateName(ref)
	}

	index, err := strconv.Atoi(ref)
	if err != nil || !d.ValidateIndex(index) {
		return 0, false
	}

	return index, true
}

func isDecimal(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
