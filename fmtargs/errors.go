package fmtargs

import (
	"errors"
	"fmt"
)

// ErrUnknownVerb is returned by CapabilityFor for verbs with no capability.
var ErrUnknownVerb = errors.New("unknown format verb")

// IndexError is the panic value raised by generated descriptors when Child or
// AsSize is called with an index rejected by ValidateIndex. It is a comparable
// value, so two panics for the same index are equal.
type IndexError struct {
	Index int
}

// BadIndex returns the panic value for an out-of-contract index.
func BadIndex(index int) IndexError {
	return IndexError{Index: index}
}

func (e IndexError) Error() string {
	return fmt.Sprintf("bad index %d", e.Index)
}
