package analyze

import "errors"

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedKind = errors.New("unsupported record kind")
	ErrDuplicateName   = errors.New("duplicate field name")
	ErrTypeNotFound    = errors.New("type not found")
	ErrReservedName    = errors.New("type parameter shadows a generated identifier")
)
