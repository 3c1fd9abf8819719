package analyze

import (
	"go/token"
	"go/types"
	"strconv"
)

//go:generate go tool stringer -type=Shape -trimprefix=Shape -output=shape_string.go

// Shape is the field layout of a record.
type Shape int

const (
	_ Shape = iota // zero value is not a valid shape

	ShapeNamed      // struct fields addressable by name and index
	ShapePositional // fields addressable by index only
	ShapeEmpty      // no addressable fields
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "fmtargs-generator/examples/records"
	Name    string // e.g., "Header"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeParam is one type parameter of a generic record.
type TypeParam struct {
	Name       string
	Constraint types.Type
}

// Record is a type selected for generation, classified by shape.
type Record struct {
	ID         TypeID
	Pos        token.Position
	TypeParams []TypeParam
	Shape      Shape
	// Fields holds the addressable fields in index order. It is empty for
	// ShapeEmpty.
	Fields []Field
}

// Len returns the number of addressable fields.
func (r *Record) Len() int {
	return len(r.Fields)
}

// IsGeneric returns true if the record declares type parameters.
func (r *Record) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// SizeFields returns the fields declared as uint.
func (r *Record) SizeFields() []Field {
	var out []Field

	for _, f := range r.Fields {
		if f.IsSize {
			out = append(out, f)
		}
	}

	return out
}

// Field is one addressable field of a record.
type Field struct {
	// Index is the zero-based position among the record's addressable fields.
	Index int
	// Name is the name a format string uses for the field. Empty unless the
	// record is ShapeNamed.
	Name string
	// GoName is the Go field name. Empty for array elements.
	GoName string
	// Type is the declared field type.
	Type types.Type
	// IsSize is true if Type is exactly the predeclared uint.
	IsSize bool
}

// Access returns the selector that narrows a record value to this field,
// e.g. ".Width" or "[1]".
func (f Field) Access() string {
	if f.GoName == "" {
		return "[" + strconv.Itoa(f.Index) + "]"
	}

	return "." + f.GoName
}

// Label returns a human-readable field label for diagnostics.
func (f Field) Label() string {
	switch {
	case f.Name != "" && f.Name != f.GoName:
		return f.GoName + " (" + f.Name + ")"
	case f.GoName != "":
		return f.GoName
	default:
		return f.Access()
	}
}
