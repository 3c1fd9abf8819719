package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"
)

// TagKey is the struct tag consulted for field names. `fmtargs:"width"`
// renames a field, `fmtargs:"-"` removes it from the index space.
const TagKey = "fmtargs"

// MaxArrayLen bounds the length of array records; every element becomes a
// case in the generated switches.
const MaxArrayLen = 1024

// AccessorName is the method generated on every record type.
const AccessorName = "FormatArgs"

// descriptorPrefix is prepended to a record name to name its descriptor type.
const descriptorPrefix = "fmtargs"

// DescriptorName returns the name of the descriptor type generated for the
// record type typeName.
func DescriptorName(typeName string) string {
	return descriptorPrefix + typeName
}

// reservedIdents are the identifiers generated method signatures and bodies
// refer to. A type parameter with one of these names would shadow them.
var reservedIdents = map[string]bool{
	"name":    true,
	"index":   true,
	"c":       true,
	"r":       true,
	"fmtargs": true,

	"int":    true,
	"bool":   true,
	"string": true,
	"uint":   true,
	"any":    true,
	"nil":    true,
	"true":   true,
	"false":  true,
	"panic":  true,
}

// ClassifyOptions adjusts how a type is classified.
type ClassifyOptions struct {
	// Positional makes a struct record addressable by index only.
	Positional bool
}

// Classify turns a declared type into a Record. Structs and arrays are
// records; every other kind of type fails with ErrUnsupportedKind.
func Classify(obj *types.TypeName, opts ClassifyOptions) (*Record, error) {
	if obj.IsAlias() {
		return nil, fmt.Errorf("%w: %s is an alias, select the aliased type", ErrUnsupportedKind, obj.Name())
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a defined type", ErrUnsupportedKind, obj.Name())
	}

	if err := checkGenerated(obj, named); err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Name(), err)
	}

	rec := &Record{
		ID: TypeID{Name: obj.Name()},
	}
	if obj.Pkg() != nil {
		rec.ID.PkgPath = obj.Pkg().Path()
	}

	params, err := typeParams(named)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Name(), err)
	}

	rec.TypeParams = params

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		err = classifyStruct(rec, ut, opts)

	case *types.Array:
		err = classifyArray(rec, ut)

	default:
		err = fmt.Errorf("%w: underlying type %s", ErrUnsupportedKind, ut)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", obj.Name(), err)
	}

	return rec, nil
}

// checkGenerated rejects types whose declarations collide with the generated
// accessor method or descriptor type.
func checkGenerated(obj *types.TypeName, named *types.Named) error {
	for i := range named.NumMethods() {
		if named.Method(i).Name() == AccessorName {
			return fmt.Errorf("%w: method %s is already declared", ErrReservedName, AccessorName)
		}
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			if st.Field(i).Name() == AccessorName {
				return fmt.Errorf("%w: field %s collides with the generated method", ErrReservedName, AccessorName)
			}
		}
	}

	if obj.Pkg() != nil {
		desc := DescriptorName(obj.Name())
		if obj.Pkg().Scope().Lookup(desc) != nil {
			return fmt.Errorf("%w: %s is already declared in the package", ErrReservedName, desc)
		}
	}

	return nil
}

func typeParams(named *types.Named) ([]TypeParam, error) {
	list := named.TypeParams()
	if list == nil {
		return nil, nil
	}

	params := make([]TypeParam, 0, list.Len())

	for i := range list.Len() {
		tp := list.At(i)

		name := tp.Obj().Name()
		if name == "_" {
			name = fmt.Sprintf("_T%d", i)
		}

		if reservedIdents[name] {
			return nil, fmt.Errorf("%w: %s", ErrReservedName, name)
		}

		params = append(params, TypeParam{
			Name:       name,
			Constraint: tp.Constraint(),
		})
	}

	return params, nil
}

func classifyStruct(rec *Record, st *types.Struct, opts ClassifyOptions) error {
	// Format-string name -> Go field name, for duplicate detection.
	seen := make(map[string]string)

	for i := range st.NumFields() {
		v := st.Field(i)

		// Blank fields cannot be selected.
		if v.Name() == "_" {
			continue
		}

		tag, _, _ := strings.Cut(reflect.StructTag(st.Tag(i)).Get(TagKey), ",")
		if tag == "-" {
			continue
		}

		field := Field{
			Index:  len(rec.Fields),
			GoName: v.Name(),
			Type:   v.Type(),
			IsSize: isSize(v.Type()),
		}

		if !opts.Positional {
			field.Name = v.Name()
			if tag != "" {
				field.Name = tag
			}

			if isDecimal(field.Name) {
				return fmt.Errorf("%w: %s is renamed %q, which reads as an index", ErrReservedName, v.Name(), field.Name)
			}

			if prev, dup := seen[field.Name]; dup {
				return fmt.Errorf("%w: %q names both %s and %s", ErrDuplicateName, field.Name, prev, v.Name())
			}

			seen[field.Name] = v.Name()
		}

		rec.Fields = append(rec.Fields, field)
	}

	switch {
	case len(rec.Fields) == 0:
		rec.Shape = ShapeEmpty
	case opts.Positional:
		rec.Shape = ShapePositional
	default:
		rec.Shape = ShapeNamed
	}

	return nil
}

func classifyArray(rec *Record, at *types.Array) error {
	n := at.Len()
	if n > MaxArrayLen {
		return fmt.Errorf("%w: array of %d elements exceeds %d", ErrUnsupportedKind, n, MaxArrayLen)
	}

	if n == 0 {
		rec.Shape = ShapeEmpty
		return nil
	}

	size := isSize(at.Elem())
	for i := range int(n) {
		rec.Fields = append(rec.Fields, Field{
			Index:  i,
			Type:   at.Elem(),
			IsSize: size,
		})
	}

	rec.Shape = ShapePositional

	return nil
}

// isSize reports whether t is exactly uint. Defined types over uint are not.
func isSize(t types.Type) bool {
	return types.Identical(types.Unalias(t), types.Typ[types.Uint])
}

// isDecimal reports whether s is made only of ASCII digits. Such references
// resolve as indices, never as names.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
