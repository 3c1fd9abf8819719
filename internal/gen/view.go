package gen

import (
	"strconv"
	"strings"

	"fmtargs-generator/internal/analyze"
)

// recordView is the template-facing form of a record. Types are already
// qualified for the file being generated.
type recordView struct {
	RT       string // local name of the runtime package
	Name     string // e.g. "Labeled"
	Type     string // e.g. "Labeled[T]"
	Desc     string // e.g. "fmtargsLabeled"
	DescType string // e.g. "fmtargsLabeled[T]"
	Params   string // e.g. "[T fmt.Stringer]"
	Shape    analyze.Shape
	Len      int
	Fields   []fieldView
	// NotSize lists, comma-separated, the indices of fields that are not uint.
	NotSize string
}

// fieldView is the template-facing form of a field.
type fieldView struct {
	Index  int
	Name   string // quoted Go string literal, empty for positional fields
	Type   string
	Access string
	IsSize bool
}

// Named returns true if names resolve to indices.
func (v *recordView) Named() bool {
	return v.Shape == analyze.ShapeNamed
}

// Empty returns true if no index is valid.
func (v *recordView) Empty() bool {
	return v.Shape == analyze.ShapeEmpty
}

func newRecordView(rec *analyze.Record, rt string, imports *importSet) *recordView {
	v := &recordView{
		RT:    rt,
		Name:  rec.ID.Name,
		Desc:  analyze.DescriptorName(rec.ID.Name),
		Shape: rec.Shape,
		Len:   rec.Len(),
	}

	args := ""
	if rec.IsGeneric() {
		names := make([]string, 0, len(rec.TypeParams))
		decls := make([]string, 0, len(rec.TypeParams))

		for _, tp := range rec.TypeParams {
			names = append(names, tp.Name)
			decls = append(decls, tp.Name+" "+imports.typeString(tp.Constraint))
		}

		args = "[" + strings.Join(names, ", ") + "]"
		v.Params = "[" + strings.Join(decls, ", ") + "]"
	}

	v.Type = v.Name + args
	v.DescType = v.Desc + args

	var notSize []string

	for _, f := range rec.Fields {
		fv := fieldView{
			Index:  f.Index,
			Type:   imports.typeString(f.Type),
			Access: f.Access(),
			IsSize: f.IsSize,
		}
		if f.Name != "" {
			fv.Name = strconv.Quote(f.Name)
		}

		if !f.IsSize {
			notSize = append(notSize, strconv.Itoa(f.Index))
		}

		v.Fields = append(v.Fields, fv)
	}

	v.NotSize = strings.Join(notSize, ", ")

	return v
}
