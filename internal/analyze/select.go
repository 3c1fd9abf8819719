package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"sort"

	"go.uber.org/zap"

	"fmtargs-generator/internal/diagnostic"
	"fmtargs-generator/internal/match"
)

// maxSuggestions bounds the "did you mean" list for unknown type names.
const maxSuggestions = 3

// Selection names the records to generate in one package, in addition to
// the types carrying a derive directive.
type Selection struct {
	// Types lists type names to select.
	Types []string
	// Positional lists struct types that are addressable by index only.
	Positional []string
}

// Select classifies the selected types of pkg. Records are returned in source
// order. Every problem is reported as a diagnostic; records that fail to
// classify are left out of the result.
func (l *Loader) Select(pkg *Package, sel Selection) ([]*Record, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	positional := make(map[string]bool, len(sel.Positional))
	for _, name := range sel.Positional {
		positional[name] = true
	}

	wanted := make(map[string]bool)
	for name, d := range pkg.Directives {
		wanted[name] = true
		if d.Positional {
			positional[name] = true
		}
	}

	for _, name := range sel.Types {
		wanted[name] = true
	}

	// Positional entries select their type too.
	for name := range positional {
		wanted[name] = true
	}

	var objs []*typesObj

	for name := range wanted {
		obj := pkg.Lookup(name)
		if obj == nil {
			err := fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, pkg.Path)
			diags.AddError(diagnostic.CodeTypeNotFound, err, name, token.Position{},
				match.Suggest(name, pkg.TypeNames(), maxSuggestions)...)

			continue
		}

		objs = append(objs, &typesObj{obj: obj, pos: pkg.Fset.Position(obj.Pos())})
	}

	sort.Slice(objs, func(i, j int) bool {
		a, b := objs[i].pos, objs[j].pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}

		return a.Offset < b.Offset
	})

	records := make([]*Record, 0, len(objs))

	for _, o := range objs {
		name := o.obj.Name()

		rec, err := Classify(o.obj, ClassifyOptions{Positional: positional[name]})
		if err != nil {
			diags.AddError(codeOf(err), err, name, o.pos)
			continue
		}

		rec.Pos = o.pos

		if _, isArray := o.obj.Type().Underlying().(*types.Array); isArray && positional[name] {
			diags.AddWarning(diagnostic.CodeIgnoredOption,
				"positional has no effect on array records", name, o.pos)
		}

		diags.AddInfo(diagnostic.CodeRecord,
			fmt.Sprintf("%s record with %d fields (%d size)", rec.Shape, rec.Len(), len(rec.SizeFields())),
			name, o.pos)

		l.log.Debug("classified record",
			zap.Stringer("type", rec.ID),
			zap.Stringer("shape", rec.Shape),
			zap.Int("fields", rec.Len()),
			zap.Int("type_params", len(rec.TypeParams)))

		records = append(records, rec)
	}

	return records, diags
}

type typesObj struct {
	obj *types.TypeName
	pos token.Position
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return diagnostic.CodeDuplicateName
	case errors.Is(err, ErrReservedName):
		return diagnostic.CodeReservedName
	default:
		return diagnostic.CodeUnsupportedKind
	}
}

// Within returns the part of sel naming types declared in pkg. It is used when
// one selection is applied to every package matched by a pattern.
func (s Selection) Within(pkg *Package) Selection {
	keep := func(names []string) []string {
		var out []string

		for _, name := range names {
			if pkg.Lookup(name) != nil {
				out = append(out, name)
			}
		}

		return out
	}

	return Selection{Types: keep(s.Types), Positional: keep(s.Positional)}
}

// Names returns every type name the selection mentions.
func (s Selection) Names() []string {
	return append(append([]string(nil), s.Types...), s.Positional...)
}
