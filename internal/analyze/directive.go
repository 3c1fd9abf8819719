package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// DirectivePrefix marks a type declaration for generation:
//
//	//fmtargs:derive
//	type Header struct { ... }
//
// The option "positional" makes a struct addressable by index only.
const DirectivePrefix = "//fmtargs:derive"

// Directive is a parsed derive directive.
type Directive struct {
	TypeName   string
	Positional bool
	Pos        token.Position
}

// ParseDirective parses one comment line. It returns ok == false for comments
// that are not derive directives.
func ParseDirective(text string) (d Directive, ok bool, err error) {
	rest, found := strings.CutPrefix(text, DirectivePrefix)
	if !found {
		return Directive{}, false, nil
	}

	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Directive{}, false, nil
	}

	for _, opt := range strings.Fields(rest) {
		switch opt {
		case "positional":
			d.Positional = true
		default:
			return Directive{}, true, fmt.Errorf("unknown %s option %q", DirectivePrefix, opt)
		}
	}

	return d, true, nil
}

// scanDirectives collects the derive directives attached to type declarations.
func scanDirectives(fset *token.FileSet, files []*ast.File) (map[string]Directive, error) {
	out := make(map[string]Directive)

	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				d, ok, err := directiveOf(fset, doc)
				if err != nil {
					return nil, err
				}

				if !ok {
					continue
				}

				d.TypeName = ts.Name.Name
				out[d.TypeName] = d
			}
		}
	}

	return out, nil
}

func directiveOf(fset *token.FileSet, doc *ast.CommentGroup) (Directive, bool, error) {
	if doc == nil {
		return Directive{}, false, nil
	}

	for _, c := range doc.List {
		d, ok, err := ParseDirective(c.Text)
		if err != nil {
			return Directive{}, false, fmt.Errorf("%s: %w", fset.Position(c.Pos()), err)
		}

		if ok {
			d.Pos = fset.Position(c.Pos())
			return d, true, nil
		}
	}

	return Directive{}, false, nil
}
