package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPkgPath = "example.com/p"

// checkSource type-checks src as the body of package p. src must not import
// anything.
func checkSource(t *testing.T, src string) *Package {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "p.go", "package p\n\n"+src, parser.ParseComments)
	require.NoError(t, err)

	files := []*ast.File{file}

	pkg, err := (&types.Config{}).Check(testPkgPath, fset, files, nil)
	require.NoError(t, err)

	directives, err := scanDirectives(fset, files)
	require.NoError(t, err)

	return &Package{
		Path:       testPkgPath,
		Name:       "p",
		Fset:       fset,
		Types:      pkg,
		Directives: directives,
	}
}

// classifySource classifies the type name declared in src.
func classifySource(t *testing.T, src, name string, opts ClassifyOptions) (*Record, error) {
	t.Helper()

	obj := checkSource(t, src).Lookup(name)
	require.NotNil(t, obj, "type %s not declared", name)

	return Classify(obj, opts)
}
