package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"fmtargs-generator/internal/analyze"
)

const (
	testPkgPath = "example.com/p"
	depPkgPath  = "example.com/dep"
)

// depSource is importable from test packages as "example.com/dep".
const depSource = `package dep

type Stringer interface{ String() string }

type Value struct{ N int }
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) {
	return f(path)
}

func typeCheck(t *testing.T, fset *token.FileSet, path, src string, imp types.Importer) *types.Package {
	t.Helper()

	file, err := parser.ParseFile(fset, path+".go", src, parser.ParseComments)
	require.NoError(t, err)

	pkg, err := (&types.Config{Importer: imp}).Check(path, fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	return pkg
}

// testPackage type-checks src as package p. src may import "example.com/dep".
func testPackage(t *testing.T, src string) *analyze.Package {
	t.Helper()

	fset := token.NewFileSet()
	dep := typeCheck(t, fset, depPkgPath, depSource, nil)

	imp := importerFunc(func(path string) (*types.Package, error) {
		if path == depPkgPath {
			return dep, nil
		}

		return nil, fmt.Errorf("unexpected import %q", path)
	})

	return &analyze.Package{
		Path:  testPkgPath,
		Name:  "p",
		Dir:   t.TempDir(),
		Fset:  fset,
		Types: typeCheck(t, fset, testPkgPath, "package p\n\n"+src, imp),
	}
}

// classify returns the records for names, classified with opts.
func classify(t *testing.T, pkg *analyze.Package, opts analyze.ClassifyOptions, names ...string) []*analyze.Record {
	t.Helper()

	records := make([]*analyze.Record, 0, len(names))

	for _, name := range names {
		obj := pkg.Lookup(name)
		require.NotNil(t, obj, name)

		rec, err := analyze.Classify(obj, opts)
		require.NoError(t, err)

		records = append(records, rec)
	}

	return records
}

// generate renders the named types of src with the default configuration.
func generate(t *testing.T, src string, opts analyze.ClassifyOptions, names ...string) string {
	t.Helper()

	pkg := testPackage(t, src)

	file, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(pkg, classify(t, pkg, opts, names...))
	require.NoError(t, err)

	return string(file.Content)
}
