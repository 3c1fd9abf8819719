package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmtargs-generator/internal/analyze"
)

func TestGenerator_Header(t *testing.T) {
	content := generate(t, "type Header struct{ Width uint }", analyze.ClassifyOptions{}, "Header")

	assert.Contains(t, content, "// Code generated by fmtargs-generator. DO NOT EDIT.\n\n//go:build !fmtargsgen\n\npackage p\n")
	assert.Contains(t, content, "import (\n\t\"fmtargs-generator/fmtargs\"\n)\n")
}

func TestGenerator_Named(t *testing.T) {
	content := generate(t, "type Header struct {\n\tWidth uint `fmtargs:\"width\"`\n\tName string\n}",
		analyze.ClassifyOptions{}, "Header")

	assert.Contains(t, content, `// fmtargsHeader is the fmtargs descriptor of Header.
type fmtargsHeader struct{}

// FormatArgs returns the fmtargs descriptor of Header.
func (Header) FormatArgs() fmtargs.Descriptor[Header] {
	return fmtargsHeader{}
}`)

	assert.Contains(t, content, `func (fmtargsHeader) ValidateName(name string) (int, bool) {
	switch name {
	case "width":
		return 0, true
	case "Name":
		return 1, true
	default:
		return 0, false
	}
}`)

	assert.Contains(t, content, `func (fmtargsHeader) ValidateIndex(index int) bool {
	return index >= 0 && index < 2
}`)

	assert.Contains(t, content, `func (fmtargsHeader) Child(index int, c fmtargs.Capability) fmtargs.RenderFunc[Header] {
	switch index {
	case 0:
		return fmtargs.Combine(c, func(r *Header) *uint { return &r.Width })
	case 1:
		return fmtargs.Combine(c, func(r *Header) *string { return &r.Name })
	default:
		panic(fmtargs.BadIndex(index))
	}
}`)

	assert.Contains(t, content, `func (fmtargsHeader) AsSize(index int) (fmtargs.SizeFunc[Header], bool) {
	switch index {
	case 0:
		return fmtargs.AsSize(func(r *Header) *uint { return &r.Width }), true
	case 1:
		return nil, false
	default:
		panic(fmtargs.BadIndex(index))
	}
}`)
}

func TestGenerator_PositionalStruct(t *testing.T) {
	content := generate(t, "type Span struct{ Start, End uint }", analyze.ClassifyOptions{Positional: true}, "Span")

	assert.Contains(t, content, `func (fmtargsSpan) ValidateName(name string) (int, bool) {
	return 0, false
}`)
	assert.Contains(t, content, "return fmtargs.Combine(c, func(r *Span) *uint { return &r.End })")

	// Every field is a size, so there is no absent case.
	assert.Contains(t, content, `		return fmtargs.AsSize(func(r *Span) *uint { return &r.End }), true
	default:`)
	assert.NotContains(t, content, "return nil, false")
}

func TestGenerator_Array(t *testing.T) {
	content := generate(t, "type Triple [3]int8", analyze.ClassifyOptions{}, "Triple")

	assert.Contains(t, content, "return index >= 0 && index < 3")
	assert.Contains(t, content, "return fmtargs.Combine(c, func(r *Triple) *int8 { return &r[2] })")
	assert.Contains(t, content, `	switch index {
	case 0, 1, 2:
		return nil, false
	default:`)
}

func TestGenerator_Empty(t *testing.T) {
	content := generate(t, "type Unit struct{}\n\ntype Zero [0]uint", analyze.ClassifyOptions{}, "Unit", "Zero")

	assert.Contains(t, content, `func (fmtargsUnit) ValidateIndex(index int) bool {
	return false
}`)
	assert.Contains(t, content, `func (fmtargsUnit) Child(index int, c fmtargs.Capability) fmtargs.RenderFunc[Unit] {
	panic(fmtargs.BadIndex(index))
}`)
	assert.Contains(t, content, `func (fmtargsZero) AsSize(index int) (fmtargs.SizeFunc[Zero], bool) {
	panic(fmtargs.BadIndex(index))
}`)
	assert.NotContains(t, content, "switch")
}

func TestGenerator_Generic(t *testing.T) {
	content := generate(t, `import "example.com/dep"

type Labeled[T dep.Stringer, _ any] struct {
	Label T
	Pad   uint
}`, analyze.ClassifyOptions{}, "Labeled")

	assert.Contains(t, content, "import (\n\t\"example.com/dep\"\n\t\"fmtargs-generator/fmtargs\"\n)")
	assert.Contains(t, content, "type fmtargsLabeled[T dep.Stringer, _T1 any] struct{}")
	assert.Contains(t, content, `func (Labeled[T, _T1]) FormatArgs() fmtargs.Descriptor[Labeled[T, _T1]] {
	return fmtargsLabeled[T, _T1]{}
}`)
	assert.Contains(t, content, "return fmtargs.Combine(c, func(r *Labeled[T, _T1]) *T { return &r.Label })")
}

func TestGenerator_ImportConflicts(t *testing.T) {
	content := generate(t, `import "example.com/dep"

var fmtargs = 1

type Box struct {
	V dep.Value
}`, analyze.ClassifyOptions{}, "Box")

	assert.Contains(t, content, "\tfmtargs2 \"fmtargs-generator/fmtargs\"\n")
	assert.Contains(t, content, "func (Box) FormatArgs() fmtargs2.Descriptor[Box] {")
	assert.Contains(t, content, "panic(fmtargs2.BadIndex(index))")
	assert.Contains(t, content, "\t\"example.com/dep\"\n")
	assert.Contains(t, content, "func(r *Box) *dep.Value { return &r.V }")
}

func TestGenerator_LocalNameShadowsImport(t *testing.T) {
	content := generate(t, `import d "example.com/dep"

type dep struct{}

type Box struct {
	V d.Value
	W dep
}`, analyze.ClassifyOptions{}, "Box")

	assert.Contains(t, content, "\tdep2 \"example.com/dep\"\n")
	assert.Contains(t, content, "func(r *Box) *dep2.Value { return &r.V }")
	assert.Contains(t, content, "func(r *Box) *dep { return &r.W }")
}

func TestGenerator_RuntimePath(t *testing.T) {
	pkg := testPackage(t, "type Unit struct{}")

	cfg := DefaultGeneratorConfig()
	cfg.RuntimePath = "example.com/fmtargs/v2"
	cfg.Filename = "descriptors_gen.go"

	file, err := NewGenerator(cfg, nil).Generate(pkg, classify(t, pkg, analyze.ClassifyOptions{}, "Unit"))
	require.NoError(t, err)

	assert.Equal(t, "descriptors_gen.go", file.Filename)
	assert.Equal(t, pkg.Dir, file.Dir)
	assert.Contains(t, string(file.Content), "\t\"example.com/fmtargs/v2\"\n")
	assert.Contains(t, string(file.Content), "fmtargs.Descriptor[Unit]")
}

func TestGenerator_NoRecords(t *testing.T) {
	pkg := testPackage(t, "type Unit struct{}")

	_, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(pkg, nil)
	require.ErrorIs(t, err, ErrNoRecords)
}

func TestGenerator_RecordOrder(t *testing.T) {
	content := generate(t, "type A struct{}\n\ntype B struct{}", analyze.ClassifyOptions{}, "B", "A")

	assert.Less(t, strings.Index(content, "type fmtargsB struct{}"), strings.Index(content, "type fmtargsA struct{}"))
}

func TestGenerator_TypeParamShadowsImport(t *testing.T) {
	content := generate(t, `import d "example.com/dep"

type Box[dep any] struct {
	V d.Value
	W dep
}`, analyze.ClassifyOptions{}, "Box")

	assert.Contains(t, content, "\tdep2 \"example.com/dep\"\n")
	assert.Contains(t, content, "func(r *Box[dep]) *dep2.Value { return &r.V }")
	assert.Contains(t, content, "func(r *Box[dep]) *dep { return &r.W }")
}

func TestGenerator_FormatFailure(t *testing.T) {
	for _, debug := range []bool{false, true} {
		pkg := testPackage(t, "type Unit struct{}")

		cfg := DefaultGeneratorConfig()
		cfg.RuntimePath = `broken"path`
		cfg.DebugUnformatted = debug

		file, err := NewGenerator(cfg, nil).Generate(pkg, classify(t, pkg, analyze.ClassifyOptions{}, "Unit"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unformatted code returned")
		require.NotNil(t, file)
		assert.Contains(t, string(file.Content), `"broken"path"`)

		sidecar, err := os.ReadFile(filepath.Join(pkg.Dir, DefaultFilename+".unformatted"))
		if !debug {
			assert.True(t, os.IsNotExist(err), "sidecar written without DebugUnformatted")
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, file.Content, sidecar)
	}
}
