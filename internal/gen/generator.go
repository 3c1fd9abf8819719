package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"text/template"

	"go.uber.org/zap"

	"fmtargs-generator/internal/analyze"
)

// ErrNoRecords is returned when a package has nothing to generate.
var ErrNoRecords = errors.New("no records to generate")

// DefaultRuntimePath is the import path of the fmtargs runtime package.
const DefaultRuntimePath = "fmtargs-generator/fmtargs"

// DefaultFilename is the name of the generated file in each package.
const DefaultFilename = "fmtargs_gen.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the generated file name inside the package directory.
	Filename string
	// RuntimePath is the import path of the fmtargs runtime package.
	RuntimePath string
	// DebugUnformatted writes a sidecar file with the raw output when
	// formatting fails.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:    DefaultFilename,
		RuntimePath: DefaultRuntimePath,
	}
}

// Generator renders descriptor files.
type Generator struct {
	config GeneratorConfig
	log    *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
// A nil logger discards everything.
func NewGenerator(config GeneratorConfig, log *zap.Logger) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	if config.RuntimePath == "" {
		config.RuntimePath = DefaultRuntimePath
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "fmtargs_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// fileData feeds fileTemplate.
type fileData struct {
	PackageName string
	BuildTag    string
	Imports     []importSpec
	Records     []string
}

// Generate renders the descriptors of records into one file for pkg.
// Records are emitted in the given order.
func (g *Generator) Generate(pkg *analyze.Package, records []*analyze.Record) (*GeneratedFile, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", pkg.Path, ErrNoRecords)
	}

	var scope []string
	if pkg.Types != nil {
		scope = pkg.Types.Scope().Names()
	}

	// Type parameters are in scope inside the generated methods.
	for _, rec := range records {
		for _, tp := range rec.TypeParams {
			scope = append(scope, tp.Name)
		}
	}

	imports := newImportSet(pkg.Path, scope)
	rt := imports.add(g.config.RuntimePath, "fmtargs")

	data := &fileData{
		PackageName: pkg.Name,
		BuildTag:    analyze.BuildTag,
	}

	for _, rec := range records {
		src, err := assemble(rec, rt, imports)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rec.ID, err)
		}

		g.log.Debug("assembled descriptor",
			zap.Stringer("type", rec.ID),
			zap.Stringer("shape", rec.Shape),
			zap.Int("fields", rec.Len()))

		data.Records = append(data.Records, src)
	}

	data.Imports = imports.specs()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Filename,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the raw output next to the intended file.
		if g.config.DebugUnformatted {
			if derr := writeDebugUnformatted(pkg.Dir, g.config.Filename, buf.Bytes()); derr != nil {
				g.log.Warn("writing unformatted output", zap.Error(derr))
			}
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	g.log.Info("generated descriptors",
		zap.String("package", pkg.Path),
		zap.String("file", file.Filename),
		zap.Int("records", len(records)))

	return file, nil
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by fmtargs-generator. DO NOT EDIT.

//go:build !{{.BuildTag}}

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Records}}{{.}}{{end}}`))
