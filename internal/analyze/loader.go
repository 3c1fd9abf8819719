package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// BuildTag is always set while loading. Generated files are constrained with
// !BuildTag, so stale output never breaks type-checking of its own package.
const BuildTag = "fmtargsgen"

// Loader loads Go packages and finds derive directives.
type Loader struct {
	log  *zap.Logger
	dir  string
	tags []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.dir = dir
	}
}

// WithTags adds build tags used while loading.
func WithTags(tags ...string) LoaderOption {
	return func(l *Loader) {
		l.tags = append(l.tags, tags...)
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Package is a loaded package together with its derive directives.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory holding the package sources
	Fset  *token.FileSet
	Types *types.Package
	// Directives maps type names to the derive directive on their declaration.
	Directives map[string]Directive
}

// Lookup returns the type name declared in the package scope, or nil.
func (p *Package) Lookup(name string) *types.TypeName {
	obj, _ := p.Types.Scope().Lookup(name).(*types.TypeName)
	return obj
}

// TypeNames returns the names of all types declared in the package scope.
func (p *Package) TypeNames() []string {
	var names []string

	scope := p.Types.Scope()
	for _, name := range scope.Names() {
		if _, ok := scope.Lookup(name).(*types.TypeName); ok {
			names = append(names, name)
		}
	}

	return names
}

// Load loads the packages matching patterns. Patterns are standard Go package
// patterns (e.g., ".", "./examples/records", "fmtargs-generator/examples/...").
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        l.dir,
		BuildFlags: []string{"-tags=" + strings.Join(append([]string{BuildTag}, l.tags...), ",")},
	}

	l.log.Debug("loading packages",
		zap.Strings("patterns", patterns),
		zap.Strings("build_flags", cfg.BuildFlags))

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		p, err := l.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		out = append(out, p)
	}

	return out, nil
}

// processPackage extracts the directives of a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) (*Package, error) {
	if len(pkg.GoFiles) == 0 {
		return nil, errors.New("no Go files")
	}

	directives, err := scanDirectives(pkg.Fset, pkg.Syntax)
	if err != nil {
		return nil, err
	}

	l.log.Debug("loaded package",
		zap.String("path", pkg.PkgPath),
		zap.Int("files", len(pkg.GoFiles)),
		zap.Int("directives", len(directives)))

	return &Package{
		Path:       pkg.PkgPath,
		Name:       pkg.Name,
		Dir:        filepath.Dir(pkg.GoFiles[0]),
		Fset:       pkg.Fset,
		Types:      pkg.Types,
		Directives: directives,
	}, nil
}
