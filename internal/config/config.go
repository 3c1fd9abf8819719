package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fmtargs-generator/internal/analyze"
	"fmtargs-generator/internal/gen"
)

// CurrentVersion is the only supported configuration version.
const CurrentVersion = "1"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Shape overrides accepted in a type entry.
const (
	ShapeAuto       = "auto"
	ShapePositional = "positional"
)

// File is the top-level fmtargs.yaml configuration.
type File struct {
	// Version of the configuration schema. Defaults to "1".
	Version string `yaml:"version"`
	// Output is the generated file name in each package directory.
	Output string `yaml:"output,omitempty"`
	// Runtime is the import path of the fmtargs runtime package.
	Runtime string `yaml:"runtime,omitempty"`
	// Tags are extra build tags used while loading packages.
	Tags []string `yaml:"tags,omitempty"`
	// DebugUnformatted writes <output>.unformatted when the generated code
	// fails to format.
	DebugUnformatted bool `yaml:"debug_unformatted,omitempty"`
	// Packages lists the packages to generate.
	Packages []Package `yaml:"packages"`
}

// Package selects records in one package pattern.
type Package struct {
	// Path is a Go package pattern, resolved from the config file directory.
	Path string `yaml:"path"`
	// Types lists types to select besides the directive-marked ones.
	Types []Type `yaml:"types,omitempty"`
}

// Type is one selected record type.
type Type struct {
	Name string `yaml:"name"`
	// Shape is "auto" (default) or "positional".
	Shape string `yaml:"shape,omitempty"`
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File, applies defaults and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Output == "" {
		f.Output = gen.DefaultFilename
	}

	if f.Runtime == "" {
		f.Runtime = gen.DefaultRuntimePath
	}

	for i := range f.Packages {
		for j := range f.Packages[i].Types {
			t := &f.Packages[i].Types[j]
			if t.Shape == "" {
				t.Shape = ShapeAuto
			}
		}
	}
}

// Validate checks the configuration after defaults are applied.
func (f *File) Validate() error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q", f.Version))
	}

	for i, p := range f.Packages {
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("packages[%d]: path is required", i))
		}

		seen := make(map[string]bool, len(p.Types))

		for j, t := range p.Types {
			switch {
			case t.Name == "":
				errs = append(errs, fmt.Errorf("packages[%d].types[%d]: name is required", i, j))
			case seen[t.Name]:
				errs = append(errs, fmt.Errorf("packages[%d].types[%d]: duplicate type %s", i, j, t.Name))
			}

			seen[t.Name] = true

			if t.Shape != ShapeAuto && t.Shape != ShapePositional {
				errs = append(errs, fmt.Errorf("packages[%d].types[%d]: unknown shape %q", i, j, t.Shape))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Selection converts the package entry into an analyze.Selection.
func (p Package) Selection() analyze.Selection {
	var sel analyze.Selection

	for _, t := range p.Types {
		sel.Types = append(sel.Types, t.Name)
		if t.Shape == ShapePositional {
			sel.Positional = append(sel.Positional, t.Name)
		}
	}

	return sel
}

// GeneratorConfig returns the generator settings of the file.
func (f *File) GeneratorConfig() gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.Filename = f.Output
	cfg.RuntimePath = f.Runtime
	cfg.DebugUnformatted = f.DebugUnformatted

	return cfg
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
