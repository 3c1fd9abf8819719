package main

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"fmtargs-generator/internal/analyze"
	"fmtargs-generator/internal/common"
	"fmtargs-generator/internal/diagnostic"
	"fmtargs-generator/internal/gen"
	"fmtargs-generator/internal/match"
)

// maxSuggestions bounds the "did you mean" list for unknown type names.
const maxSuggestions = 3

// errStale is returned by check when a generated file is out of date.
var errStale = errors.New("generated files are stale, run fmtargs-generator gen")

// runner executes the commands against a list of jobs.
type runner struct {
	log    *zap.Logger
	stdout io.Writer
	gen    *gen.Generator
	tags   []string
}

// selected is the outcome of loading and selecting one package.
type selected struct {
	pkg     *analyze.Package
	records []*analyze.Record
}

// collect loads every job and classifies its records. Diagnostics are
// logged; any error diagnostic fails the whole run after all packages were
// visited.
func (r *runner) collect(ctx context.Context, jobs []job) ([]selected, error) {
	var (
		out   []selected
		diags diagnostic.Diagnostics
	)

	for _, j := range jobs {
		loader := analyze.NewLoader(
			analyze.WithLogger(r.log),
			analyze.WithDir(j.dir),
			analyze.WithTags(r.tags...),
		)

		pkgs, err := loader.Load(ctx, j.pattern)
		if err != nil {
			return nil, err
		}

		// A pattern matching several packages applies explicit type names only
		// to the packages declaring them.
		multi := len(pkgs) > 1
		found := make(map[string]bool)

		for _, pkg := range pkgs {
			sel := j.sel
			if multi {
				sel = sel.Within(pkg)
				for _, name := range sel.Names() {
					found[name] = true
				}
			}

			records, d := loader.Select(pkg, sel)
			if len(records) == 0 && !d.HasErrors() {
				d.AddWarning(diagnostic.CodeNoRecords, "no records selected", "", token.Position{})
			}

			r.report(pkg, d)
			diags.Merge(d)

			if len(records) > 0 {
				out = append(out, selected{pkg: pkg, records: records})
			}
		}

		if multi {
			diags.Merge(r.unmatched(j, pkgs, found))
		}
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// unmatched reports the selected names no package of a multi-package job
// declares.
func (r *runner) unmatched(j job, pkgs []*analyze.Package, found map[string]bool) diagnostic.Diagnostics {
	var (
		diags diagnostic.Diagnostics
		all   []string
	)

	for _, pkg := range pkgs {
		all = append(all, pkg.TypeNames()...)
	}

	for _, name := range common.Dedup(j.sel.Names()) {
		if found[name] {
			continue
		}

		err := fmt.Errorf("%w: %s in %s", analyze.ErrTypeNotFound, name, j.pattern)
		diags.AddError(diagnostic.CodeTypeNotFound, err, name, token.Position{},
			match.Suggest(name, common.Dedup(all), maxSuggestions)...)
	}

	for _, d := range diags.Errors {
		r.log.Error(d.String(), zap.String("pattern", j.pattern), zap.String("code", d.Code))
	}

	return diags
}

func (r *runner) report(pkg *analyze.Package, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []zap.Field{zap.String("package", pkg.Path), zap.String("code", d.Code)}
		if d.Record != "" {
			fields = append(fields, zap.String("record", d.Record))
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			r.log.Error(d.String(), fields...)
		case diagnostic.SeverityWarning:
			r.log.Warn(d.String(), fields...)
		default:
			r.log.Debug(d.String(), fields...)
		}
	}
}

func (r *runner) render(sel []selected) ([]gen.GeneratedFile, error) {
	files := make([]gen.GeneratedFile, 0, len(sel))

	for _, s := range sel {
		file, err := r.gen.Generate(s.pkg, s.records)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", s.pkg.Path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (r *runner) generate(ctx context.Context, jobs []job) error {
	sel, err := r.collect(ctx, jobs)
	if err != nil {
		return err
	}

	files, err := r.render(sel)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		r.log.Info("generated", zap.String("file", f.Path()))
	}

	return nil
}

func (r *runner) check(ctx context.Context, jobs []job) error {
	sel, err := r.collect(ctx, jobs)
	if err != nil {
		return err
	}

	files, err := r.render(sel)
	if err != nil {
		return err
	}

	var stale int

	for _, f := range files {
		isStale, err := gen.Stale(f)
		if err != nil {
			return err
		}

		if isStale {
			stale++

			fmt.Fprintf(r.stdout, "stale: %s\n", f.Path())
		}
	}

	if stale > 0 {
		return errStale
	}

	return nil
}

func (r *runner) analyze(ctx context.Context, jobs []job, dump bool) error {
	sel, err := r.collect(ctx, jobs)
	if err != nil {
		return err
	}

	if dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		for _, s := range sel {
			for _, rec := range s.records {
				cfg.Fdump(r.stdout, dumpRecord(rec))
			}
		}

		return nil
	}

	tw := tabwriter.NewWriter(r.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORD\tSHAPE\tFIELD\tTYPE\tSIZE")

	for _, s := range sel {
		for _, rec := range s.records {
			if rec.Len() == 0 {
				fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\n", rec.ID, rec.Shape)
				continue
			}

			for _, f := range rec.Fields {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", rec.ID, rec.Shape, f.Label(), f.Type, f.IsSize)
			}
		}
	}

	return tw.Flush()
}

// recordDump is a printable view of a record. go/types values hold
// back-references to the whole package and are flattened to strings.
type recordDump struct {
	Type       string
	Pos        string
	Shape      string
	TypeParams []string
	Fields     []fieldDump
}

type fieldDump struct {
	Index  int
	Name   string
	GoName string
	Type   string
	IsSize bool
}

func dumpRecord(rec *analyze.Record) recordDump {
	d := recordDump{
		Type:  rec.ID.String(),
		Pos:   rec.Pos.String(),
		Shape: rec.Shape.String(),
	}

	for _, tp := range rec.TypeParams {
		d.TypeParams = append(d.TypeParams, tp.Name+" "+tp.Constraint.String())
	}

	for _, f := range rec.Fields {
		d.Fields = append(d.Fields, fieldDump{
			Index:  f.Index,
			Name:   f.Name,
			GoName: f.GoName,
			Type:   f.Type.String(),
			IsSize: f.IsSize,
		})
	}

	return d
}
