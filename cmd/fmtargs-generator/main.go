// Package main provides the CLI entrypoint for fmtargs-generator.
//
// fmtargs-generator is a go:generate tool that:
//   - Parses Go packages (AST + go/types) to find record types
//   - Classifies each record as named, positional or empty
//   - Generates a static fmtargs descriptor per record
//
// Mark a type with a directive and run the generator in its package:
//
//	//go:generate go run fmtargs-generator/cmd/fmtargs-generator gen
//
//	//fmtargs:derive
//	type Header struct {
//		Width uint   `fmtargs:"width"`
//		Name  string `fmtargs:"name"`
//	}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"fmtargs-generator/internal/analyze"
	"fmtargs-generator/internal/common"
	"fmtargs-generator/internal/config"
	"fmtargs-generator/internal/gen"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `usage: fmtargs-generator <command> [flags]

Commands:
  gen      generate descriptors
  check    exit 1 if generated descriptors are missing or stale
  analyze  print the classified records

Run "fmtargs-generator <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "gen", "check", "analyze":
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	opts, err := parseFlags(cmd, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	jobs, genCfg, err := opts.plan()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log := newLogger(stderr, opts.verbose)
	defer func() { _ = log.Sync() }()

	r := &runner{
		log:    log,
		stdout: stdout,
		gen:    gen.NewGenerator(genCfg, log),
		tags:   opts.tags,
	}

	switch cmd {
	case "gen":
		err = r.generate(ctx, jobs)
	case "check":
		err = r.check(ctx, jobs)
	case "analyze":
		err = r.analyze(ctx, jobs, opts.dump)
	}

	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	return exitOK
}

// options holds the parsed command-line flags.
type options struct {
	pkg        string
	types      []string
	positional []string
	config     string
	out        string
	runtime    string
	tags       []string
	verbose    bool
	dump       bool
	// debugUnformatted keeps the raw output when formatting fails.
	debugUnformatted bool
}

func parseFlags(cmd string, args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.pkg, "pkg", ".", "package pattern to load")
	fs.Func("type", "comma-separated type names to select", listFlag(&opts.types))
	fs.Func("positional", "comma-separated struct types addressable by index only", listFlag(&opts.positional))
	fs.StringVar(&opts.config, "config", "", "path to a fmtargs.yaml file")
	fs.StringVar(&opts.out, "out", "", "generated file name (default "+gen.DefaultFilename+")")
	fs.StringVar(&opts.runtime, "runtime", "", "import path of the fmtargs runtime package")
	fs.Func("tags", "comma-separated extra build tags", listFlag(&opts.tags))
	fs.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	fs.BoolVar(&opts.debugUnformatted, "debug-unformatted", false,
		"write <out>.unformatted next to the output when formatting fails")

	if cmd == "analyze" {
		fs.BoolVar(&opts.dump, "dump", false, "dump the raw records")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func listFlag(dst *[]string) func(string) error {
	return func(s string) error {
		*dst = append(*dst, common.SplitList(s)...)
		return nil
	}
}

// job is one package pattern with its selection.
type job struct {
	dir     string
	pattern string
	sel     analyze.Selection
}

// plan turns the options into jobs and a generator configuration. Flags win
// over the config file.
func (o *options) plan() ([]job, gen.GeneratorConfig, error) {
	cfg := gen.DefaultGeneratorConfig()

	var jobs []job

	if o.config != "" {
		if len(o.types) > 0 || len(o.positional) > 0 {
			return nil, cfg, errors.New("-type and -positional cannot be combined with -config")
		}

		file, err := config.LoadFile(o.config)
		if err != nil {
			return nil, cfg, err
		}

		cfg = file.GeneratorConfig()
		o.tags = append(file.Tags, o.tags...)

		dir := filepath.Dir(o.config)
		for _, p := range file.Packages {
			jobs = append(jobs, job{dir: dir, pattern: p.Path, sel: p.Selection()})
		}
	} else {
		jobs = append(jobs, job{
			pattern: o.pkg,
			sel: analyze.Selection{
				Types:      common.Dedup(o.types),
				Positional: common.Dedup(o.positional),
			},
		})
	}

	if o.out != "" {
		cfg.Filename = o.out
	}

	if o.runtime != "" {
		cfg.RuntimePath = o.runtime
	}

	if o.debugUnformatted {
		cfg.DebugUnformatted = true
	}

	return jobs, cfg, nil
}
