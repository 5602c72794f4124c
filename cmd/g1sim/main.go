// ABOUTME: Command-line entry point for the collector simulation
// ABOUTME: Loads heap descriptions, runs one collection cycle each, and prints the result

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/prateek/g1sim"
	"github.com/prateek/g1sim/gc"
	"github.com/prateek/g1sim/heap"
	"github.com/prateek/g1sim/heapdump"
	"github.com/prateek/g1sim/report"
)

type config struct {
	heapSize int
	format   string
	regions  bool
	stats    bool
	strict   bool
	explain  int64
	maxPaths int
	jobs     int
	noColor  bool
	logLevel slog.Level
	inputs   []string
}

// run holds the outcome of collecting one input
type run struct {
	name string
	dump *heapdump.Dump
	res  *gc.Result
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "g1sim: %v\n", err)
		os.Exit(2)
	}

	stdout := io.Writer(os.Stdout)
	color := false
	if !cfg.noColor && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		stdout = colorable.NewColorableStdout()
		color = true
	}

	logger := gc.NewTextLogger(os.Stderr, cfg.logLevel)
	if err := execute(context.Background(), cfg, stdout, color, logger); err != nil {
		fmt.Fprintf(os.Stderr, "g1sim: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("g1sim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "g1sim %s - region-based mark-sweep-compact simulation\n\n", g1sim.Version)
		fmt.Fprintf(stderr, "usage: g1sim [flags] [dump ...]\n\n")
		fmt.Fprintf(stderr, "Reads JSON, YAML or text heap descriptions (optionally gzip, zstd or lz4\n")
		fmt.Fprintf(stderr, "compressed) from the named files, or stdin when none or \"-\" is given.\n\n")
		fs.PrintDefaults()
	}

	cfg := &config{}
	heapFlag := fs.String("heap", "", "heap size, e.g. 160 or 4KB; overrides the size in the dump")
	fs.StringVar(&cfg.format, "format", "text", "output format: text or json")
	fs.BoolVar(&cfg.regions, "regions", false, "print the region table after the heap")
	fs.BoolVar(&cfg.stats, "stats", false, "print cycle statistics")
	fs.BoolVar(&cfg.strict, "strict", false, "fail when partitioning over-subscribes a region")
	fs.Int64Var(&cfg.explain, "explain", -1, "print root paths keeping this object id alive")
	fs.IntVar(&cfg.maxPaths, "paths", 3, "maximum number of root paths for -explain")
	fs.IntVar(&cfg.jobs, "j", 4, "number of dumps collected concurrently")
	fs.BoolVar(&cfg.noColor, "no-color", false, "disable colored output")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *heapFlag != "" {
		size, err := parseHeapSize(*heapFlag)
		if err != nil {
			return nil, err
		}
		cfg.heapSize = size
	}
	if cfg.format != "text" && cfg.format != "json" {
		return nil, fmt.Errorf("unknown output format %q", cfg.format)
	}
	if cfg.jobs < 1 {
		cfg.jobs = 1
	}
	if err := cfg.logLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", *logLevel)
	}

	cfg.inputs = fs.Args()
	if len(cfg.inputs) == 0 {
		cfg.inputs = []string{"-"}
	}
	return cfg, nil
}

// parseHeapSize accepts plain byte counts and sizes with units such as 4KB
func parseHeapSize(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("heap size must be positive, got %d", n)
		}
		return n, nil
	}
	b, err := bytesize.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid heap size %q: %w", s, err)
	}
	if b == 0 {
		return 0, fmt.Errorf("heap size must be positive, got %q", s)
	}
	return int(b), nil
}

func execute(ctx context.Context, cfg *config, stdout io.Writer, color bool, logger *gc.Logger) error {
	collector := gc.New(gc.WithLogger(logger), gc.WithStrictCapacity(cfg.strict))

	runs := make([]run, len(cfg.inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)

	for i, input := range cfg.inputs {
		i, input := i, input
		g.Go(func() error {
			dump, err := load(input)
			if err != nil {
				return err
			}
			dump = dump.WithHeapSize(cfg.heapSize)

			res, err := collector.Collect(gctx, dump)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(input), err)
			}
			runs[i] = run{name: displayName(input), dump: dump, res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var rep gc.Reporter
	switch cfg.format {
	case "json":
		rep = &report.JSON{W: stdout, Indent: true}
	default:
		rep = &report.Text{W: stdout, Color: color, Regions: cfg.regions, Stats: cfg.stats}
	}

	for i, r := range runs {
		if len(runs) > 1 && cfg.format == "text" {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "==> %s <==\n", r.name)
		}
		if err := rep.Report(ctx, r.res); err != nil {
			return err
		}
		if cfg.explain >= 0 {
			explain(stdout, r, heap.ObjID(cfg.explain), cfg.maxPaths)
		}
	}
	return nil
}

func load(input string) (*heapdump.Dump, error) {
	if input == "-" {
		dump, err := heapdump.Open(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return dump, nil
	}
	return heapdump.OpenFile(input)
}

func explain(w io.Writer, r run, id heap.ObjID, maxPaths int) {
	switch {
	case !r.res.Liveness.Known(id):
		fmt.Fprintf(w, "object %d is not in the heap\n", id)
		return
	case !r.res.Liveness.IsLive(id):
		fmt.Fprintf(w, "object %d is unreachable and was swept\n", id)
		return
	}

	for _, p := range heap.PathsToRoots(r.dump.Pointers(), r.dump.Roots(), id, maxPaths) {
		parts := make([]string, len(p.IDs))
		for i, pid := range p.IDs {
			parts[i] = strconv.FormatUint(uint64(pid), 10)
		}
		fmt.Fprintf(w, "object %d kept alive by: %s\n", id, strings.Join(parts, " <- "))
	}
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}
