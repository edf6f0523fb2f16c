// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"peptaxa-core/peptide"
	"peptaxa-core/taxonomy"
	"peptaxa/internal/cache"
	"peptaxa/internal/cli"
	"peptaxa/internal/config"
	"peptaxa/internal/logx"
	"peptaxa/internal/pipeline"
	"peptaxa/internal/report"
	"peptaxa/internal/toolrun"
	"peptaxa/internal/version"
	"peptaxa/internal/workdir"
	"peptaxa/internal/writers"
)

// RunContext drives the genome analysis pipeline for one assembly.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("peptaxa")
	fs.SetOutput(io.Discard)

	flushUsage := func() int {
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if len(argv) == 0 {
		return flushUsage()
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return flushUsage()
		}
		_, _ = fmt.Fprintln(stderr, err)
		if code := flushUsage(); code != 0 {
			return code
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "peptaxa version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	cfg.ApplyEnv(os.LookupEnv)
	if opts.WorkDir != "" {
		cfg.WorkRoot = opts.WorkDir
	}

	rankName := opts.Rank
	if rankName == "" {
		rankName = cfg.Report.Rank
	}
	rank, err := taxonomy.ParseRank(rankName)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	top := opts.Top
	if top == 0 {
		top = cfg.Report.Top
	}

	log := logx.New(stderr, opts.Verbose, opts.Quiet)
	defer log.Sync()

	dir, err := workdir.Open(cfg.WorkRoot, opts.Assembly, opts.KeepTemp)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = dir.Cleanup() }()

	p := &pipeline.Pipeline{
		Runner: toolrun.ExecRunner{},
		Tools:  cfg.Tools,
		Dir:    dir,
		Log:    log,
	}
	filter := peptide.Filter{
		MinLength: opts.MinLen,
		MaxLength: opts.MaxLen,
		Contains:  opts.Contains,
		Lacks:     opts.Lacks,
	}
	if opts.Unique {
		filter.Unique = peptide.NewDeduper(opts.UniqueWindow)
	}
	stats, err := p.Run(parent, pipeline.Options{
		Assembly: opts.Assembly,
		Force:    opts.Force,
		Filter:   filter,
		Rank:     rank,
		Top:      top,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		// A failing external tool decides the exit code.
		if code, ok := toolrun.ExitCode(err); ok {
			return code
		}
		return 3
	}

	if err := report.Write(opts.Output, outw, stats); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	// Keep a TSV copy of the report next to the cached artifacts.
	if err := cache.Materialize(dir.Path(pipeline.ReportFile), func(w io.Writer) error {
		return report.Write("text", w, stats)
	}); err != nil {
		log.Warnf("could not save %s: %v", pipeline.ReportFile, err)
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if stats.Classified == 0 {
		return opts.NoHitExitCode
	}
	return 0
}

// Run parses argv and executes with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
