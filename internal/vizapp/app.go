//go:build unix

// internal/vizapp/app.go
package vizapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"peptaxa/internal/config"
	"peptaxa/internal/fifo"
	"peptaxa/internal/logx"
	"peptaxa/internal/sniff"
	"peptaxa/internal/toolrun"
	"peptaxa/internal/version"
	"peptaxa/internal/vizcli"
	"peptaxa/internal/writers"
)

// ErrNoRenderer is returned when no renderer tool is configured.
var ErrNoRenderer = errors.New("visualization rendering is not implemented: no renderer tool configured")

// RunContext drives the visualization stub: sniff the input for gzip,
// stream it through a pair of named pipes, and hand both ends to the
// configured renderer.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := vizcli.NewFlagSet("peptaxa-viz")
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

	opts, err := vizcli.ParseArgs(fs, argv)
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
		_, _ = fmt.Fprintf(outw, "peptaxa-viz version %s\n", version.Version)
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

	log := logx.New(stderr, opts.Verbose, opts.Quiet)
	defer log.Sync()

	err = render(parent, opts, cfg, outw, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		if code, ok := toolrun.ExitCode(err); ok {
			return code
		}
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}

// render streams the (possibly gzip-compressed) input through the renderer.
func render(ctx context.Context, opts vizcli.Options, cfg config.Config, stdout io.Writer, log *logx.Logger) error {
	in, err := openInput(opts.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	sr, err := sniff.Stream(in)
	if err != nil {
		return fmt.Errorf("sniff %s: %w", opts.Input, err)
	}
	var src io.Reader = sr
	if sr.Gzip {
		log.Debugf("input %s detected as %s, decompressing", opts.Input, sr.MIME)
		gz, err := pgzip.NewReader(sr)
		if err != nil {
			return fmt.Errorf("gunzip %s: %w", opts.Input, err)
		}
		defer gz.Close()
		src = gz
	}

	if len(cfg.Tools.Renderer) == 0 {
		return ErrNoRenderer
	}

	dir, err := os.MkdirTemp("", "peptaxa-viz-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	inPipe, err := fifo.Make(dir, "in.fifo")
	if err != nil {
		return err
	}
	outPipe, err := fifo.Make(dir, "out.fifo")
	if err != nil {
		return err
	}

	dst, closeDst, err := openOutput(opts.Output, stdout)
	if err != nil {
		return err
	}
	defer closeDst()

	// Open the drain side of out.fifo before the renderer starts, with a
	// write-side keeper so EOF only arrives once the renderer is done.
	drain, err := fifo.OpenRead(outPipe)
	if err != nil {
		return err
	}
	defer drain.Close()
	keeper, err := fifo.HoldWrite(outPipe)
	if err != nil {
		return err
	}

	argv := config.Expand(cfg.Tools.Renderer, "{in}", inPipe)
	argv = config.Expand(argv, "{out}", outPipe)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fh, err := fifo.OpenWrite(inPipe)
		if err != nil {
			return err
		}
		_, cerr := io.Copy(fh, src)
		if e := fh.Close(); cerr == nil {
			cerr = e
		}
		return cerr
	})

	g.Go(func() error {
		_, err := io.Copy(dst, drain)
		return err
	})

	g.Go(func() error {
		done := log.Step("render")
		defer done()
		err := toolrun.ExecRunner{}.Run(gctx, toolrun.Command{Argv: argv})
		// Releasing the keeper delivers EOF to the drain goroutine once
		// any renderer output has been consumed.
		_ = keeper.Close()
		// The renderer may have exited without reading all of in.fifo;
		// discard the remainder so the feed goroutine can finish.
		if r, e := fifo.OpenRead(inPipe); e == nil {
			go func() {
				_, _ = io.Copy(io.Discard, r)
				_ = r.Close()
			}()
		}
		return err
	})

	return g.Wait()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(filepath.Clean(path))
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return fh, func() { _ = fh.Close() }, nil
}

// Run parses argv and executes with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
