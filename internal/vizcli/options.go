// internal/vizcli/options.go
package vizcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"peptaxa/internal/clibase"
	"peptaxa/internal/cliutil"
)

// Options holds all CLI flags and arguments for the visualization driver.
type Options struct {
	clibase.Common

	Input  string // taxonomic FASTA path or "-" for stdin
	Output string // destination path or "-" for stdout
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.Output, "output", "-", "write visualization to file ('-' = stdout) [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	Usage(fs, fs.Name())

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	posArgs, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	switch len(posArgs) {
	case 0:
		opt.Input = "-"
	case 1:
		opt.Input = posArgs[0]
	default:
		return opt, fmt.Errorf("expected one input file, got %d", len(posArgs))
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants for the visualization driver.
func Validate(o *Options) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if o.Output == "" {
		return errors.New("--output must not be empty")
	}
	return nil
}

// Usage installs the grouped help text for the visualization driver.
func Usage(fs *flag.FlagSet, name string) {
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s [flags] [taxonomic-fasta]\n", name)
		fmt.Fprintf(out, "  zcat taxa.fa.gz | %s --output tree.html\n", name)

		fmt.Fprintln(out, "\nInput/Output:")
		fmt.Fprintln(out, "      <taxonomic-fasta>       Input file ('-' or omitted = stdin; gzip auto-detected)")
		fmt.Fprintf(out, "  -o, --output file           Write visualization to file ('-' = stdout) [%s]\n", def("output"))
	})
}
