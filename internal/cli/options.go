// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"peptaxa-core/taxonomy"
	"peptaxa/internal/clibase"
	"peptaxa/internal/cliutil"
)

// Options holds all CLI flags and arguments for the genome analysis driver.
type Options struct {
	clibase.Common

	Assembly string
	WorkDir  string // overrides the configured work root
	Force    bool
	KeepTemp bool

	// Peptide filter
	MinLen       int
	MaxLen       int
	Contains     string
	Lacks        string
	Unique       bool
	UniqueWindow int

	// Report
	Output        string // text | json | pretty
	Rank          string // validated against taxonomy ranks; "" = config default
	Top           int
	NoHitExitCode int
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

	fs.StringVar(&opt.Assembly, "assembly", "", "genome assembly ID [*]")
	fs.StringVar(&opt.Assembly, "a", "", "alias of --assembly")
	fs.StringVar(&opt.WorkDir, "work-dir", "", "working directory root (overrides config)")
	fs.BoolVar(&opt.Force, "force", false, "regenerate cached intermediate files [false]")
	fs.BoolVar(&opt.Force, "f", false, "alias of --force")
	fs.BoolVar(&opt.KeepTemp, "keep-temp", false, "keep the per-run scratch directory [false]")

	fs.IntVar(&opt.MinLen, "min-length", 5, "minimum peptide length [5]")
	fs.IntVar(&opt.MaxLen, "max-length", 50, "maximum peptide length (0=unlimited) [50]")
	fs.StringVar(&opt.Contains, "contains", "", "residues a peptide must contain")
	fs.StringVar(&opt.Lacks, "lacks", "", "residues a peptide must not contain")
	fs.BoolVar(&opt.Unique, "unique", false, "drop repeated peptides before classification [false]")
	fs.IntVar(&opt.UniqueWindow, "unique-window", 0, "dedupe window size (0=default)")

	fs.StringVar(&opt.Output, "output", "text", "report format: text | json | pretty [text]")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.StringVar(&opt.Rank, "rank", "", "rank cutoff for top taxa (default from config)")
	fs.StringVar(&opt.Rank, "r", "", "alias of --rank")
	fs.IntVar(&opt.Top, "top", 0, "number of top taxa to report (0=config default)")
	fs.IntVar(&opt.NoHitExitCode, "no-hit-exit-code", 1, "exit code when no peptide classifies [1]")

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

	if len(posArgs) > 0 {
		if opt.Assembly != "" {
			return opt, errors.New("--assembly conflicts with a positional assembly ID")
		}
		if len(posArgs) > 1 {
			return opt, fmt.Errorf("expected one assembly ID, got %d", len(posArgs))
		}
		opt.Assembly = posArgs[0]
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants for the analysis driver.
func Validate(o *Options) error {
	if err := clibase.Validate(&o.Common); err != nil {
		return err
	}
	if o.Assembly == "" {
		return errors.New("an assembly ID is required (--assembly or positional)")
	}
	if o.MinLen < 1 {
		return errors.New("--min-length must be ≥ 1")
	}
	if o.MaxLen < 0 {
		return errors.New("--max-length must be ≥ 0")
	}
	if o.MaxLen > 0 && o.MinLen > o.MaxLen {
		return fmt.Errorf("--min-length (%d) exceeds --max-length (%d)", o.MinLen, o.MaxLen)
	}
	switch o.Output {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Rank != "" {
		if _, err := taxonomy.ParseRank(o.Rank); err != nil {
			return err
		}
	}
	if o.UniqueWindow < 0 {
		return errors.New("--unique-window must be ≥ 0")
	}
	if o.Top < 0 {
		return errors.New("--top must be ≥ 0")
	}
	if o.NoHitExitCode < 0 || o.NoHitExitCode > 255 {
		return errors.New("--no-hit-exit-code must be between 0 and 255")
	}
	return nil
}

// Usage installs the grouped help text for the analysis driver.
func Usage(fs *flag.FlagSet, name string) {
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s [flags] <assembly-id>\n", name)
		fmt.Fprintf(out, "  %s --assembly GCF_000005845.2 --output pretty\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -a, --assembly string       Genome assembly ID [*]")
		fmt.Fprintln(out, "      --work-dir string       Working directory root (overrides config)")
		fmt.Fprintf(out, "  -f, --force                 Regenerate cached intermediate files [%s]\n", def("force"))
		fmt.Fprintf(out, "      --keep-temp             Keep the per-run scratch directory [%s]\n", def("keep-temp"))

		fmt.Fprintln(out, "\nPeptide filter:")
		fmt.Fprintf(out, "      --min-length int        Minimum peptide length [%s]\n", def("min-length"))
		fmt.Fprintf(out, "      --max-length int        Maximum peptide length (0=unlimited) [%s]\n", def("max-length"))
		fmt.Fprintln(out, "      --contains string       Residues a peptide must contain")
		fmt.Fprintln(out, "      --lacks string          Residues a peptide must not contain")
		fmt.Fprintf(out, "      --unique                Drop repeated peptides before classification [%s]\n", def("unique"))
		fmt.Fprintln(out, "      --unique-window int     Dedupe window size (0=default)")

		fmt.Fprintln(out, "\nReport:")
		fmt.Fprintf(out, "  -o, --output string         Report format: text | json | pretty [%s]\n", def("output"))
		fmt.Fprintln(out, "  -r, --rank string           Rank cutoff for top taxa (default from config)")
		fmt.Fprintf(out, "      --top int               Number of top taxa to report (0=config default) [%s]\n", def("top"))
		fmt.Fprintf(out, "      --no-hit-exit-code int  Exit code when no peptide classifies [%s]\n", def("no-hit-exit-code"))
	})
}
