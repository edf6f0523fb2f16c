// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
)

// Common holds CLI fields shared by peptaxa and peptaxa-viz.
type Common struct {
	ConfigFile string

	Quiet   bool
	Verbose bool
	Version bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigFile, "config", "", "pipeline config file (YAML)")
	fs.StringVar(&c.ConfigFile, "C", "", "alias of --config")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "log each pipeline step to stderr [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies the shared CLI invariants.
func Validate(c *Common) error {
	if c.Quiet && c.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}
