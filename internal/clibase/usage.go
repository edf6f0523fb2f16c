// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"peptaxa/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage examples, flag blocks).
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – taxonomic peptide analysis toolkit\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "  -C, --config file           Pipeline config file (YAML)")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Log each pipeline step to stderr [%s]\n", def("verbose"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
