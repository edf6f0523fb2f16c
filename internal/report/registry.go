// internal/report/registry.go
package report

import (
	"fmt"
	"io"
)

// Formats maps output format names to writers. Writer files register
// themselves in init().
var Formats = map[string]func(io.Writer, Stats) error{}

// Register installs a format writer (last registration wins).
func Register(format string, fn func(io.Writer, Stats) error) { Formats[format] = fn }

// Write dispatches s to the named format.
func Write(format string, w io.Writer, s Stats) error {
	fn, ok := Formats[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, s)
}
