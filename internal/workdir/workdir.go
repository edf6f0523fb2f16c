// internal/workdir/workdir.go
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Dir is the on-disk workspace for one assembly: a stable per-assembly
// directory holding cached pipeline outputs, plus a per-run scratch
// directory removed by Cleanup unless keep is set.
type Dir struct {
	Root string
	Temp string
	keep bool
}

// Open creates (if needed) the per-assembly directory under root and a
// fresh scratch directory inside it.
func Open(root, assembly string, keep bool) (*Dir, error) {
	if assembly == "" {
		return nil, fmt.Errorf("workdir: empty assembly ID")
	}
	name := sanitize(assembly)
	if name == "." || name == ".." {
		return nil, fmt.Errorf("workdir: invalid assembly ID %q", assembly)
	}
	base := filepath.Join(root, name)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	tmp := filepath.Join(base, "tmp-"+uuid.NewString()[:8])
	if err := os.Mkdir(tmp, 0o755); err != nil {
		return nil, err
	}
	return &Dir{Root: base, Temp: tmp, keep: keep}, nil
}

// Path returns the path of a cached artifact inside the workspace.
func (d *Dir) Path(name string) string { return filepath.Join(d.Root, name) }

// TempPath returns a path inside the per-run scratch directory.
func (d *Dir) TempPath(name string) string { return filepath.Join(d.Temp, name) }

// Cleanup removes the scratch directory unless the workspace was opened
// with keep.
func (d *Dir) Cleanup() error {
	if d.keep {
		return nil
	}
	return os.RemoveAll(d.Temp)
}

// sanitize keeps assembly IDs filesystem-safe.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}
