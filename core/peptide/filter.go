// core/peptide/filter.go
package peptide

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Filter holds acceptance criteria for peptide lines.
type Filter struct {
	MinLength int    // shortest peptide kept
	MaxLength int    // longest peptide kept (0 = unlimited)
	Contains  string // residues a peptide must contain
	Lacks     string // residues a peptide must not contain

	Unique *Deduper // drop repeated peptides when set
}

// DefaultFilter matches the historical pipeline defaults.
func DefaultFilter() Filter {
	return Filter{MinLength: 5, MaxLength: 50}
}

// Keep reports whether peptide p passes the filter.
func (f Filter) Keep(p string) bool {
	if len(p) < f.MinLength {
		return false
	}
	if f.MaxLength > 0 && len(p) > f.MaxLength {
		return false
	}
	for _, c := range f.Contains {
		if !strings.ContainsRune(p, c) {
			return false
		}
	}
	for _, c := range f.Lacks {
		if strings.ContainsRune(p, c) {
			return false
		}
	}
	return true
}

// Apply copies a peptide stream from r to w, dropping peptide lines that fail
// the filter. Header lines (starting with '>') and blank lines pass through
// untouched. It returns the number of peptides kept and dropped.
func (f Filter) Apply(r io.Reader, w io.Writer) (kept, dropped int, err error) {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '>' {
			if _, err = fmt.Fprintln(bw, line); err != nil {
				return kept, dropped, err
			}
			continue
		}
		if !f.Keep(line) {
			dropped++
			continue
		}
		if f.Unique != nil && f.Unique.Seen(line) {
			dropped++
			continue
		}
		kept++
		if _, err = fmt.Fprintln(bw, line); err != nil {
			return kept, dropped, err
		}
	}
	if err = sc.Err(); err != nil {
		return kept, dropped, fmt.Errorf("peptide scan: %w", err)
	}
	return kept, dropped, bw.Flush()
}

// CountLines counts peptide lines (non-header, non-blank) in r.
func CountLines(r io.Reader) (int, error) {
	n := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 || line[0] == '>' {
			continue
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, nil
}
