// internal/report/pretty.go
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func init() { Register("pretty", WritePretty) }

// WritePretty renders a human-facing summary. Color is applied only when
// the destination is a terminal (fatih/color handles the detection).
func WritePretty(w io.Writer, s Stats) error {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if _, err := fmt.Fprintf(w, "%s %s\n", bold("Assembly"), s.Assembly); err != nil {
		return err
	}
	if s.TaxonID > 0 {
		if _, err := fmt.Fprintf(w, "%s %s (taxid %d)\n", bold("Organism"), s.TaxonName, s.TaxonID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n%d proteins, %d peptides (%d filtered out)\n",
		s.Proteins, s.Peptides, s.Filtered); err != nil {
		return err
	}

	total := s.Classified + s.Unclassified
	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return 100 * float64(n) / float64(total)
	}
	if _, err := fmt.Fprintf(w, "%s %d (%.1f%%)   %s %d (%.1f%%)\n\n",
		green("classified"), s.Classified, pct(s.Classified),
		red("unclassified"), s.Unclassified, pct(s.Unclassified)); err != nil {
		return err
	}

	if len(s.Top) > 0 {
		if _, err := fmt.Fprintln(w, bold("Top taxa")); err != nil {
			return err
		}
		for _, tc := range s.Top {
			if _, err := fmt.Fprintf(w, "  %7d  %-40s %s\n",
				tc.Count, tc.Name, dim(fmt.Sprintf("%s, taxid %d", tc.Rank, tc.TaxonID))); err != nil {
				return err
			}
		}
	}
	return nil
}
