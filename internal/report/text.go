// internal/report/text.go
package report

import (
	"fmt"
	"io"
)

func init() { Register("text", WriteText) }

// WriteText prints the report as grep-friendly TSV sections.
func WriteText(w io.Writer, s Stats) error {
	rows := [][2]string{
		{"assembly", s.Assembly},
	}
	if s.TaxonID > 0 {
		rows = append(rows, [2]string{"taxon", fmt.Sprintf("%d\t%s", s.TaxonID, s.TaxonName)})
	}
	rows = append(rows,
		[2]string{"proteins", fmt.Sprint(s.Proteins)},
		[2]string{"peptides", fmt.Sprint(s.Peptides)},
		[2]string{"peptides_filtered", fmt.Sprint(s.Filtered)},
		[2]string{"classified", fmt.Sprint(s.Classified)},
		[2]string{"unclassified", fmt.Sprint(s.Unclassified)},
	)
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	for _, rc := range s.Ranks {
		if _, err := fmt.Fprintf(w, "rank\t%s\t%d\n", rc.Rank, rc.Count); err != nil {
			return err
		}
	}
	for _, tc := range s.Top {
		if _, err := fmt.Fprintf(w, "taxon_count\t%d\t%s\t%s\t%d\n",
			tc.TaxonID, tc.Name, tc.Rank, tc.Count); err != nil {
			return err
		}
	}
	return nil
}
