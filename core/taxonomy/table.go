// core/taxonomy/table.go
package taxonomy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Assignment is one row of the classifier's output table:
// a peptide mapped to the lowest common ancestor of its matching taxa.
type Assignment struct {
	Peptide   string
	TaxonID   int
	TaxonName string
	Rank      Rank
}

// Classified reports whether the assignment carries a real taxon.
// Classifiers running one-on-one map unknown peptides to taxon 0.
func (a Assignment) Classified() bool { return a.TaxonID > 0 }

// ReadTable parses classifier CSV output (peptide,taxon_id,taxon_name,
// taxon_rank) and calls emit per row. A leading header row is skipped.
// Rows with fewer than two fields are rejected; name and rank are optional.
func ReadTable(r io.Reader, emit func(Assignment) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lca table: %w", err)
		}
		if first {
			first = false
			if len(rec) > 0 && rec[0] == "peptide" {
				continue
			}
		}
		if len(rec) < 2 {
			return fmt.Errorf("lca table: row %v: need at least peptide and taxon_id", rec)
		}
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			return fmt.Errorf("lca table: bad taxon_id %q: %w", rec[1], err)
		}
		a := Assignment{Peptide: rec[0], TaxonID: id}
		if len(rec) > 2 {
			a.TaxonName = rec[2]
		}
		if len(rec) > 3 {
			if rk, err := ParseRank(rec[3]); err == nil {
				a.Rank = rk
			} else {
				a.Rank = RankNoRank
			}
		}
		if err := emit(a); err != nil {
			return err
		}
	}
}
