// internal/report/report.go
package report

import (
	"sort"

	"peptaxa-core/taxonomy"
)

// TaxonCount is one taxon with its assignment count.
type TaxonCount struct {
	TaxonID int    `json:"taxon_id"`
	Name    string `json:"name"`
	Rank    string `json:"rank"`
	Count   int    `json:"count"`
}

// RankCount is the number of assignments landing on one rank.
type RankCount struct {
	Rank  string `json:"rank"`
	Count int    `json:"count"`
}

// Stats summarizes one pipeline run.
type Stats struct {
	Assembly     string       `json:"assembly"`
	TaxonID      int          `json:"taxon_id,omitempty"`
	TaxonName    string       `json:"taxon_name,omitempty"`
	Proteins     int          `json:"proteins"`
	Peptides     int          `json:"peptides"`
	Filtered     int          `json:"peptides_filtered"`
	Classified   int          `json:"classified"`
	Unclassified int          `json:"unclassified"`
	Ranks        []RankCount  `json:"rank_counts"`
	Top          []TaxonCount `json:"top_taxa"`
}

// Builder aggregates classifier assignments into Stats.
type Builder struct {
	assembly  string
	taxonID   int
	taxonName string
	proteins  int
	peptides  int
	filtered  int

	classified int
	zeroRows   int
	byTaxon    map[int]*TaxonCount
	byRank     map[taxonomy.Rank]int
}

func NewBuilder(assembly string) *Builder {
	return &Builder{
		assembly: assembly,
		byTaxon:  make(map[int]*TaxonCount),
		byRank:   make(map[taxonomy.Rank]int),
	}
}

// SetTaxon records the assembly's own taxon from the taxonomy fetch.
func (b *Builder) SetTaxon(id int, name string) {
	b.taxonID, b.taxonName = id, name
}

// SetCounts records the upstream pipeline counters.
func (b *Builder) SetCounts(proteins, peptides, filtered int) {
	b.proteins, b.peptides, b.filtered = proteins, peptides, filtered
}

// Add folds one classifier assignment into the tallies.
func (b *Builder) Add(a taxonomy.Assignment) {
	if !a.Classified() {
		b.zeroRows++
		return
	}
	b.classified++
	b.byRank[a.Rank]++
	tc, ok := b.byTaxon[a.TaxonID]
	if !ok {
		tc = &TaxonCount{TaxonID: a.TaxonID, Name: a.TaxonName, Rank: string(a.Rank)}
		b.byTaxon[a.TaxonID] = tc
	}
	tc.Count++
}

// Stats finalizes the report. Top taxa are restricted to assignments at
// least as specific as atRank and capped at top entries; ties break on
// taxon ID so output is deterministic.
func (b *Builder) Stats(atRank taxonomy.Rank, top int) Stats {
	s := Stats{
		Assembly:   b.assembly,
		TaxonID:    b.taxonID,
		TaxonName:  b.taxonName,
		Proteins:   b.proteins,
		Peptides:   b.peptides,
		Filtered:   b.filtered,
		Classified: b.classified,
	}
	if b.peptides > 0 {
		s.Unclassified = b.peptides - b.classified
		if s.Unclassified < 0 {
			s.Unclassified = 0
		}
	} else {
		s.Unclassified = b.zeroRows
	}

	for _, r := range taxonomy.Ranks() {
		if n := b.byRank[r]; n > 0 {
			s.Ranks = append(s.Ranks, RankCount{Rank: string(r), Count: n})
		}
	}

	for _, tc := range b.byTaxon {
		rk, err := taxonomy.ParseRank(tc.Rank)
		if err != nil || !rk.AtOrBelow(atRank) {
			continue
		}
		s.Top = append(s.Top, *tc)
	}
	sort.Slice(s.Top, func(i, j int) bool {
		if s.Top[i].Count != s.Top[j].Count {
			return s.Top[i].Count > s.Top[j].Count
		}
		return s.Top[i].TaxonID < s.Top[j].TaxonID
	})
	if top > 0 && len(s.Top) > top {
		s.Top = s.Top[:top]
	}
	return s
}
