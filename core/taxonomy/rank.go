// core/taxonomy/rank.go
package taxonomy

import (
	"fmt"
	"strings"
)

// Rank is a named level of the NCBI taxonomy.
type Rank string

const (
	RankNoRank Rank = "no rank"
	RankGenus  Rank = "genus"
	RankSpecies Rank = "species"
)

// ranks, root-first. Order matters: it defines rank depth.
var ranks = []Rank{
	RankNoRank,
	"superkingdom",
	"kingdom",
	"subkingdom",
	"superphylum",
	"phylum",
	"subphylum",
	"superclass",
	"class",
	"subclass",
	"infraclass",
	"superorder",
	"order",
	"suborder",
	"infraorder",
	"parvorder",
	"superfamily",
	"family",
	"subfamily",
	"tribe",
	"subtribe",
	RankGenus,
	"subgenus",
	"species group",
	"species subgroup",
	RankSpecies,
	"subspecies",
	"varietas",
	"forma",
}

var rankIndex = func() map[Rank]int {
	m := make(map[Rank]int, len(ranks))
	for i, r := range ranks {
		m[r] = i
	}
	return m
}()

// Ranks returns all known ranks, root-first.
func Ranks() []Rank {
	return append([]Rank(nil), ranks...)
}

// ParseRank normalizes and validates a rank name.
func ParseRank(s string) (Rank, error) {
	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rankIndex[r]; !ok {
		return RankNoRank, fmt.Errorf("unknown rank %q", s)
	}
	return r, nil
}

// Depth returns the position of r in the rank order (0 = "no rank").
func (r Rank) Depth() int { return rankIndex[r] }

// AtOrBelow reports whether r is at least as specific as other.
// "no rank" is never at or below a named rank.
func (r Rank) AtOrBelow(other Rank) bool {
	if r == RankNoRank {
		return other == RankNoRank
	}
	return r.Depth() >= other.Depth()
}

func (r Rank) String() string { return string(r) }
