package peptide

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeep(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		pept string
		want bool
	}{
		{"too short", DefaultFilter(), "MKR", false},
		{"at min", DefaultFilter(), "MKRIS", true},
		{"too long", DefaultFilter(), strings.Repeat("K", 51), false},
		{"unlimited max", Filter{MinLength: 5}, strings.Repeat("K", 51), true},
		{"contains ok", Filter{Contains: "C"}, "MACK", true},
		{"contains missing", Filter{Contains: "C"}, "MAKK", false},
		{"lacks hit", Filter{Lacks: "X"}, "MAXK", false},
		{"lacks ok", Filter{Lacks: "X"}, "MAKK", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Keep(tc.pept); got != tc.want {
				t.Fatalf("Keep(%q) = %v, want %v", tc.pept, got, tc.want)
			}
		})
	}
}

func TestApplyPreservesHeaders(t *testing.T) {
	in := ">prot1\nMKRIS\nMK\nAAKKRPW\n>prot2\nR\nVVLLKAA\n"
	var out bytes.Buffer
	kept, dropped, err := DefaultFilter().Apply(strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if kept != 3 || dropped != 2 {
		t.Fatalf("kept=%d dropped=%d, want 3/2", kept, dropped)
	}
	want := ">prot1\nMKRIS\nAAKKRPW\n>prot2\nVVLLKAA\n"
	if out.String() != want {
		t.Fatalf("output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestCountLines(t *testing.T) {
	n, err := CountLines(strings.NewReader(">h\nAAAAA\n\nBBBBB\n"))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
}
