package cli

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("peptaxa")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParsePositionalAssembly(t *testing.T) {
	opt, err := parse(t, "GCF_000005845.2", "--output", "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Assembly != "GCF_000005845.2" {
		t.Errorf("assembly = %q", opt.Assembly)
	}
	if opt.Output != "json" {
		t.Errorf("output = %q", opt.Output)
	}
	if opt.MinLen != 5 || opt.MaxLen != 50 {
		t.Errorf("filter defaults lost: %d/%d", opt.MinLen, opt.MaxLen)
	}
}

func TestParseFlagAndPositionalConflict(t *testing.T) {
	_, err := parse(t, "--assembly", "A", "B")
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseRequiresAssembly(t *testing.T) {
	if _, err := parse(t, "--output", "text"); err == nil {
		t.Fatal("expected error without assembly ID")
	}
}

func TestParseHelp(t *testing.T) {
	_, err := parse(t, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		argv []string
	}{
		{"bad output", []string{"A", "--output", "xml"}},
		{"bad rank", []string{"A", "--rank", "clade-ish"}},
		{"min over max", []string{"A", "--min-length", "60", "--max-length", "50"}},
		{"zero min", []string{"A", "--min-length", "0"}},
		{"exit code range", []string{"A", "--no-hit-exit-code", "300"}},
		{"quiet verbose", []string{"A", "--quiet", "--verbose"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse(t, tc.argv...); err == nil {
				t.Fatalf("argv %v: expected error", tc.argv)
			}
		})
	}
}

func TestParseVersionShortCircuits(t *testing.T) {
	opt, err := parse(t, "--version")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !opt.Version {
		t.Fatal("version flag lost")
	}
}
