package cache

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFresh(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	if Fresh(missing) {
		t.Error("missing file reported fresh")
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if Fresh(empty) {
		t.Error("empty file reported fresh")
	}
	full := filepath.Join(dir, "full")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Fresh(full) {
		t.Error("non-empty file reported stale")
	}
}

func TestMaterialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proteins.fasta")
	err := Materialize(path, func(w io.Writer) error {
		_, err := io.WriteString(w, ">p1\nMKRIS\n")
		return err
	})
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), ">p1") {
		t.Fatalf("read back: %q, %v", data, err)
	}
}

func TestMaterializeFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lca.csv")
	boom := errors.New("boom")
	err := Materialize(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	ents, _ := os.ReadDir(dir)
	if len(ents) != 0 {
		t.Fatalf("directory not clean after failure: %v", ents)
	}
}
