// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"peptaxa/internal/app"
)

// stub writes an executable shell script into dir and returns its path.
func stub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// stubTools installs the standard happy-path tool stubs via environment
// overrides and returns the bin directory.
func stubTools(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	bin := t.TempDir()

	tax := stub(t, bin, "fetch-taxonomy",
		`printf '562\tEscherichia coli\n'`)
	prot := stub(t, bin, "fetch-proteins",
		`printf '>WP_001\nMKRISAAKVVLLAAKP\n>WP_002\nGGGDDDEEKMKRISAAK\n'`)
	frag := stub(t, bin, "prot2pept",
		`cat >/dev/null; printf 'MKRISAAK\nVVLLAAKP\nGGGDDDEEK\nMKRISAAK\n'`)
	class := stub(t, bin, "pept2lca",
		`cat >/dev/null
printf 'peptide,taxon_id,taxon_name,taxon_rank\n'
printf 'MKRISAAK,562,Escherichia coli,species\n'
printf 'VVLLAAKP,561,Escherichia,genus\n'
printf 'GGGDDDEEK,0,,\n'
printf 'MKRISAAK,562,Escherichia coli,species\n'`)

	t.Setenv("PEPTAXA_TOOL_TAXONOMY", tax+" {assembly}")
	t.Setenv("PEPTAXA_TOOL_PROTEINS", prot+" {assembly}")
	t.Setenv("PEPTAXA_TOOL_FRAGMENTER", frag)
	t.Setenv("PEPTAXA_TOOL_CLASSIFIER", class)
	return bin
}

func TestEndToEnd(t *testing.T) {
	stubTools(t)
	work := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--work-dir", work, "GCF_000005845.2"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}

	text := out.String()
	for _, want := range []string{
		"assembly\tGCF_000005845.2",
		"taxon\t562\tEscherichia coli",
		"proteins\t2",
		"classified\t3",
		"unclassified\t1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	dir := filepath.Join(work, "GCF_000005845.2")
	for _, name := range []string{"taxonomy.tsv", "proteins.fasta", "peptides.txt", "lca.csv", "report.tsv"} {
		if fi, err := os.Stat(filepath.Join(dir, name)); err != nil || fi.Size() == 0 {
			t.Errorf("artifact %s missing or empty (err=%v)", name, err)
		}
	}
}

func TestCachedRerunNeedsNoTools(t *testing.T) {
	stubTools(t)
	work := t.TempDir()

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--work-dir", work, "GCF_X"}, &out, &errBuf); code != 0 {
		t.Fatalf("first run exit %d, err=%s", code, errBuf.String())
	}

	// Every artifact is cached now; the tools must not run again.
	t.Setenv("PEPTAXA_TOOL_TAXONOMY", "/nonexistent-tool")
	t.Setenv("PEPTAXA_TOOL_PROTEINS", "/nonexistent-tool")
	t.Setenv("PEPTAXA_TOOL_FRAGMENTER", "/nonexistent-tool")
	t.Setenv("PEPTAXA_TOOL_CLASSIFIER", "/nonexistent-tool")

	out.Reset()
	errBuf.Reset()
	if code := app.Run([]string{"--work-dir", work, "GCF_X"}, &out, &errBuf); code != 0 {
		t.Fatalf("cached run exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "classified\t3") {
		t.Fatalf("cached run lost counts:\n%s", out.String())
	}
}

func TestJSONOutput(t *testing.T) {
	stubTools(t)
	work := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--work-dir", work, "-o", "json", "GCF_J"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), `"assembly": "GCF_J"`) {
		t.Fatalf("json report missing assembly:\n%s", out.String())
	}
}

func TestNoHitExitCode(t *testing.T) {
	bin := stubTools(t)
	class := stub(t, bin, "pept2lca-nohit",
		`cat >/dev/null; printf 'MKRISAAK,0,,\n'`)
	t.Setenv("PEPTAXA_TOOL_CLASSIFIER", class)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--work-dir", t.TempDir(), "GCF_N"}, &out, &errBuf)
	if code != 1 {
		t.Fatalf("expected default no-hit exit 1, got %d (err=%s)", code, errBuf.String())
	}

	out.Reset()
	errBuf.Reset()
	code = app.Run([]string{"--work-dir", t.TempDir(), "--no-hit-exit-code", "4", "GCF_N"}, &out, &errBuf)
	if code != 4 {
		t.Fatalf("expected configured no-hit exit 4, got %d", code)
	}
}

func TestToolExitCodePropagates(t *testing.T) {
	bin := stubTools(t)
	fail := stub(t, bin, "fetch-proteins-fail",
		`echo 'server error' >&2; exit 7`)
	t.Setenv("PEPTAXA_TOOL_PROTEINS", fail+" {assembly}")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--work-dir", t.TempDir(), "GCF_F"}, &out, &errBuf)
	if code != 7 {
		t.Fatalf("expected tool exit 7 to propagate, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "server error") {
		t.Fatalf("tool stderr not surfaced:\n%s", errBuf.String())
	}
}

func TestUsageErrorExit2(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--rank", "bogus", "GCF_U"}, &out, &errBuf); code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}
	if code := app.Run([]string{}, &out, &errBuf); code != 0 {
		t.Fatalf("bare invocation should print usage and exit 0, got %d", code)
	}
}

func TestCancelExit130(t *testing.T) {
	bin := stubTools(t)
	slow := stub(t, bin, "fetch-taxonomy-slow", `sleep 5`)
	t.Setenv("PEPTAXA_TOOL_TAXONOMY", slow)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	code := app.RunContext(ctx, []string{"--work-dir", t.TempDir(), "GCF_C"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
