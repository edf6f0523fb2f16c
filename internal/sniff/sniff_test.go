package sniff

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestStreamDetectsGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := pgzip.NewWriter(&buf)
	if _, err := io.WriteString(gw, ">p1\nMKRIS\n"); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	compressed := buf.Bytes()

	sr, err := Stream(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if !sr.Gzip {
		t.Errorf("gzip not detected, mime=%s", sr.MIME)
	}
	// Sniffing must not consume the stream.
	replay, err := io.ReadAll(sr)
	if err != nil {
		t.Fatalf("readall: %v", err)
	}
	if !bytes.Equal(replay, compressed) {
		t.Errorf("stream not replayed intact: %d vs %d bytes", len(replay), len(compressed))
	}
}

func TestStreamPlainText(t *testing.T) {
	sr, err := Stream(strings.NewReader(">p1\nMKRIS\n"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if sr.Gzip {
		t.Error("plain FASTA misdetected as gzip")
	}
}

func TestStreamEmpty(t *testing.T) {
	sr, err := Stream(strings.NewReader(""))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if sr.Gzip {
		t.Error("empty input misdetected as gzip")
	}
}
