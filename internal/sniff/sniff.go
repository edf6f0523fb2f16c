// internal/sniff/sniff.go
package sniff

import (
	"bufio"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// Reader pairs a buffered stream with the result of content sniffing.
type Reader struct {
	io.Reader
	MIME string
	Gzip bool
}

// Stream sniffs the head of r without consuming it and returns a Reader
// that replays the full stream.
func Stream(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 4096)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	mt := mimetype.Detect(head)
	gz := mt.Is("application/gzip") || isGzipMagic(head)
	return &Reader{Reader: br, MIME: mt.String(), Gzip: gz}, nil
}

func isGzipMagic(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}
