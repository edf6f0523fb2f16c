// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record represents a parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// StreamCtx parses FASTA from r and calls emit once per record.
// It is cancelable, returning promptly when ctx is Done, even mid-record.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id  string
		seq = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if id == "" && len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if id != "" || len(seq) > 0 {
				if err := flush(); err != nil {
					return err
				}
				seq = seq[:0]
			}
			id = parseHeaderID(line[1:])
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// StreamPath opens path (gzip and "-" handled by Open) and streams records.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return StreamCtx(ctx, rc, emit)
}

// Count returns the number of records and total residues in path.
func Count(ctx context.Context, path string) (records int, residues int64, err error) {
	err = StreamPath(ctx, path, func(r Record) error {
		records++
		residues += int64(len(r.Seq))
		return nil
	})
	return records, residues, err
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
