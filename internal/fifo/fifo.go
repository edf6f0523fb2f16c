//go:build unix

// internal/fifo/fifo.go
package fifo

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Make creates a named pipe inside dir and returns its path.
func Make(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		return "", fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return path, nil
}

// OpenRead opens the read side without blocking for a writer. The
// descriptor lands in the runtime poller, so reads wait for data rather
// than spinning on EAGAIN.
func OpenRead(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
}

// HoldWrite opens a write-side handle that keeps the pipe from delivering
// EOF until it is closed. A reader must already have the FIFO open, or
// the open fails with ENXIO.
func HoldWrite(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, 0)
}

// OpenWrite opens the write side without blocking for a reader. Closing the
// returned file delivers EOF to the reader once all data is consumed.
func OpenWrite(path string) (*os.File, error) {
	// O_RDWR on a FIFO never blocks and keeps this process counted as a
	// reader, so writes before the consumer attaches don't raise EPIPE.
	return os.OpenFile(path, os.O_RDWR, 0)
}
