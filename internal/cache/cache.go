// internal/cache/cache.go
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Fresh reports whether path exists as a non-empty regular file.
// Empty files count as stale: an interrupted tool can leave them behind.
func Fresh(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Size() > 0
}

// Materialize writes path atomically: fill writes into a sibling temp file
// that is renamed onto path on success and removed on failure. A partial
// write never becomes visible under the final name.
func Materialize(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".part-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
