// Package atomicfile provides the tempfile-then-rename write pattern that
// every persisted store (objects, commits, refs, HEAD) uses to guarantee a
// killed process never leaves a half-written file behind (§4.2, §5).
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write writes data to path by creating a uniquely-named temp file in the
// same directory, fsyncing it, then renaming it over path. The rename is
// atomic because the temp file lives on the same filesystem as path.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".tmp-%s", uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	writeErr := func() error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing temp file: %w", err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("syncing temp file: %w", err)
		}
		return f.Close()
	}()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
