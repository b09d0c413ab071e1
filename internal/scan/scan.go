// Package scan enumerates the tracked-candidate files in the working
// root (C5): non-recursive, skipping anything whose name starts with '.'
// (§4.5). Grounded on the non-recursive filtering in
// original_source/MiniGitSystem.hpp's getUnstagedChanges/populateWorkingDirectory,
// which both walk fs::directory_iterator(".") rather than recursing.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mubarekdevv/my-minigit-trial/internal/digest"
)

// File describes one working-directory file as of the scan.
type File struct {
	Path   string
	Digest string
}

// Ignore reports whether name (a base filename, not a path) should be
// excluded from tracking: anything hidden (leading '.'), which also
// excludes the repository's own metadata directory.
func Ignore(name string) bool {
	return name == "" || strings.HasPrefix(name, ".")
}

// Scan lists every non-hidden regular file directly inside root, along
// with its content digest.
func Scan(root string) ([]File, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading working directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || Ignore(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		content, err := os.ReadFile(filepath.Join(root, entry.Name()))
		if err != nil {
			continue // unreadable files are skipped from the scan, not fatal
		}

		files = append(files, File{
			Path:   entry.Name(),
			Digest: digest.Sum(content),
		})
	}
	return files, nil
}

// ReadFile reads one working-directory file's content by relative path.
func ReadFile(root, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root, path))
}
