package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mubarekdevv/my-minigit-trial/internal/clock"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/logging"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	r, err := repo.Init(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return r
}

func writeFile(t *testing.T, r *repo.Repository, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(r.Root, path), []byte(content), 0644))
}

func readFile(t *testing.T, r *repo.Repository, path string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(r.Root, path))
	require.NoError(t, err)
	return string(content)
}

func fileExists(r *repo.Repository, path string) bool {
	_, err := os.Stat(filepath.Join(r.Root, path))
	return err == nil
}

func removeFile(r *repo.Repository, path string) error {
	return os.Remove(filepath.Join(r.Root, path))
}

func readRawFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(content))
}

func assertWorkingDirDirty(t *testing.T, err error) {
	t.Helper()
	assert.ErrorIs(t, err, minigiterrors.ErrWorkingDirDirty)
}

var fixedClock = clock.Fixed("2024-01-01 00:00:00")
