package engine

import (
	"os"
	"path/filepath"
	"testing"

	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/logging"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Run("refuses a dirty working directory and leaves state untouched", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)
		require.NoError(t, CreateBranch(r, "feature"))

		writeFile(t, r, "file.txt", "dirty\n")

		_, err = Checkout(r, "feature")
		assert.ErrorIs(t, err, minigiterrors.ErrWorkingDirDirty)

		head, err := r.Head()
		require.NoError(t, err)
		assert.Equal(t, "master", head.Branch)
		assert.Equal(t, first.Commit.Digest, head.Commit)
		assert.Equal(t, "dirty\n", readFile(t, r, "file.txt"))
	})

	t.Run("resolves an exact branch name", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "v1")
		require.NoError(t, err)
		require.NoError(t, CreateBranch(r, "feature"))

		result, err := Checkout(r, "feature")
		require.NoError(t, err)
		assert.False(t, result.AlreadyCurrent)
		assert.Equal(t, "feature", result.Head.Branch)
	})

	t.Run("resolves an exact commit digest and detaches HEAD", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		result, err := Checkout(r, first.Commit.Digest)
		require.NoError(t, err)
		assert.False(t, result.Head.Attached())
		assert.Equal(t, first.Commit.Digest, result.Head.Commit)
	})

	t.Run("resolves an unambiguous prefix", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		result, err := Checkout(r, first.Commit.Digest[:4])
		require.NoError(t, err)
		assert.Equal(t, first.Commit.Digest, result.Head.Commit)
	})

	t.Run("rejects an unknown target", func(t *testing.T) {
		r := newTestRepo(t)
		_, err := Checkout(r, "nope")
		assert.ErrorIs(t, err, minigiterrors.ErrUnknownTarget)
	})

	t.Run("reports a corrupt commit record as corrupt, not unknown", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		writeFile(t, r, "file.txt", "v2\n")
		_, err = Add(r, "file.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "v2")
		require.NoError(t, err)

		commitPath := filepath.Join(r.MetaDir, "commits", first.Commit.Digest)
		require.NoError(t, os.WriteFile(commitPath, []byte("not a commit record"), 0644))

		// Reopen so the commit cache is rebuilt from disk rather than still
		// holding the pre-corruption record for this digest.
		reopened, err := repo.Open(r.Root, logging.Nop())
		require.NoError(t, err)

		_, err = Checkout(reopened, first.Commit.Digest)
		require.Error(t, err)
		coreErr, ok := err.(*minigiterrors.Error)
		require.True(t, ok)
		assert.Equal(t, minigiterrors.CorruptCommit, coreErr.Kind)
	})

	t.Run("already on target short-circuits", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		result, err := Checkout(r, "master")
		require.NoError(t, err)
		assert.True(t, result.AlreadyCurrent)
	})

	t.Run("checking out a branch with no commits clears the working root", func(t *testing.T) {
		r := newTestRepo(t)
		require.NoError(t, r.Refs.WriteBranch("empty", ""))
		writeFile(t, r, "stray.txt", "leftover\n")

		_, err := Checkout(r, "empty")
		require.NoError(t, err)
		assert.False(t, fileExists(r, "stray.txt"))
	})

	t.Run("reconciling the working directory overwrites tracked files and removes untracked-by-target ones", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "a.txt", "a-on-master\n")
		_, err := Add(r, "a.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "master commit")
		require.NoError(t, err)
		require.NoError(t, CreateBranch(r, "feature"))
		_, err = Checkout(r, "feature")
		require.NoError(t, err)

		writeFile(t, r, "a.txt", "a-on-feature\n")
		writeFile(t, r, "b.txt", "only-on-feature\n")
		_, err = Add(r, "a.txt")
		require.NoError(t, err)
		_, err = Add(r, "b.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "feature commit")
		require.NoError(t, err)

		_, err = Checkout(r, "master")
		require.NoError(t, err)
		assert.Equal(t, "a-on-master\n", readFile(t, r, "a.txt"))
		assert.False(t, fileExists(r, "b.txt"))
	})
}
