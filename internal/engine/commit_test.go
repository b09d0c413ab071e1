package engine

import (
	"testing"

	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit(t *testing.T) {
	t.Run("no-op when nothing is staged", func(t *testing.T) {
		r := newTestRepo(t)
		_, err := Commit(r, fixedClock, "empty commit")
		assert.ErrorIs(t, err, minigiterrors.ErrNoEffectiveChanges)
		assert.Equal(t, 0, r.Index.Len())
	})

	t.Run("first commit has no parent and advances the branch ref", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "Line 1\nLine 2\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)

		result, err := Commit(r, fixedClock, "Add file.txt")
		require.NoError(t, err)
		require.NotNil(t, result.Commit)
		assert.Empty(t, result.Commit.Parents)
		assert.Equal(t, 0, r.Index.Len())

		dig, ok, err := r.Refs.ReadBranch("master")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, result.Commit.Digest, dig)
	})

	t.Run("amend by re-add links to the prior commit", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "Line 1\nLine 2\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "Add file.txt")
		require.NoError(t, err)

		writeFile(t, r, "file.txt", "Modified Line 1\nLine 2\nNew Line 3\n")
		_, err = Add(r, "file.txt")
		require.NoError(t, err)
		second, err := Commit(r, fixedClock, "Modify")
		require.NoError(t, err)

		assert.Equal(t, []string{first.Commit.Digest}, second.Commit.Parents)
		assert.NotEqual(t, first.Commit.Tree["file.txt"], second.Commit.Tree["file.txt"])
	})

	t.Run("staged deletion removes the path from the new tree", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "a.txt", "keep\n")
		writeFile(t, r, "b.txt", "remove me\n")
		_, err := Add(r, "a.txt")
		require.NoError(t, err)
		_, err = Add(r, "b.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "two files")
		require.NoError(t, err)

		require.NoError(t, removeFile(r, "b.txt"))
		result, err := Commit(r, fixedClock, "remove b.txt")
		require.NoError(t, err)

		_, hasB := result.Commit.Tree["b.txt"]
		assert.False(t, hasB)
		_, hasA := result.Commit.Tree["a.txt"]
		assert.True(t, hasA)
	})

	t.Run("detached HEAD commit updates only HEAD, not a branch", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		_, err = Checkout(r, first.Commit.Digest)
		require.NoError(t, err)

		writeFile(t, r, "file.txt", "v2\n")
		_, err = Add(r, "file.txt")
		require.NoError(t, err)
		second, err := Commit(r, fixedClock, "v2 detached")
		require.NoError(t, err)

		masterDigest, _, err := r.Refs.ReadBranch("master")
		require.NoError(t, err)
		assert.Equal(t, first.Commit.Digest, masterDigest)

		head, err := r.Head()
		require.NoError(t, err)
		assert.False(t, head.Attached())
		assert.Equal(t, second.Commit.Digest, head.Commit)
	})
}
