package engine

import (
	"testing"

	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBranch(t *testing.T) {
	t.Run("errors when there are no commits yet", func(t *testing.T) {
		r := newTestRepo(t)
		err := CreateBranch(r, "feature")
		assert.ErrorIs(t, err, minigiterrors.ErrNoCommits)
	})

	t.Run("creates a branch pointing at HEAD's commit", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		first, err := Commit(r, fixedClock, "v1")
		require.NoError(t, err)

		require.NoError(t, CreateBranch(r, "feature"))

		dig, ok, err := r.Refs.ReadBranch("feature")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first.Commit.Digest, dig)
	})

	t.Run("errors when the branch already exists", func(t *testing.T) {
		r := newTestRepo(t)
		writeFile(t, r, "file.txt", "v1\n")
		_, err := Add(r, "file.txt")
		require.NoError(t, err)
		_, err = Commit(r, fixedClock, "v1")
		require.NoError(t, err)
		require.NoError(t, CreateBranch(r, "feature"))

		err = CreateBranch(r, "feature")
		assert.ErrorIs(t, err, minigiterrors.ErrBranchExists)
	})
}
