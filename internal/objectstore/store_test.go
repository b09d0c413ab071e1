package objectstore

import (
	"testing"

	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("put then get round-trips exact bytes", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		dig, err := s.Put([]byte("hello world"))
		require.NoError(t, err)

		content, err := s.Get(dig)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(content))
	})

	t.Run("put is idempotent", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		digA, err := s.Put([]byte("same content"))
		require.NoError(t, err)
		digB, err := s.Put([]byte("same content"))
		require.NoError(t, err)

		assert.Equal(t, digA, digB)
		assert.True(t, s.Exists(digA))
	})

	t.Run("empty content is a valid blob", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		dig, err := s.Put([]byte{})
		require.NoError(t, err)

		content, err := s.Get(dig)
		require.NoError(t, err)
		assert.Equal(t, []byte{}, content)
	})

	t.Run("get on unknown digest returns MissingObject", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		_, err = s.Get("nonexistent-digest")
		require.Error(t, err)
		assert.True(t, isMissingObject(err))
	})

	t.Run("exists reflects store state", func(t *testing.T) {
		s, err := New(t.TempDir())
		require.NoError(t, err)

		assert.False(t, s.Exists("not-there"))
		dig, err := s.Put([]byte("tracked"))
		require.NoError(t, err)
		assert.True(t, s.Exists(dig))
	})

	t.Run("survives reopening against the same directory", func(t *testing.T) {
		dir := t.TempDir()
		s1, err := New(dir)
		require.NoError(t, err)
		dig, err := s1.Put([]byte("persisted"))
		require.NoError(t, err)

		s2, err := New(dir)
		require.NoError(t, err)
		content, err := s2.Get(dig)
		require.NoError(t, err)
		assert.Equal(t, "persisted", string(content))
	})
}

func isMissingObject(err error) bool {
	coreErr, ok := err.(*minigiterrors.Error)
	return ok && coreErr.Kind == minigiterrors.MissingObject
}
