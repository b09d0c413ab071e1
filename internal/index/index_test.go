package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	t.Run("stage reports new entry as changed", func(t *testing.T) {
		idx := New()
		assert.True(t, idx.Stage("a.txt", "dig1"))
	})

	t.Run("re-staging identical digest is not a change", func(t *testing.T) {
		idx := New()
		idx.Stage("a.txt", "dig1")
		assert.False(t, idx.Stage("a.txt", "dig1"))
	})

	t.Run("staging a different digest is a change", func(t *testing.T) {
		idx := New()
		idx.Stage("a.txt", "dig1")
		assert.True(t, idx.Stage("a.txt", "dig2"))
	})

	t.Run("get reflects the latest staged digest", func(t *testing.T) {
		idx := New()
		idx.Stage("a.txt", "dig1")
		idx.Stage("a.txt", "dig2")
		dig, ok := idx.Get("a.txt")
		assert.True(t, ok)
		assert.Equal(t, "dig2", dig)
	})

	t.Run("clear empties the index", func(t *testing.T) {
		idx := New()
		idx.Stage("a.txt", "dig1")
		idx.Clear()
		assert.Equal(t, 0, idx.Len())
		_, ok := idx.Get("a.txt")
		assert.False(t, ok)
	})

	t.Run("entries is an independent snapshot", func(t *testing.T) {
		idx := New()
		idx.Stage("a.txt", "dig1")
		snapshot := idx.Entries()
		idx.Stage("b.txt", "dig2")
		assert.Len(t, snapshot, 1)
		assert.Equal(t, 2, idx.Len())
	})
}
