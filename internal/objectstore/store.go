// Package objectstore is the content-addressed blob store (C1): one file
// per blob under root, named by its digest. Grounded on the teacher's
// internal/safe.Safe (LRU-cached, digest-keyed filesystem store) and
// systemshift-memex-fs/internal/dag/store.go's ObjectStore, adapted to the
// flat single-file-per-digest layout §6 mandates instead of either's
// sharded-directory layout.
package objectstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mubarekdevv/my-minigit-trial/internal/atomicfile"
	"github.com/mubarekdevv/my-minigit-trial/internal/digest"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
)

// Store persists and retrieves blobs keyed by content digest.
type Store struct {
	root  string
	cache *lru.Cache[string, []byte]
	mu    sync.Mutex
}

// New opens (creating if necessary) an object store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating object store directory: %w", err)
	}
	cache, err := lru.New[string, []byte](1000)
	if err != nil {
		return nil, fmt.Errorf("creating object cache: %w", err)
	}
	return &Store{root: dir, cache: cache}, nil
}

func (s *Store) path(dig string) string {
	return filepath.Join(s.root, dig)
}

// Put stores content and returns its digest. Put is idempotent: writing
// the same bytes twice leaves the store in the same state and returns the
// same digest both times (§4.1, §8.1).
func (s *Store) Put(content []byte) (string, error) {
	if content == nil {
		content = []byte{}
	}
	dig := digest.Sum(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(dig)
	if _, err := os.Stat(path); err == nil {
		s.cache.Add(dig, content)
		return dig, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking blob %s: %w", dig, err)
	}

	if err := atomicfile.Write(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing blob %s: %w", dig, err)
	}
	s.cache.Add(dig, content)
	return dig, nil
}

// Get retrieves the blob for dig, returning a *minigiterrors.Error of Kind
// MissingObject when it is unknown. An empty result is a valid blob, never
// confused with a read failure (§4.1, Open Question in §9).
func (s *Store) Get(dig string) ([]byte, error) {
	s.mu.Lock()
	if content, ok := s.cache.Get(dig); ok {
		s.mu.Unlock()
		return content, nil
	}
	s.mu.Unlock()

	content, err := os.ReadFile(s.path(dig))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, minigiterrors.Wrap(minigiterrors.MissingObject, fmt.Sprintf("object %s not found", dig), err)
		}
		return nil, fmt.Errorf("reading blob %s: %w", dig, err)
	}

	s.mu.Lock()
	s.cache.Add(dig, content)
	s.mu.Unlock()
	return content, nil
}

// Exists reports whether dig resolves in the store.
func (s *Store) Exists(dig string) bool {
	if dig == "" {
		return false
	}
	s.mu.Lock()
	if _, ok := s.cache.Get(dig); ok {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	_, err := os.Stat(s.path(dig))
	return err == nil
}
