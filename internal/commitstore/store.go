package commitstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mubarekdevv/my-minigit-trial/internal/atomicfile"
)

// ReadStatus is the sum-type tag for Read's result, per the Design Notes'
// guidance against overloading a single map to mean both "corrupt" and
// "absent": Ok(Commit), Missing, or Corrupt are distinguished explicitly.
type ReadStatus int

const (
	StatusOK ReadStatus = iota
	StatusMissing
	StatusCorrupt
)

// Store persists commit records under root and caches them in an LRU
// keyed by digest, eagerly populated at Open and lazily extended on a
// cache miss for any commit referenced later (§4.2).
type Store struct {
	root  string
	cache *lru.Cache[string, *Commit]
	mu    sync.Mutex
}

// Open loads every commit record already on disk under dir into the
// in-memory cache and returns a Store ready for further writes and reads.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating commit store directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing commit store: %w", err)
	}

	// Size the cache to hold every known commit up front (at least 64). The
	// capacity is fixed: once the cache is full, each later write or lazy
	// load evicts the least recently used entry.
	capacity := len(entries)
	if capacity < 64 {
		capacity = 64
	}
	cache, err := lru.New[string, *Commit](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating commit cache: %w", err)
	}

	s := &Store{root: dir, cache: cache}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dig := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, dig))
		if err != nil {
			continue // surfaced again on explicit Read
		}
		if c, ok := decode(dig, data); ok {
			s.cache.Add(dig, c)
		}
	}

	return s, nil
}

func (s *Store) path(dig string) string {
	return filepath.Join(s.root, dig)
}

// Write persists c as an all-or-nothing append: either the full record
// lands on disk under its digest, or nothing does (§4.2).
func (s *Store) Write(c *Commit) error {
	data := encode(c)
	if err := atomicfile.Write(s.path(c.Digest), data, 0644); err != nil {
		return fmt.Errorf("writing commit %s: %w", c.Digest, err)
	}

	s.mu.Lock()
	s.cache.Add(c.Digest, c)
	s.mu.Unlock()
	return nil
}

// Read resolves dig to a Commit, growing the cache on a lazy load. The
// ReadStatus distinguishes "never existed" from "record on disk but
// unparseable", both of which callers must handle differently (§7).
func (s *Store) Read(dig string) (*Commit, ReadStatus) {
	s.mu.Lock()
	if c, ok := s.cache.Get(dig); ok {
		s.mu.Unlock()
		return c, StatusOK
	}
	s.mu.Unlock()

	data, err := os.ReadFile(s.path(dig))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, StatusMissing
		}
		return nil, StatusCorrupt
	}

	c, ok := decode(dig, data)
	if !ok {
		return nil, StatusCorrupt
	}

	s.mu.Lock()
	s.cache.Add(dig, c)
	s.mu.Unlock()
	return c, StatusOK
}

// AllDigests returns every commit digest currently cached, used for the
// prefix-resolution step of checkout (§4.7 step 2c). Because Open eagerly
// loads the whole store into a cache sized to hold it, this is the full
// on-disk set unless more commits have since been cached than that
// capacity holds (evicted ones are not listed), or a commit was written by
// a concurrent process, which §5 declares out of scope.
func (s *Store) AllDigests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	digests := make([]string, 0, s.cache.Len())
	for _, k := range s.cache.Keys() {
		digests = append(digests, k)
	}
	return digests
}
