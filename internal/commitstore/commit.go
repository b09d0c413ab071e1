// Package commitstore is the commit graph store (C2): immutable commit
// records keyed by their own content digest, with an eager-loaded,
// lazily-extended in-memory cache. Grounded on the teacher's
// internal/safe.Safe (LRU cache in front of a filesystem store) and
// original_source/MiniGitSystem.hpp's writeCommitToFile/loadCommitFromFile
// for the exact on-disk record shape §6 specifies.
package commitstore

import (
	"sort"
	"strings"

	"github.com/mubarekdevv/my-minigit-trial/internal/digest"
)

// Commit is an immutable snapshot record (§3).
type Commit struct {
	Digest    string
	Message   string
	Timestamp string
	Parents   []string
	Tree      map[string]string // path -> blob digest
}

// sortedPaths returns the tree's paths in a stable order, used for on-disk
// serialization. ComputeDigest sorts the paths the same way on its own.
func (c *Commit) sortedPaths() []string {
	paths := make([]string, 0, len(c.Tree))
	for p := range c.Tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ComputeDigest derives the deterministic commit digest from
// (message, timestamp, ordered parents, tree) per §4.6 step 5 and
// invariant 5 in §3: digest(message || timestamp || parents... || (path ||
// blob)...). Tree iteration order is sorted by path so identical inputs
// always hash identically, regardless of map iteration order.
func ComputeDigest(message, timestamp string, parents []string, tree map[string]string) string {
	var b strings.Builder
	b.WriteString(message)
	b.WriteString(timestamp)
	for _, p := range parents {
		b.WriteString(p)
	}

	paths := make([]string, 0, len(tree))
	for p := range tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		b.WriteString(p)
		b.WriteString(tree[p])
	}

	return digest.Sum([]byte(b.String()))
}

// New builds a Commit and computes its digest.
func New(message, timestamp string, parents []string, tree map[string]string) *Commit {
	c := &Commit{
		Message:   message,
		Timestamp: timestamp,
		Parents:   append([]string{}, parents...),
		Tree:      tree,
	}
	c.Digest = ComputeDigest(message, timestamp, c.Parents, tree)
	return c
}
