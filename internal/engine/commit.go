// Package engine holds the Core operations (C7-C9) that mutate a
// Repository consistently: commit, checkout, and log. Grounded on
// original_source/MiniGitSystem.hpp's commit/checkout/log methods, which
// this package splits into one file per operation the way the teacher
// splits internal/workspace's responsibilities across files.
package engine

import (
	"go.uber.org/zap"

	"github.com/mubarekdevv/my-minigit-trial/internal/clock"
	"github.com/mubarekdevv/my-minigit-trial/internal/commitstore"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/refstore"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
	"github.com/mubarekdevv/my-minigit-trial/internal/scan"
	"github.com/mubarekdevv/my-minigit-trial/internal/status"
)

// CommitResult reports the outcome of Commit.
type CommitResult struct {
	NoOp   bool
	Commit *commitstore.Commit
}

// Commit runs the commit engine's contract (§4.6): derive the new tree
// from HEAD plus the index, advance the current branch (or just HEAD, if
// detached), and clear the index.
func Commit(r *repo.Repository, clk clock.Clock, message string) (*CommitResult, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	headCommit, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	workFiles, err := scan.Scan(r.Root)
	if err != nil {
		return nil, err
	}

	report := status.Classify(headCommit, r.Index, workFiles)
	if report.StagedEmpty() {
		r.Index.Clear()
		return nil, minigiterrors.ErrNoEffectiveChanges
	}

	tree := map[string]string{}
	if headCommit != nil {
		for path, dig := range headCommit.Tree {
			tree[path] = dig
		}
	}
	for path, dig := range r.Index.Entries() {
		tree[path] = dig
	}
	for _, path := range report.StagedDeleted {
		delete(tree, path)
	}

	var parents []string
	if head.Commit != "" {
		parents = []string{head.Commit}
	}

	c := commitstore.New(message, clk.Now(), parents, tree)

	if err := r.Commits.Write(c); err != nil {
		r.Log.Error("commit aborted: writing commit record failed", zap.String("digest", c.Digest), zap.Error(err))
		return nil, err
	}

	if head.Attached() {
		if err := r.Refs.WriteBranch(head.Branch, c.Digest); err != nil {
			r.Log.Error("commit aborted: advancing branch ref failed", zap.String("branch", head.Branch), zap.Error(err))
			return nil, err
		}
		if err := r.Refs.WriteHead(refstore.Head{Branch: head.Branch, Commit: c.Digest}); err != nil {
			r.Log.Error("commit aborted: writing HEAD failed", zap.String("branch", head.Branch), zap.Error(err))
			return nil, err
		}
	} else {
		if err := r.Refs.WriteHead(refstore.Head{Commit: c.Digest}); err != nil {
			r.Log.Error("commit aborted: writing detached HEAD failed", zap.String("digest", c.Digest), zap.Error(err))
			return nil, err
		}
	}

	r.Index.Clear()
	return &CommitResult{Commit: c}, nil
}
