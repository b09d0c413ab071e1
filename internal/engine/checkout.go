package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mubarekdevv/my-minigit-trial/internal/commitstore"
	dg "github.com/mubarekdevv/my-minigit-trial/internal/digest"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/refstore"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
	"github.com/mubarekdevv/my-minigit-trial/internal/scan"
	"github.com/mubarekdevv/my-minigit-trial/internal/status"
)

// CheckoutResult reports the outcome of Checkout.
type CheckoutResult struct {
	AlreadyCurrent bool
	Head           refstore.Head
	Warnings       []string
}

// Checkout runs the checkout engine's contract (§4.7): refuse on a dirty
// working directory, resolve the target to a branch or commit, and
// reconcile the working directory to match.
func Checkout(r *repo.Repository, target string) (*CheckoutResult, error) {
	headCommit, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	workFiles, err := scan.Scan(r.Root)
	if err != nil {
		return nil, err
	}
	if status.Classify(headCommit, r.Index, workFiles).Dirty() {
		return nil, minigiterrors.ErrWorkingDirDirty
	}

	branch, commitDigest, err := resolveTarget(r, target)
	if err != nil {
		return nil, err
	}

	currentHead, err := r.Head()
	if err != nil {
		return nil, err
	}
	if currentHead.Branch == branch && currentHead.Commit == commitDigest {
		return &CheckoutResult{AlreadyCurrent: true, Head: currentHead}, nil
	}

	newHead := refstore.Head{Branch: branch, Commit: commitDigest}

	if commitDigest == "" {
		if err := clearWorkingRoot(r.Root, workFiles); err != nil {
			return nil, err
		}
		if err := r.Refs.WriteHead(newHead); err != nil {
			return nil, err
		}
		r.Index.Clear()
		return &CheckoutResult{Head: newHead}, nil
	}

	targetCommit, readStatus := r.Commits.Read(commitDigest)
	if readStatus != commitstore.StatusOK {
		r.Log.Error("checkout aborted: target commit is corrupt", zap.String("digest", commitDigest))
		return nil, minigiterrors.Wrap(minigiterrors.CorruptCommit, fmt.Sprintf("commit %s is corrupt", commitDigest), nil)
	}

	warnings, err := reconcile(r, targetCommit.Tree, workFiles)
	if err != nil {
		return nil, err
	}

	if err := r.Refs.WriteHead(newHead); err != nil {
		return nil, err
	}
	r.Index.Clear()

	return &CheckoutResult{Head: newHead, Warnings: warnings}, nil
}

// resolveTarget implements §4.7 step 2: exact branch, exact commit
// digest, or an unambiguous ≥4-character digest prefix, in that order. An
// exact-digest target whose record exists on disk but fails to decode is
// reported as CorruptCommit rather than falling through to prefix search
// and being misclassified as merely unknown (§5, §7).
func resolveTarget(r *repo.Repository, target string) (branch, commitDigest string, err error) {
	if digest, ok, err := r.Refs.ReadBranch(target); err != nil {
		return "", "", err
	} else if ok {
		return target, digest, nil
	}

	switch _, readStatus := r.Commits.Read(target); readStatus {
	case commitstore.StatusOK:
		return "", target, nil
	case commitstore.StatusCorrupt:
		r.Log.Error("checkout aborted: target commit is corrupt", zap.String("digest", target))
		return "", "", minigiterrors.Wrap(minigiterrors.CorruptCommit, fmt.Sprintf("commit %s is corrupt", target), nil)
	}

	if len(target) >= dg.MinPrefixLen {
		var matches []string
		for _, known := range r.Commits.AllDigests() {
			if dg.HasPrefix(known, target) {
				matches = append(matches, known)
			}
		}
		if len(matches) == 1 {
			return "", matches[0], nil
		}
	}

	return "", "", minigiterrors.ErrUnknownTarget
}

// reconcile materializes tree into the working root per §4.8: overwrite
// or create every tracked path, delete everything else that was present.
func reconcile(r *repo.Repository, tree map[string]string, workFiles []scan.File) ([]string, error) {
	remaining := make(map[string]bool, len(workFiles))
	for _, f := range workFiles {
		remaining[f.Path] = true
	}

	var warnings []string
	for path, blobDigest := range tree {
		content, err := r.Objects.Get(blobDigest)
		if err != nil {
			r.Log.Warn("missing object during checkout, skipping file",
				zap.String("path", path), zap.String("digest", blobDigest), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("warning: missing object %s for %s, skipped", blobDigest, path))
			delete(remaining, path)
			continue
		}
		if err := os.WriteFile(filepath.Join(r.Root, path), content, 0644); err != nil {
			r.Log.Error("checkout aborted: writing reconciled file failed", zap.String("path", path), zap.Error(err))
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		delete(remaining, path)
	}

	for path := range remaining {
		if err := os.Remove(filepath.Join(r.Root, path)); err != nil && !os.IsNotExist(err) {
			r.Log.Error("checkout aborted: removing stale file failed", zap.String("path", path), zap.Error(err))
			return nil, fmt.Errorf("removing %s: %w", path, err)
		}
	}

	return warnings, nil
}

// clearWorkingRoot deletes every currently tracked-candidate file, used
// when checking out a branch whose tip has no commits yet (§4.7 step 3).
func clearWorkingRoot(root string, workFiles []scan.File) error {
	for _, f := range workFiles {
		if err := os.Remove(filepath.Join(root, f.Path)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", f.Path, err)
		}
	}
	return nil
}
