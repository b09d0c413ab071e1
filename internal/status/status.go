// Package status is the tri-state status/diff classifier (C6): it
// partitions the union of HEAD's tree, the index, and the working
// directory into staged changes, unstaged changes, and untracked files,
// per §4.5. Grounded on original_source/MiniGitSystem.hpp's
// getStagedChanges/getUnstagedChanges, which this package generalizes
// into data the CLI and the checkout engine can both consume instead of
// printing directly.
package status

import (
	"sort"

	"github.com/mubarekdevv/my-minigit-trial/internal/commitstore"
	"github.com/mubarekdevv/my-minigit-trial/internal/index"
	"github.com/mubarekdevv/my-minigit-trial/internal/scan"
)

// UnstagedModification records a working-tree file that differs from
// whatever it is being compared against. StagedVersionDiffers is true
// when the comparison was against the index (the index shadows HEAD per
// §4.5's tie-break), false when it was against HEAD directly.
type UnstagedModification struct {
	Path                 string
	StagedVersionDiffers bool
}

// Report is the full tri-state partition for one status/checkout check.
type Report struct {
	StagedAdded    []string
	StagedModified []string
	StagedDeleted  []string

	UnstagedModified []UnstagedModification
	UnstagedDeleted  []string
	Untracked        []string
}

// StagedEmpty reports whether there is nothing staged for the next
// commit — the no-op condition in §4.6 step 2.
func (r Report) StagedEmpty() bool {
	return len(r.StagedAdded) == 0 && len(r.StagedModified) == 0 && len(r.StagedDeleted) == 0
}

// Dirty reports whether the working directory has any staged, unstaged,
// or untracked change — the refusal condition for checkout in §4.7 step 1.
func (r Report) Dirty() bool {
	return !r.StagedEmpty() || len(r.UnstagedModified) > 0 || len(r.UnstagedDeleted) > 0 || len(r.Untracked) > 0
}

// Classify computes the full Report from HEAD's commit (nil if there are
// no commits yet), the current index, and a scan of the working root.
func Classify(head *commitstore.Commit, idx *index.Index, workFiles []scan.File) Report {
	headTree := map[string]string{}
	if head != nil {
		headTree = head.Tree
	}
	indexEntries := idx.Entries()
	workDigests := make(map[string]string, len(workFiles))
	for _, f := range workFiles {
		workDigests[f.Path] = f.Digest
	}

	var r Report

	for path, stagedDigest := range indexEntries {
		if headDigest, ok := headTree[path]; ok {
			if headDigest != stagedDigest {
				r.StagedModified = append(r.StagedModified, path)
			}
		} else {
			r.StagedAdded = append(r.StagedAdded, path)
		}
	}
	for path := range headTree {
		if _, inIndex := indexEntries[path]; inIndex {
			continue
		}
		if _, inWork := workDigests[path]; !inWork {
			r.StagedDeleted = append(r.StagedDeleted, path)
		}
	}

	for path, wdDigest := range workDigests {
		if stagedDigest, inIndex := indexEntries[path]; inIndex {
			if stagedDigest != wdDigest {
				r.UnstagedModified = append(r.UnstagedModified, UnstagedModification{Path: path, StagedVersionDiffers: true})
			}
		} else if headDigest, inHead := headTree[path]; inHead {
			if headDigest != wdDigest {
				r.UnstagedModified = append(r.UnstagedModified, UnstagedModification{Path: path})
			}
		} else {
			r.Untracked = append(r.Untracked, path)
		}
	}
	for path := range headTree {
		if _, inWork := workDigests[path]; inWork {
			continue
		}
		if _, inIndex := indexEntries[path]; !inIndex {
			r.UnstagedDeleted = append(r.UnstagedDeleted, path)
		}
	}

	sort.Strings(r.StagedAdded)
	sort.Strings(r.StagedModified)
	sort.Strings(r.StagedDeleted)
	sort.Strings(r.UnstagedDeleted)
	sort.Strings(r.Untracked)
	sort.Slice(r.UnstagedModified, func(i, j int) bool {
		return r.UnstagedModified[i].Path < r.UnstagedModified[j].Path
	})

	return r
}
