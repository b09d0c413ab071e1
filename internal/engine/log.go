package engine

import (
	"fmt"

	"github.com/mubarekdevv/my-minigit-trial/internal/commitstore"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
)

// LogEntry is one step of a Log walk: a commit plus the branches that
// currently point at it, annotated with HEAD's position.
type LogEntry struct {
	Commit         *commitstore.Commit
	Branches       []string // branch names pointing at this commit
	IsHeadHere     bool     // HEAD (attached or detached) currently resolves here
	HeadDetached   bool     // true if IsHeadHere and HEAD is detached
	AttachedBranch string   // if IsHeadHere and not HeadDetached, the branch HEAD actually follows
}

// Log walks the first-parent chain from HEAD, annotating every branch
// that points at each visited commit, not only the one HEAD follows.
// A visited-set guards against a malformed cycle in the commit graph.
func Log(r *repo.Repository) ([]LogEntry, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	if head.Commit == "" {
		return nil, minigiterrors.ErrNoCommits
	}

	branchesByCommit, err := branchPointers(r)
	if err != nil {
		return nil, err
	}

	var entries []LogEntry
	visited := map[string]bool{}
	digest := head.Commit

	for digest != "" {
		if visited[digest] {
			break
		}
		visited[digest] = true

		c, readStatus := r.Commits.Read(digest)
		if readStatus != commitstore.StatusOK {
			return entries, minigiterrors.Wrap(minigiterrors.CorruptCommit, fmt.Sprintf("commit %s is corrupt", digest), nil)
		}

		entry := LogEntry{
			Commit:       c,
			Branches:     branchesByCommit[digest],
			IsHeadHere:   digest == head.Commit,
			HeadDetached: digest == head.Commit && !head.Attached(),
		}
		if entry.IsHeadHere && !entry.HeadDetached {
			entry.AttachedBranch = head.Branch
		}
		entries = append(entries, entry)

		if len(c.Parents) == 0 {
			break
		}
		digest = c.Parents[0]
	}

	return entries, nil
}

func branchPointers(r *repo.Repository) (map[string][]string, error) {
	names, err := r.Refs.ListBranches()
	if err != nil {
		return nil, err
	}
	out := map[string][]string{}
	for _, name := range names {
		dig, ok, err := r.Refs.ReadBranch(name)
		if err != nil {
			return nil, err
		}
		if ok && dig != "" {
			out[dig] = append(out[dig], name)
		}
	}
	return out, nil
}
