package engine

import (
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
)

// CreateBranch creates a new branch pointing at HEAD's current commit.
// It errors if there are no commits yet or the name is already taken.
func CreateBranch(r *repo.Repository, name string) error {
	head, err := r.Head()
	if err != nil {
		return err
	}
	if head.Commit == "" {
		return minigiterrors.ErrNoCommits
	}

	if _, ok, err := r.Refs.ReadBranch(name); err != nil {
		return err
	} else if ok {
		return minigiterrors.ErrBranchExists
	}

	return r.Refs.WriteBranch(name, head.Commit)
}
