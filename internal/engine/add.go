package engine

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
)

// AddResult reports whether staging path actually changed the index.
type AddResult struct {
	AlreadyStaged bool
}

// Add hashes path's content, writes it to the object store, and stages
// it (§4.1, §4.4). Re-adding identical content is a no-op on the index
// (Put is idempotent and Stage reports no change), surfaced to the
// caller as AlreadyStaged.
func Add(r *repo.Repository, path string) (*AddResult, error) {
	full := filepath.Join(r.Root, path)
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, minigiterrors.Wrap(minigiterrors.NoSuchPath, "no such path: "+path, err)
		}
		return nil, minigiterrors.Wrap(minigiterrors.UnreadableFile, "cannot stat "+path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, minigiterrors.New(minigiterrors.NotARegularFile, path+" is not a regular file")
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return nil, minigiterrors.Wrap(minigiterrors.UnreadableFile, "cannot read "+path, err)
	}

	dig, err := r.Objects.Put(content)
	if err != nil {
		r.Log.Error("add aborted: writing object failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	changed := r.Index.Stage(path, dig)
	return &AddResult{AlreadyStaged: !changed}, nil
}
