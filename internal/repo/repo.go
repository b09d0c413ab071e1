// Package repo wires the data-layer stores into the single Repository
// instance a front end loads once at process start (§2 "Control flow"),
// the way the teacher's internal/parcel.Parcel wires its content/safe/
// workspace collaborators together behind one constructor pair.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mubarekdevv/my-minigit-trial/internal/commitstore"
	"github.com/mubarekdevv/my-minigit-trial/internal/config"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/index"
	"github.com/mubarekdevv/my-minigit-trial/internal/logging"
	"github.com/mubarekdevv/my-minigit-trial/internal/objectstore"
	"github.com/mubarekdevv/my-minigit-trial/internal/refstore"
)

// MetaDirName is the hidden subdirectory every repository's persistent
// state lives under (§6's "R").
const MetaDirName = ".minigit"

// Repository is the single core instance a front end talks to: it owns
// the object/commit/ref stores, the in-memory index, and the repository
// config, and is the only thing that mutates any of them (§9 "Global
// state").
type Repository struct {
	Root    string // working directory
	MetaDir string // Root/.minigit

	Objects *objectstore.Store
	Commits *commitstore.Store
	Refs    *refstore.Store
	Index   *index.Index
	Config  *config.Config
	Log     *logging.Logger
}

func metaDir(root string) string {
	return filepath.Join(root, MetaDirName)
}

func configPath(root string) string {
	return filepath.Join(metaDir(root), "config.json")
}

// Initialized reports whether root already has a minigit metadata
// directory.
func Initialized(root string) bool {
	info, err := os.Stat(metaDir(root))
	return err == nil && info.IsDir()
}

// Init creates a fresh repository at root: the metadata tree, an empty
// default branch, an attached HEAD, and the config file (§6 scenario 1).
func Init(root string, log *logging.Logger) (*Repository, error) {
	if Initialized(root) {
		return nil, minigiterrors.ErrAlreadyInitialized
	}

	meta := metaDir(root)
	for _, dir := range []string{
		meta,
		filepath.Join(meta, "objects"),
		filepath.Join(meta, "commits"),
		filepath.Join(meta, "refs", "heads"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	cfg := config.Default()
	if err := config.Save(configPath(root), cfg); err != nil {
		return nil, err
	}

	r, err := open(root, meta, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := r.Refs.WriteBranch(cfg.DefaultBranch, ""); err != nil {
		return nil, err
	}
	if err := r.Refs.WriteHead(refstore.Head{Branch: cfg.DefaultBranch}); err != nil {
		return nil, err
	}

	return r, nil
}

// Open loads an existing repository rooted at root.
func Open(root string, log *logging.Logger) (*Repository, error) {
	if !Initialized(root) {
		return nil, minigiterrors.ErrNotARepository
	}

	cfg, err := config.Load(configPath(root))
	if err != nil {
		return nil, err
	}

	return open(root, metaDir(root), cfg, log)
}

func open(root, meta string, cfg *config.Config, log *logging.Logger) (*Repository, error) {
	if log == nil {
		log = logging.Nop()
	}

	objects, err := objectstore.New(filepath.Join(meta, "objects"))
	if err != nil {
		return nil, err
	}
	commits, err := commitstore.Open(filepath.Join(meta, "commits"))
	if err != nil {
		return nil, err
	}

	return &Repository{
		Root:    root,
		MetaDir: meta,
		Objects: objects,
		Commits: commits,
		Refs:    refstore.Open(meta),
		Index:   index.New(),
		Config:  cfg,
		Log:     log,
	}, nil
}

// Head returns the current HEAD pointer.
func (r *Repository) Head() (refstore.Head, error) {
	return r.Refs.ReadHead()
}

// HeadCommit resolves HEAD to its Commit record, or nil if HEAD names no
// commit yet (a freshly created branch, per §3 "Ref").
func (r *Repository) HeadCommit() (*commitstore.Commit, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	if head.Commit == "" {
		return nil, nil
	}

	c, status := r.Commits.Read(head.Commit)
	switch status {
	case commitstore.StatusOK:
		return c, nil
	case commitstore.StatusMissing:
		return nil, minigiterrors.Wrap(minigiterrors.CorruptCommit, fmt.Sprintf("HEAD commit %s is missing", head.Commit), nil)
	default:
		return nil, minigiterrors.Wrap(minigiterrors.CorruptCommit, fmt.Sprintf("HEAD commit %s is corrupt", head.Commit), nil)
	}
}
