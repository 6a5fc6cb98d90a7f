package gitsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/config"
	"mercator-hq/rustalize/pkg/telemetry/logging"
)

// CommitInfo describes the checked-out commit.
type CommitInfo struct {
	SHA       string    `json:"sha" yaml:"sha"`
	Author    string    `json:"author" yaml:"author"`
	Email     string    `json:"email" yaml:"email"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Message   string    `json:"message" yaml:"message"`
	Branch    string    `json:"branch" yaml:"branch"`
}

// SyncResult is the outcome of one Sync.
type SyncResult struct {
	// Cloned is true when Sync created the local clone.
	Cloned bool

	FromSHA string
	ToSHA   string

	// Changed lists files touched between FromSHA and ToSHA, as absolute
	// paths under the local clone.
	Changed []string
}

// HadChanges reports whether the checked-out commit moved.
func (r *SyncResult) HadChanges() bool {
	return r.Cloned || r.FromSHA != r.ToSHA
}

// Repository manages a local clone of a declaration repository.
type Repository struct {
	config config.GitSourceConfig
	auth   AuthProvider
	logger *logging.Logger

	mu   sync.Mutex
	repo *gogit.Repository
}

// NewRepository validates cfg and creates a repository manager. Nothing is
// cloned until Sync is called.
func NewRepository(cfg config.GitSourceConfig) (*Repository, error) {
	if cfg.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		return nil, fmt.Errorf("branch cannot be empty")
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = config.DefaultGitLocalPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultGitTimeout
	}

	auth, err := NewAuthProvider(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth provider: %w", err)
	}

	return &Repository{
		config: cfg,
		auth:   auth,
		logger: logging.Discard(),
	}, nil
}

// WithLogger sets the logger.
func (r *Repository) WithLogger(logger *logging.Logger) *Repository {
	if logger != nil {
		r.logger = logger.With("component", "gitsource", "repository", r.config.Repository)
	}
	return r
}

// LocalPath returns the directory holding the clone.
func (r *Repository) LocalPath() string {
	return r.config.LocalPath
}

// SourceDir returns the directory inside the clone that is indexed.
func (r *Repository) SourceDir() string {
	return filepath.Join(r.config.LocalPath, r.config.Path)
}

// Sync clones the repository on first use and pulls the configured branch
// afterwards. An existing clone at LocalPath is reused and pulled.
func (r *Repository) Sync(ctx context.Context) (*SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo == nil {
		cloned, err := r.open(ctx)
		if err != nil {
			return nil, err
		}
		if cloned {
			head, err := r.headSHA()
			if err != nil {
				return nil, err
			}
			return &SyncResult{Cloned: true, ToSHA: head}, nil
		}
	}

	return r.pull(ctx)
}

// open opens an existing clone or clones the remote. It reports whether a
// new clone was made.
func (r *Repository) open(ctx context.Context) (bool, error) {
	if _, err := os.Stat(filepath.Join(r.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(r.config.LocalPath)
		if err != nil {
			return false, fmt.Errorf("failed to open existing clone: %w", err)
		}
		r.repo = repo
		return false, nil
	}

	if err := os.MkdirAll(r.config.LocalPath, 0o755); err != nil {
		return false, fmt.Errorf("failed to create clone directory: %w", err)
	}

	auth, err := r.auth.Auth()
	if err != nil {
		return false, fmt.Errorf("failed to get auth: %w", err)
	}

	depth := r.depth()
	opts := &gogit.CloneOptions{
		URL:           r.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(r.config.Branch),
		SingleBranch:  depth > 0,
		Depth:         depth,
		Auth:          auth,
	}

	cloneCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	repo, err := gogit.PlainCloneContext(cloneCtx, r.config.LocalPath, false, opts)
	if err != nil {
		return false, fmt.Errorf("failed to clone repository: %w", err)
	}
	r.logger.InfoContext(ctx, "repository cloned",
		"branch", r.config.Branch,
		"auth", r.auth.Type(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	r.repo = repo
	return true, nil
}

func (r *Repository) pull(ctx context.Context) (*SyncResult, error) {
	from, err := r.headSHA()
	if err != nil {
		return nil, err
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	auth, err := r.auth.Auth()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(r.config.Branch),
		SingleBranch:  r.depth() > 0,
		Depth:         r.depth(),
		Auth:          auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil, fmt.Errorf("failed to pull: %w", err)
	}

	to, err := r.headSHA()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{FromSHA: from, ToSHA: to}
	if from != to {
		changed, err := r.changedFiles(from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to get changed files: %w", err)
		}
		result.Changed = changed
		r.logger.InfoContext(ctx, "repository updated", "from", from, "to", to, "changed", len(changed))
	}
	return result, nil
}

// Head returns the checked-out commit.
func (r *Repository) Head() (*CommitInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo == nil {
		return nil, fmt.Errorf("repository not initialized, call Sync() first")
	}

	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}

	return &CommitInfo{
		SHA:       commit.Hash.String(),
		Author:    commit.Author.Name,
		Email:     commit.Author.Email,
		Timestamp: commit.Author.When,
		Message:   commit.Message,
		Branch:    r.config.Branch,
	}, nil
}

func (r *Repository) headSHA() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// changedFiles diffs the trees of two commits.
func (r *Repository) changedFiles(fromSHA, toSHA string) ([]string, error) {
	fromCommit, err := r.repo.CommitObject(plumbing.NewHash(fromSHA))
	if err != nil {
		return nil, fmt.Errorf("failed to get from commit: %w", err)
	}
	toCommit, err := r.repo.CommitObject(plumbing.NewHash(toSHA))
	if err != nil {
		return nil, fmt.Errorf("failed to get to commit: %w", err)
	}

	fromTree, err := fromCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get from tree: %w", err)
	}
	toTree, err := toCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get to tree: %w", err)
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	files := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			// deleted
			name = change.From.Name
		}
		files = append(files, filepath.Join(r.config.LocalPath, filepath.FromSlash(name)))
	}
	sort.Strings(files)
	return files, nil
}

// depth maps the configured depth to go-git, where 0 means full history.
func (r *Repository) depth() int {
	if r.config.Depth < 0 {
		return 0
	}
	return r.config.Depth
}

// SyncingIndexer syncs the repository before every index run.
type SyncingIndexer struct {
	repo    *Repository
	indexer *catalog.Indexer
}

// NewSyncingIndexer wraps indexer so each Index call pulls repo first.
func NewSyncingIndexer(repo *Repository, indexer *catalog.Indexer) *SyncingIndexer {
	return &SyncingIndexer{repo: repo, indexer: indexer}
}

// Index syncs the repository and indexes dir. A failed sync aborts the run
// and leaves the catalog untouched.
func (s *SyncingIndexer) Index(ctx context.Context, dir string) (*catalog.Result, error) {
	if _, err := s.repo.Sync(ctx); err != nil {
		return nil, fmt.Errorf("failed to sync %s: %w", s.repo.config.Repository, err)
	}
	return s.indexer.Index(ctx, dir)
}
