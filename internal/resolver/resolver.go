// Package resolver turns a branch name into the worktree path it should
// live at, consulting the existing worktree layout so repeated calls
// agree with whatever is actually checked out on disk.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/pathtmpl"
)

// Resolver maps branches to worktree paths for one repository.
type Resolver struct {
	repo     *gitexec.Repository
	tmpl     *pathtmpl.Template
	repoName string
}

// New builds a Resolver from a parsed worktree-path-template. repoName is
// the {repo} template variable's value (typically the main worktree's
// directory base name).
func New(repo *gitexec.Repository, tmpl *pathtmpl.Template, repoName string) *Resolver {
	return &Resolver{repo: repo, tmpl: tmpl, repoName: repoName}
}

// ResolvePath computes the path a branch's worktree should be created at.
// It does not check for collisions; call Collides for that.
func (r *Resolver) ResolvePath(branch string) (string, error) {
	mainRoot := r.repo.MainWorktreeRoot()
	rel, err := r.tmpl.Render(pathtmpl.Vars{
		Branch:       branch,
		Repo:         r.repoName,
		MainWorktree: filepath.Base(mainRoot),
		RepoRoot:     mainRoot,
	})
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}
	return filepath.Clean(filepath.Join(mainRoot, rel)), nil
}

// branchWorktrees builds the branch->path map from the repository's
// worktree list on every call; the Resolver itself keeps no copy.
func (r *Resolver) branchWorktrees(ctx context.Context) (map[string]string, error) {
	entries, err := r.repo.WorktreeList(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Branch != "" {
			out[e.Branch] = e.Path
		}
	}
	return out, nil
}

// Attached reports whether branch already has a worktree, and its path.
func (r *Resolver) Attached(ctx context.Context, branch string) (path string, ok bool, err error) {
	m, err := r.branchWorktrees(ctx)
	if err != nil {
		return "", false, err
	}
	path, ok = m[branch]
	return path, ok, nil
}

// Collides reports whether path is already in use by a worktree that is
// not branch's own worktree.
func (r *Resolver) Collides(ctx context.Context, path, branch string) (bool, error) {
	entries, err := r.repo.WorktreeList(ctx)
	if err != nil {
		return false, err
	}
	clean := filepath.Clean(path)
	for _, e := range entries {
		if filepath.Clean(e.Path) == clean && e.Branch != branch {
			return true, nil
		}
	}
	return false, nil
}

// EnsurePathFree returns a descriptive error if path is occupied by
// another branch's worktree.
func (r *Resolver) EnsurePathFree(ctx context.Context, path, branch string) error {
	collides, err := r.Collides(ctx, path, branch)
	if err != nil {
		return err
	}
	if collides {
		return fmt.Errorf("resolver: path %s is already a worktree for a different branch", path)
	}
	return nil
}
