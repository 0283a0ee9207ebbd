// Package lifecycle implements the worktree lifecycle operations: new,
// switch (which also serves cd), run, rm, relocate, and prune. Each
// operation is a method on Engine and talks to git only through gitexec.Repository, resolving
// paths through resolver.Resolver and deciding branch deletion through
// integration.Checker.
package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/config"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/hooks"
	"github.com/worktrunk/wt/internal/integration"
	"github.com/worktrunk/wt/internal/pathtmpl"
	"github.com/worktrunk/wt/internal/resolver"
)

// Engine bundles the collaborators every lifecycle operation needs.
type Engine struct {
	Repo   *gitexec.Repository
	Config *config.Config
	Hooks  *hooks.Runner

	resolver *resolver.Resolver
}

// New constructs an Engine for repo using the given merged config.
func New(repo *gitexec.Repository, cfg *config.Config) (*Engine, error) {
	tmpl, err := pathtmpl.Parse(cfg.WorktreePath)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "invalid worktree-path template", err)
	}
	repoName := filepath.Base(repo.MainWorktreeRoot())
	return &Engine{
		Repo:     repo,
		Config:   cfg,
		Hooks:    hooks.New(repo),
		resolver: resolver.New(repo, tmpl, repoName),
	}, nil
}

// Resolver exposes the engine's path resolver for read-only callers such
// as the cross-repo switch.
func (e *Engine) Resolver() *resolver.Resolver { return e.resolver }

func (e *Engine) integrationTarget() string {
	if e.Config.DefaultTarget != "" {
		return e.Config.DefaultTarget
	}
	return "main"
}

// NewResult is returned by NewWorktree.
type NewResult struct {
	Path     string
	Branch   string
	Created  bool // false if the branch already existed
	HookLog  string
}

// NewWorktree creates a worktree for branch, creating the branch from
// base if it does not already exist, and runs the post-create hook
// (blocking) then the post-start hook (detached) if configured.
func (e *Engine) NewWorktree(ctx context.Context, branch, base string) (*NewResult, error) {
	if existingPath, ok, err := e.resolver.Attached(ctx, branch); err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "checking existing worktrees", err)
	} else if ok {
		return nil, clierr.New(clierr.ExitConflict, fmt.Sprintf("branch %q already has a worktree at %s", branch, existingPath))
	}

	path, err := e.resolver.ResolvePath(branch)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "resolving worktree path", err)
	}
	if err := e.resolver.EnsurePathFree(ctx, path, branch); err != nil {
		return nil, clierr.Wrap(clierr.ExitConflict, "worktree path is occupied", err)
	}

	branchExists := e.Repo.ShowRef(ctx, "refs/heads/"+branch)
	startPoint := base
	if startPoint == "" {
		startPoint = e.integrationTarget()
	}

	if branchExists {
		if err := e.Repo.WorktreeAdd(ctx, path, branch, "", false); err != nil {
			return nil, clierr.Wrap(clierr.ExitRuntime, "creating worktree", err)
		}
	} else {
		if err := e.Repo.WorktreeAdd(ctx, path, branch, startPoint, true); err != nil {
			return nil, clierr.Wrap(clierr.ExitRuntime, "creating worktree and branch", err)
		}
	}

	result := &NewResult{Path: path, Branch: branch, Created: !branchExists}

	for _, nc := range e.Config.Hooks.PostCreate.Commands() {
		if _, err := e.Hooks.Run(ctx, hooks.PostCreate, hooks.Blocking, path, branch, nc.Command, nc.Name); err != nil {
			return result, clierr.Wrap(clierr.ExitRuntime, "post-create hook failed", err)
		}
	}
	for _, nc := range e.Config.Hooks.PostStart.Commands() {
		name := "post-start"
		if nc.Name != "" {
			name = "post-start-" + nc.Name
		}
		logPath, err := e.Hooks.Run(ctx, hooks.PostStart, hooks.Detached, path, branch, nc.Command, name)
		if err == nil {
			result.HookLog = logPath
		}
	}

	return result, nil
}

// Switch creates the worktree if it doesn't already exist (as NewWorktree
// does) and then resolves to its path, so it is safe to call
// unconditionally from the CLI's switch and cd commands — "cd feature"
// creates feature's worktree the first time and reuses it thereafter.
func (e *Engine) Switch(ctx context.Context, branch, base string) (string, error) {
	if path, ok, err := e.resolver.Attached(ctx, branch); err != nil {
		return "", clierr.Wrap(clierr.ExitRuntime, "looking up worktree", err)
	} else if ok {
		return path, nil
	}
	result, err := e.NewWorktree(ctx, branch, base)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

// Integration exposes an integration.Checker bound to this engine's repo;
// callers pass the target to each Check.
func (e *Engine) Integration() *integration.Checker {
	return integration.New(e.Repo)
}

// DefaultTarget returns the configured integration target branch.
func (e *Engine) DefaultTarget() string {
	return e.integrationTarget()
}
