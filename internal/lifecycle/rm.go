package lifecycle

import (
	"context"
	"fmt"

	"github.com/worktrunk/wt/internal/clierr"
)

// RmOptions controls the rm state machine.
type RmOptions struct {
	Force       bool // allow removal with uncommitted changes
	DeleteBranch bool // delete the branch too, subject to integration check
	ForceDeleteBranch bool // delete the branch even if not integrated
}

// RmResult reports what Rm actually did.
type RmResult struct {
	Path           string
	BranchDeleted  bool
	IntegrationReason string
}

// Rm implements the remove state machine: CheckExists -> CheckClean ->
// RemoveWorktree -> CheckIntegration -> MaybeDeleteBranch. Each step's
// failure aborts before the next runs, so a dirty worktree is never
// removed and a branch is never deleted out from under a worktree that
// still exists.
func (e *Engine) Rm(ctx context.Context, branch string, opts RmOptions) (*RmResult, error) {
	path, ok, err := e.resolver.Attached(ctx, branch)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "looking up worktree", err)
	}
	if !ok {
		return nil, clierr.New(clierr.ExitNotFound, fmt.Sprintf("no worktree for branch %q", branch))
	}

	if !opts.Force {
		clean, err := e.Repo.WorkingTreeClean(ctx, path)
		if err != nil {
			return nil, clierr.Wrap(clierr.ExitRuntime, "checking worktree status", err)
		}
		if !clean {
			return nil, clierr.New(clierr.ExitConflict, fmt.Sprintf("worktree %s has uncommitted changes; pass --force to remove anyway", path))
		}
	}

	if err := e.Repo.WorktreeRemove(ctx, path, opts.Force); err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "removing worktree", err)
	}

	result := &RmResult{Path: path}

	if !opts.DeleteBranch {
		return result, nil
	}

	check := e.Integration().Check(ctx, branch, e.integrationTarget())
	result.IntegrationReason = string(check.Reason)

	if !check.Integrated() && !opts.ForceDeleteBranch {
		return result, clierr.New(clierr.ExitConflict,
			fmt.Sprintf("branch %q does not appear to be integrated into %q; pass --force-branch to delete anyway", branch, check.EffectiveTarget))
	}

	if err := e.Repo.BranchDelete(ctx, branch, !check.Integrated()); err != nil {
		return result, clierr.Wrap(clierr.ExitRuntime, "deleting branch", err)
	}
	result.BranchDeleted = true
	return result, nil
}
