package lifecycle

import (
	"context"

	"github.com/worktrunk/wt/internal/clierr"
)

// PruneOptions controls the prune operation.
type PruneOptions struct {
	DryRun bool
}

// PrunedEntry describes one administrative worktree entry git removed.
type PrunedEntry struct {
	Path   string
	Branch string
}

// Prune removes git's administrative files for worktrees whose
// directories have been deleted out from under it (e.g. by `rm -rf`
// instead of `wt rm`). It never touches branches — a pruned worktree's
// branch stays in place.
func (e *Engine) Prune(ctx context.Context, opts PruneOptions) ([]PrunedEntry, error) {
	before, err := e.Repo.WorktreeList(ctx)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "listing worktrees", err)
	}
	prunable := make(map[string]string)
	for _, e := range before {
		if e.Prunable {
			prunable[e.Path] = e.Branch
		}
	}

	if _, err := e.Repo.WorktreePrune(ctx, opts.DryRun); err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "pruning worktrees", err)
	}

	entries := make([]PrunedEntry, 0, len(prunable))
	for path, branch := range prunable {
		entries = append(entries, PrunedEntry{Path: path, Branch: branch})
	}
	return entries, nil
}
