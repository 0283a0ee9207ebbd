package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/worktrunk/wt/internal/clierr"
)

// RelocateMove is one requested worktree move: branch's worktree should
// end up at NewPath.
type RelocateMove struct {
	Branch  string
	NewPath string
}

// RelocateOptions controls how blocked moves are handled.
type RelocateOptions struct {
	// Clobber allows a move to overwrite a path currently occupied by a
	// worktree not otherwise part of this relocate batch.
	Clobber bool
	// ClobberMain additionally allows moving the main worktree itself,
	// which requires re-registering it with git rather than a plain
	// worktree move.
	ClobberMain bool
}

// Relocate moves one or more worktrees to new paths in a single batch,
// so that a cyclic swap (A takes B's old spot and vice versa) succeeds
// without either move momentarily colliding with the other. A move whose
// target is held by another branch moving in this batch is first parked
// in a temporary directory; the other moves run directly, before any
// parked worktree is moved to its final path. A path occupied by a worktree
// outside this batch is refused unless Clobber is set; the main
// worktree is refused unless ClobberMain is set.
func (e *Engine) Relocate(ctx context.Context, moves []RelocateMove, opts RelocateOptions) error {
	if len(moves) == 0 {
		return nil
	}

	entries, err := e.Repo.WorktreeList(ctx)
	if err != nil {
		return clierr.Wrap(clierr.ExitRuntime, "listing worktrees", err)
	}
	currentPath := make(map[string]string, len(entries))
	pathOwner := make(map[string]string, len(entries))
	mainRoot := e.Repo.MainWorktreeRoot()
	for _, wt := range entries {
		if wt.Branch != "" {
			currentPath[wt.Branch] = wt.Path
			pathOwner[filepath.Clean(wt.Path)] = wt.Branch
		}
	}

	movingBranches := make(map[string]string, len(moves)) // branch -> new path
	for _, m := range moves {
		if _, ok := currentPath[m.Branch]; !ok {
			return clierr.New(clierr.ExitNotFound, fmt.Sprintf("no worktree for branch %q", m.Branch))
		}
		if filepath.Clean(currentPath[m.Branch]) == filepath.Clean(mainRoot) && !opts.ClobberMain {
			return clierr.New(clierr.ExitConflict, fmt.Sprintf("branch %q is the main worktree; pass --clobber-main to relocate it", m.Branch))
		}
		movingBranches[m.Branch] = filepath.Clean(m.NewPath)
	}

	for branch, newPath := range movingBranches {
		if owner, occupied := pathOwner[newPath]; occupied && owner != branch {
			if _, alsoMoving := movingBranches[owner]; !alsoMoving && !opts.Clobber {
				return clierr.New(clierr.ExitConflict, fmt.Sprintf("path %s is already worktree for branch %q; pass --clobber to overwrite", newPath, owner))
			}
		}
	}

	// Detect moves whose target path is currently occupied by another
	// branch that is itself moving in this batch (a swap/cycle): park
	// those sources in a temp dir first so no two worktrees ever occupy
	// the same path at once.
	parkingBase, err := os.MkdirTemp(filepath.Dir(mainRoot), "wt-relocate-")
	if err != nil {
		return clierr.Wrap(clierr.ExitRuntime, "creating relocation staging directory", err)
	}
	defer os.Remove(parkingBase)

	needsParking := make(map[string]bool)
	for branch, newPath := range movingBranches {
		if owner, occupied := pathOwner[newPath]; occupied && owner != branch {
			if _, alsoMoving := movingBranches[owner]; alsoMoving {
				needsParking[branch] = true
			}
		}
	}

	parkedTo := make(map[string]string)
	for branch := range needsParking {
		park := filepath.Join(parkingBase, filepath.Base(currentPath[branch]))
		if err := e.Repo.WorktreeMove(ctx, currentPath[branch], park); err != nil {
			return clierr.Wrap(clierr.ExitRuntime, fmt.Sprintf("parking worktree for branch %q", branch), err)
		}
		parkedTo[branch] = park
	}

	// Unparked moves go first, so every parked worktree's destination has
	// already been vacated by its previous owner when it is moved there.
	for _, parkedPass := range []bool{false, true} {
		for branch, newPath := range movingBranches {
			parked, isParked := parkedTo[branch]
			if isParked != parkedPass {
				continue
			}
			src := currentPath[branch]
			if isParked {
				src = parked
			}
			if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "creating destination parent directory", err)
			}
			if err := e.Repo.WorktreeMove(ctx, src, newPath); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, fmt.Sprintf("moving worktree for branch %q", branch), err)
			}
		}
	}

	return nil
}
