// Package integration implements the fail-safe check for whether a
// branch's work has already landed on its target branch, used to decide
// whether `wt rm` may delete a branch without asking twice.
package integration

import (
	"context"

	"github.com/worktrunk/wt/internal/gitexec"
)

// Reason names which check in the ladder established integration. The
// zero value means "not integrated" (or unknown — the two are
// indistinguishable by design, per the fail-safe invariant).
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonSameCommit       Reason = "same-commit"
	ReasonNoAddedChanges   Reason = "no-added-changes"
	ReasonTreesMatch       Reason = "trees-match"
	ReasonMergeAddsNothing Reason = "merge-adds-nothing"
)

// Result is the outcome of one Check call.
type Result struct {
	Reason          Reason
	EffectiveTarget string
}

// Integrated reports whether any check succeeded.
func (r Result) Integrated() bool { return r.Reason != ReasonNone }

// Checker evaluates branch integration against a repository.
type Checker struct {
	repo *gitexec.Repository
}

// New builds a Checker bound to repo.
func New(repo *gitexec.Repository) *Checker {
	return &Checker{repo: repo}
}

// Check runs the four-rung ladder (SameCommit -> NoAddedChanges ->
// TreesMatch -> MergeAddsNothing) against the effective integration
// target, short-circuiting at the first success. Any internal git error
// collapses the whole check to "not integrated" — this function never
// returns an error, because a failed safety check must never be mistaken
// for a confirmed integration.
func (c *Checker) Check(ctx context.Context, branch, target string) Result {
	effectiveTarget, err := c.effectiveTarget(ctx, target)
	if err != nil {
		effectiveTarget = target
	}
	result := Result{EffectiveTarget: effectiveTarget}

	branchSHA, err := c.repo.ResolveRef(ctx, branch)
	if err != nil {
		return result
	}
	targetSHA, err := c.repo.ResolveRef(ctx, effectiveTarget)
	if err != nil {
		return result
	}

	if branchSHA == targetSHA {
		result.Reason = ReasonSameCommit
		return result
	}

	empty, err := c.repo.ThreeDotDiffEmpty(ctx, effectiveTarget, branch)
	if err != nil {
		return result
	}
	if empty {
		result.Reason = ReasonNoAddedChanges
		return result
	}

	branchTree, errA := c.repo.TreeHash(ctx, branch)
	targetTree, errB := c.repo.TreeHash(ctx, effectiveTarget)
	if errA != nil || errB != nil {
		return result
	}
	if branchTree == targetTree {
		result.Reason = ReasonTreesMatch
		return result
	}

	addsNothing, err := c.repo.MergeTreeAddsNothing(ctx, effectiveTarget, branch)
	if err == nil && addsNothing {
		result.Reason = ReasonMergeAddsNothing
		return result
	}

	return result
}

// effectiveTarget substitutes origin/target for target when the remote
// branch exists and is strictly ahead of the local one, so integration is
// judged against whatever has actually been pushed, not a stale local
// branch. If origin/target cannot be resolved, it falls back to the
// local target unchanged (Open Question 2 — see DESIGN.md).
func (c *Checker) effectiveTarget(ctx context.Context, target string) (string, error) {
	remote := "origin/" + target
	if !c.repo.ShowRef(ctx, "refs/remotes/"+remote) {
		return target, nil
	}
	_, behind, err := c.repo.RevListLeftRightCount(ctx, target, remote)
	if err != nil {
		return target, nil
	}
	if behind > 0 {
		return remote, nil
	}
	return target, nil
}
