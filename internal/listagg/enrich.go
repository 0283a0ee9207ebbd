package listagg

import (
	"context"
	"strings"

	"github.com/worktrunk/wt/internal/cistatus"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/integration"
)

// Each enrichXxx function is one scheduled task. A failure is recorded
// on the row and swallowed — a failed enrichment degrades that row's
// field, it never fails the whole `wt list` invocation.

func enrichCounts(ctx context.Context, repo *gitexec.Repository, checker *integration.Checker, target string, row *Row) {
	result := checker.Check(ctx, row.Branch, target)
	ahead, behind, err := repo.RevListLeftRightCount(ctx, row.Branch, result.EffectiveTarget)
	if err != nil {
		row.setErr("counts", err)
		return
	}
	row.mu.Lock()
	row.Ahead, row.Behind = ahead, behind
	row.mu.Unlock()
}

func enrichWorkingTree(ctx context.Context, repo *gitexec.Repository, row *Row) {
	if row.Path == "" {
		return
	}
	clean, err := repo.WorkingTreeClean(ctx, row.Path)
	if err != nil {
		row.setErr("working-tree", err)
		return
	}
	row.mu.Lock()
	row.WorkingDirty = !clean
	row.mu.Unlock()

	stat, err := repo.DiffShortstat(ctx, "HEAD", row.Branch)
	if err == nil {
		row.mu.Lock()
		row.DiffShortstat = stat
		row.mu.Unlock()
	}
}

func enrichUpstream(ctx context.Context, repo *gitexec.Repository, row *Row) {
	upstream := "refs/remotes/origin/" + row.Branch
	if !repo.ShowRef(ctx, upstream) {
		return
	}
	ahead, behind, err := repo.RevListLeftRightCount(ctx, row.Branch, "origin/"+row.Branch)
	if err != nil {
		row.setErr("upstream", err)
		return
	}
	row.mu.Lock()
	row.HasUpstream = true
	row.UpstreamAhead, row.UpstreamBehind = ahead, behind
	row.mu.Unlock()
}

func enrichLastCommit(ctx context.Context, repo *gitexec.Repository, row *Row) {
	ref := row.Branch
	if ref == "" {
		ref = "HEAD"
	}
	lines, err := repo.ForEachRef(ctx, "%(objectname:short) %(contents:subject)", "refs/heads/"+ref)
	if err != nil || len(lines) == 0 {
		row.setErr("commit", err)
		return
	}
	sha, summary, _ := strings.Cut(lines[0], " ")
	row.mu.Lock()
	row.CommitSHA = sha
	row.CommitSummary = summary
	row.mu.Unlock()
}

func enrichCI(ctx context.Context, platform cistatus.Platform, mainRoot string, row *Row) {
	status := cistatus.Fetch(ctx, platform, mainRoot, row.Branch)
	row.mu.Lock()
	row.CI = CIStatus{
		Found:       status.Found,
		Number:      status.Number,
		State:       status.State,
		ChecksState: status.ChecksState,
		URL:         status.URL,
	}
	row.mu.Unlock()
}
