package listagg

import (
	"context"
	"runtime"
	"sort"

	"github.com/worktrunk/wt/internal/cistatus"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/integration"
)

// Options controls which enrichment tasks Aggregate schedules.
type Options struct {
	Target      string // integration target branch
	ShowFull    bool   // schedule CI status lookups
	CIPlatform  string // config override, "" for auto-detect
	IncludeBareBranches bool
}

// Aggregate builds one Row per worktree (and, if requested, per bare
// local branch with no worktree) and enriches it with its last commit
// summary and optionally CI status; branch-attached worktree rows also
// get ahead/behind, working-tree status and upstream comparison. The
// tasks are fanned out across a bounded worker pool so
// a list of fifty worktrees does not serialize fifty round-trips of git
// subprocess latency.
func Aggregate(ctx context.Context, repo *gitexec.Repository, opts Options) ([]*Row, error) {
	entries, err := repo.WorktreeList(ctx)
	if err != nil {
		return nil, err
	}

	mainRoot := repo.MainWorktreeRoot()
	rows := make([]*Row, 0, len(entries))
	branchHasWorktree := make(map[string]bool, len(entries))

	for _, e := range entries {
		kind := KindWorktree
		switch {
		case e.Path == mainRoot:
			kind = KindMainWorktree
		case e.Branch == "":
			kind = KindDetached
		}
		rows = append(rows, newRow(kind, e.Branch, e.Path))
		if e.Branch != "" {
			branchHasWorktree[e.Branch] = true
		}
	}

	if opts.IncludeBareBranches {
		branches, err := repo.ListRefs(ctx, "refs/heads/")
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			if !branchHasWorktree[b] {
				rows = append(rows, newRow(KindBareBranch, b, ""))
			}
		}
	}

	pool := newWorkerPool(boundedWorkers())
	checker := integration.New(repo)

	var remoteURLs map[string]string
	if opts.ShowFull {
		remoteURLs, _ = repo.RemoteURLs(ctx)
	}
	platform := cistatus.Detect(opts.CIPlatform, remoteURLs)

	for _, row := range rows {
		row := row
		if row.Kind == KindMainWorktree || row.Kind == KindWorktree {
			pool.submit(func() { enrichCounts(ctx, repo, checker, opts.Target, row) })
			pool.submit(func() { enrichWorkingTree(ctx, repo, row) })
			pool.submit(func() { enrichUpstream(ctx, repo, row) })
		}
		pool.submit(func() { enrichLastCommit(ctx, repo, row) })
		if opts.ShowFull && row.Branch != "" {
			pool.submit(func() { enrichCI(ctx, platform, mainRoot, row) })
		}
	}
	pool.wait()

	sortRows(rows)
	return rows, nil
}

func boundedWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 4 {
		return 4
	}
	if n > 16 {
		return 16
	}
	return n
}

// sortRows orders rows deterministically regardless of which enrichment
// task finished first: main worktree, then other worktrees by branch
// name, then detached worktrees by path, then bare branches by name.
func sortRows(rows []*Row) {
	rank := func(r *Row) int {
		switch r.Kind {
		case KindMainWorktree:
			return 0
		case KindWorktree:
			return 1
		case KindDetached:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank(rows[i]), rank(rows[j])
		if ri != rj {
			return ri < rj
		}
		switch rows[i].Kind {
		case KindDetached:
			return rows[i].Path < rows[j].Path
		default:
			return rows[i].Branch < rows[j].Branch
		}
	})
}
