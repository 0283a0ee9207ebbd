package listagg

import (
	"context"
	"sync/atomic"

	"github.com/worktrunk/wt/internal/cistatus"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/integration"
)

// RowID returns the identifier a progressive renderer keys a row by:
// its branch name, or its path for a detached worktree.
func RowID(row *Row) string {
	if row.Branch != "" {
		return row.Branch
	}
	return row.Path
}

// AggregateProgressive behaves like Aggregate but invokes onRowDone once
// for every row, as soon as that row's own enrichment tasks (and only
// that row's) have all completed — letting a caller patch a live display
// in place instead of waiting for the whole aggregation to finish.
func AggregateProgressive(ctx context.Context, repo *gitexec.Repository, opts Options, onRowDone func(id string, row *Row)) ([]*Row, error) {
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
		var tasks []func()
		if row.Kind == KindMainWorktree || row.Kind == KindWorktree {
			tasks = append(tasks,
				func() { enrichCounts(ctx, repo, checker, opts.Target, row) },
				func() { enrichWorkingTree(ctx, repo, row) },
				func() { enrichUpstream(ctx, repo, row) },
			)
		}
		tasks = append(tasks, func() { enrichLastCommit(ctx, repo, row) })
		if opts.ShowFull && row.Branch != "" {
			tasks = append(tasks, func() { enrichCI(ctx, platform, mainRoot, row) })
		}

		remaining := int32(len(tasks))
		id := RowID(row)
		for _, task := range tasks {
			task := task
			pool.submit(func() {
				task()
				if atomic.AddInt32(&remaining, -1) == 0 && onRowDone != nil {
					onRowDone(id, row)
				}
			})
		}
	}
	pool.wait()

	sortRows(rows)
	return rows, nil
}
