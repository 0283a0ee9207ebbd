// Package listagg builds the rows for `wt list` by fanning out a bounded
// number of concurrent git (and optionally gh/glab) subprocesses per
// worktree/branch and merging their results deterministically regardless
// of completion order.
package listagg

import "sync"

// RowKind distinguishes the four row shapes list can produce.
type RowKind int

const (
	KindMainWorktree RowKind = iota
	KindWorktree
	KindDetached
	KindBareBranch
)

// Row is one line of `wt list` output, worktree-backed or a bare branch
// with no worktree at all.
type Row struct {
	Kind RowKind

	Branch string
	Path   string // empty for KindBareBranch

	Ahead, Behind int   // relative to the integration target
	HasUpstream   bool
	UpstreamAhead, UpstreamBehind int

	WorkingDirty   bool
	DiffShortstat  string

	CommitSHA     string
	CommitSummary string

	CI CIStatus

	// Errs records which enrichment tasks failed for this row, keyed by
	// task name, so a renderer can show "?" for just that field instead
	// of dropping the whole row.
	Errs map[string]error

	mu sync.Mutex
}

// setErr records that task failed for this row. Safe to call from any
// enrichment goroutine.
func (r *Row) setErr(task string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errs[task] = err
}

// CIStatus mirrors cistatus.Status without importing that package's
// internal parsing types into the row model.
type CIStatus struct {
	Found       bool
	Number      int
	State       string
	ChecksState string
	URL         string
}

func newRow(kind RowKind, branch, path string) *Row {
	return &Row{Kind: kind, Branch: branch, Path: path, Errs: make(map[string]error)}
}
