// Package render formats listagg.Row slices as a table (buffered or
// progressive), JSON, or a single status line for prompt embedding.
package render

import (
	"fmt"

	"github.com/worktrunk/wt/internal/listagg"
)

// DisplayFields are the human-readable strings derived from a Row, shared
// by every output format so `wt list --json` and `wt list` show
// consistent text.
type DisplayFields struct {
	Branch            string `json:"branch"`
	Path              string `json:"path,omitempty"`
	CommitsDisplay    string `json:"commits_display"`
	BranchDiffDisplay string `json:"branch_diff_display"`
	UpstreamDisplay   string `json:"upstream_display"`
	CIStatusDisplay   string `json:"ci_status_display,omitempty"`
	WorkingDiffDisplay string `json:"working_diff_display"`
}

// Fields computes DisplayFields for one row.
func Fields(row *listagg.Row) DisplayFields {
	f := DisplayFields{Branch: row.Branch, Path: row.Path}

	if row.Errs["counts"] != nil {
		f.CommitsDisplay = "?"
		f.BranchDiffDisplay = "?"
	} else {
		f.CommitsDisplay = fmt.Sprintf("+%d/-%d", row.Ahead, row.Behind)
		switch {
		case row.Ahead == 0 && row.Behind == 0:
			f.BranchDiffDisplay = "up to date"
		case row.Ahead > 0 && row.Behind == 0:
			f.BranchDiffDisplay = fmt.Sprintf("%d ahead", row.Ahead)
		case row.Ahead == 0 && row.Behind > 0:
			f.BranchDiffDisplay = fmt.Sprintf("%d behind", row.Behind)
		default:
			f.BranchDiffDisplay = fmt.Sprintf("%d ahead, %d behind", row.Ahead, row.Behind)
		}
	}

	switch {
	case row.Errs["upstream"] != nil:
		f.UpstreamDisplay = "?"
	case !row.HasUpstream:
		f.UpstreamDisplay = "no upstream"
	case row.UpstreamAhead == 0 && row.UpstreamBehind == 0:
		f.UpstreamDisplay = "synced"
	default:
		f.UpstreamDisplay = fmt.Sprintf("+%d/-%d", row.UpstreamAhead, row.UpstreamBehind)
	}

	if row.CI.Found {
		f.CIStatusDisplay = fmt.Sprintf("#%d %s/%s", row.CI.Number, row.CI.State, orDash(row.CI.ChecksState))
	}

	switch {
	case row.Path == "":
		f.WorkingDiffDisplay = ""
	case row.Errs["working-tree"] != nil:
		f.WorkingDiffDisplay = "?"
	case !row.WorkingDirty:
		f.WorkingDiffDisplay = "clean"
	case row.DiffShortstat != "":
		f.WorkingDiffDisplay = row.DiffShortstat
	default:
		f.WorkingDiffDisplay = "dirty"
	}

	return f
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
