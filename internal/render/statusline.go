package render

import (
	"fmt"
	"io"

	"github.com/worktrunk/wt/internal/listagg"
)

// Statusline writes a single line describing row, for embedding in a
// shell prompt. It finds the row matching the current worktree path, or
// writes nothing if currentPath matches no row.
func Statusline(w io.Writer, rows []*listagg.Row, currentPath string) {
	for _, row := range rows {
		if row.Path == "" || row.Path != currentPath {
			continue
		}
		f := Fields(row)
		line := fmt.Sprintf("%s %s", f.Branch, f.BranchDiffDisplay)
		if f.WorkingDiffDisplay == "dirty" || (f.WorkingDiffDisplay != "" && f.WorkingDiffDisplay != "clean") {
			line += " *"
		}
		fmt.Fprintln(w, line)
		return
	}
}
