package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/worktrunk/wt/internal/listagg"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("243"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	dirtyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cleanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("71"))
)

var columns = []struct {
	title    string
	priority int // higher drops first when width is scarce; the first column is kept
	width    int
}{
	{title: "BRANCH", priority: 0, width: 24},
	{title: "DIFF", priority: 1, width: 18},
	{title: "UPSTREAM", priority: 2, width: 14},
	{title: "WORKING", priority: 3, width: 14},
	{title: "CI", priority: 4, width: 16},
}

// Buffered writes the full table to w in one pass, once every row has
// finished enriching.
func Buffered(w io.Writer, rows []*listagg.Row, termWidth int) {
	active := activeColumns(termWidth)
	writeHeader(w, active)
	for _, row := range rows {
		writeRow(w, row, active)
	}
}

func activeColumns(termWidth int) []int {
	if termWidth <= 0 {
		termWidth = 120
	}
	idx := make([]int, len(columns))
	for i := range columns {
		idx[i] = i
	}
	total := func(include []int) int {
		sum := 0
		for _, i := range include {
			sum += columns[i].width + 2
		}
		return sum
	}
	for total(idx) > termWidth && len(idx) > 1 {
		drop := 0
		for _, i := range idx[1:] {
			if columns[i].priority > columns[drop].priority {
				drop = i
			}
		}
		var next []int
		for _, i := range idx {
			if i != drop {
				next = append(next, i)
			}
		}
		idx = next
	}
	return idx
}

func writeHeader(w io.Writer, active []int) {
	var b strings.Builder
	for _, i := range active {
		fmt.Fprintf(&b, "%-*s  ", columns[i].width, columns[i].title)
	}
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(b.String(), " ")))
}

func writeRow(w io.Writer, row *listagg.Row, active []int) {
	f := Fields(row)
	cells := map[int]string{
		0: branchCell(row, f),
		1: f.BranchDiffDisplay,
		2: f.UpstreamDisplay,
		3: workingCell(f),
		4: f.CIStatusDisplay,
	}
	var b strings.Builder
	for _, i := range active {
		fmt.Fprintf(&b, "%-*s  ", columns[i].width, truncate(cells[i], columns[i].width))
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func branchCell(row *listagg.Row, f DisplayFields) string {
	switch row.Kind {
	case listagg.KindMainWorktree:
		return f.Branch + " (main)"
	case listagg.KindDetached:
		return "(detached)"
	case listagg.KindBareBranch:
		return dimStyle.Render(f.Branch + " (no worktree)")
	default:
		return f.Branch
	}
}

func workingCell(f DisplayFields) string {
	switch f.WorkingDiffDisplay {
	case "":
		return dimStyle.Render("-")
	case "clean":
		return cleanStyle.Render("clean")
	default:
		return dirtyStyle.Render(f.WorkingDiffDisplay)
	}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
