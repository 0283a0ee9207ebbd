package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/worktrunk/wt/internal/listagg"
)

const placeholderGlyph = "⋯"

// Progressive draws a skeleton row per known id immediately, then
// patches rows in place as they finish enriching, using ANSI cursor
// motion to rewrite only the lines that changed. It is meant for a TTY
// whose line count and cursor position wt fully controls for the
// duration of one `wt list` call.
type Progressive struct {
	w           io.Writer
	active      []int
	rowIDs      []string // branch or path, in fixed skeleton order
	lastLines   []string // last-rendered text per line, empty means placeholder
	linesOnScreen int
}

// NewProgressive draws the initial skeleton (header + one placeholder row
// per id) and returns a Progressive ready to receive Patch calls.
func NewProgressive(w io.Writer, ids []string, termWidth int) *Progressive {
	p := &Progressive{w: w, active: activeColumns(termWidth), rowIDs: ids}
	writeHeader(w, p.active)
	p.linesOnScreen = 1
	for range ids {
		fmt.Fprintln(w, placeholderGlyph)
		p.lastLines = append(p.lastLines, "")
		p.linesOnScreen++
	}
	return p
}

// Patch rewrites the line for id with row's current rendering. If id is
// not part of the original skeleton (a race with a repo whose worktree
// list changed mid-render), Patch is a no-op — finalize always reprints
// the authoritative full set afterward.
func (p *Progressive) Patch(id string, row *listagg.Row) {
	idx := -1
	for i, rid := range p.rowIDs {
		if rid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	rendered := renderRowLine(row, p.active)
	p.lastLines[idx] = rendered

	// Move cursor up from the bottom to the target line, rewrite it, and
	// move back down. Line 0 is the header; row idx is header + idx + 1
	// lines down from the top, so from the current bottom it is
	// (linesOnScreen - (idx+1)) lines up.
	up := p.linesOnScreen - (idx + 1)
	fmt.Fprintf(p.w, "\x1b[%dA\r\x1b[2K%s\n", up, rendered)
	if up > 1 {
		fmt.Fprintf(p.w, "\x1b[%dB", up-1)
	}
}

// Finalize reprints the whole table from scratch using the authoritative
// final rows, guaranteeing no placeholder glyph survives even if a
// Patch for some id never arrived (e.g. that worktree vanished mid-run).
func (p *Progressive) Finalize(rows []*listagg.Row) {
	fmt.Fprintf(p.w, "\x1b[%dA\r", p.linesOnScreen)
	fmt.Fprint(p.w, "\x1b[J")
	Buffered(p.w, rows, 0)
}

func renderRowLine(row *listagg.Row, active []int) string {
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
	return strings.TrimRight(b.String(), " ")
}
