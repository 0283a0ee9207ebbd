package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/listagg"
)

func newRowForTest(kind listagg.RowKind, branch, path string) *listagg.Row {
	row := &listagg.Row{Kind: kind, Branch: branch, Path: path, Errs: make(map[string]error)}
	return row
}

func TestFieldsBranchDiffDisplayVariants(t *testing.T) {
	cases := []struct {
		name          string
		ahead, behind int
		want          string
	}{
		{"up to date", 0, 0, "up to date"},
		{"ahead only", 3, 0, "3 ahead"},
		{"behind only", 0, 2, "2 behind"},
		{"diverged", 1, 1, "1 ahead, 1 behind"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := newRowForTest(listagg.KindWorktree, "feature/x", "/repo/feature-x")
			row.Ahead, row.Behind = tc.ahead, tc.behind
			f := Fields(row)
			assert.Equal(t, tc.want, f.BranchDiffDisplay)
		})
	}
}

func TestFieldsShowsQuestionMarkOnCountsError(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "feature/x", "/repo/feature-x")
	row.Errs["counts"] = errors.New("git rev-list failed")
	f := Fields(row)
	assert.Equal(t, "?", f.CommitsDisplay)
	assert.Equal(t, "?", f.BranchDiffDisplay)
}

func TestFieldsUpstreamDisplay(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "feature/x", "/repo/feature-x")
	f := Fields(row)
	assert.Equal(t, "no upstream", f.UpstreamDisplay)

	row.HasUpstream = true
	f = Fields(row)
	assert.Equal(t, "synced", f.UpstreamDisplay)

	row.UpstreamAhead = 2
	f = Fields(row)
	assert.Equal(t, "+2/-0", f.UpstreamDisplay)
}

func TestFieldsWorkingDiffDisplay(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "feature/x", "/repo/feature-x")
	assert.Equal(t, "clean", Fields(row).WorkingDiffDisplay)

	row.WorkingDirty = true
	assert.Equal(t, "dirty", Fields(row).WorkingDiffDisplay)

	row.DiffShortstat = "1 file changed, 2 insertions(+)"
	assert.Equal(t, "1 file changed, 2 insertions(+)", Fields(row).WorkingDiffDisplay)
}

func TestFieldsBareBranchHasNoWorkingDiffDisplay(t *testing.T) {
	row := newRowForTest(listagg.KindBareBranch, "feature/x", "")
	assert.Empty(t, Fields(row).WorkingDiffDisplay)
}

func TestJSONEncodesSchemaVersionedDocument(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "main", "/repo")
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []*listagg.Row{row}))
	assert.Contains(t, buf.String(), `"schema_version": 1`)
	assert.Contains(t, buf.String(), `"branch": "main"`)
}

func TestStatuslineWritesNothingWhenNoRowMatches(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "main", "/repo")
	var buf bytes.Buffer
	Statusline(&buf, []*listagg.Row{row}, "/somewhere/else")
	assert.Empty(t, buf.String())
}

func TestStatuslineMarksDirtyWorktree(t *testing.T) {
	row := newRowForTest(listagg.KindWorktree, "main", "/repo")
	row.WorkingDirty = true
	var buf bytes.Buffer
	Statusline(&buf, []*listagg.Row{row}, "/repo")
	assert.Contains(t, buf.String(), "main")
	assert.Contains(t, buf.String(), "*")
}
