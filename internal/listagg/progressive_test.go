package listagg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/gitexec"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=t", "GIT_AUTHOR_EMAIL=t@e.com", "GIT_COMMITTER_NAME=t", "GIT_COMMITTER_EMAIL=t@e.com")
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "%s", out)
}

func setupRepoWithWorktree(t *testing.T) *gitexec.Repository {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	runGit(t, dir, "branch", "feature")
	runGit(t, dir, "worktree", "add", filepath.Join(filepath.Dir(dir), "feature"), "feature")

	repo, err := gitexec.Open(context.Background(), dir, "")
	require.NoError(t, err)
	return repo
}

func TestRowIDPrefersBranchOverPath(t *testing.T) {
	row := newRow(KindWorktree, "feature", "/repos/proj-feature")
	require.Equal(t, "feature", RowID(row))
}

func TestRowIDFallsBackToPathForDetachedRows(t *testing.T) {
	row := newRow(KindDetached, "", "/repos/proj-detached")
	require.Equal(t, "/repos/proj-detached", RowID(row))
}

func TestAggregateProgressiveNotifiesEveryRowExactlyOnce(t *testing.T) {
	repo := setupRepoWithWorktree(t)

	var mu sync.Mutex
	seen := make(map[string]int)
	rows, err := AggregateProgressive(context.Background(), repo, Options{Target: "main"}, func(id string, row *Row) {
		mu.Lock()
		defer mu.Unlock()
		seen[id]++
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, seen["main"])
	require.Equal(t, 1, seen["feature"])
}

func TestAggregateProgressiveMatchesAggregateRowCount(t *testing.T) {
	repo := setupRepoWithWorktree(t)

	plain, err := Aggregate(context.Background(), repo, Options{Target: "main"})
	require.NoError(t, err)

	progressive, err := AggregateProgressive(context.Background(), repo, Options{Target: "main"}, nil)
	require.NoError(t, err)

	require.Equal(t, len(plain), len(progressive))
}
