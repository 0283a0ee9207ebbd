package lifecycle

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/config"
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

func setupEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")

	repo, err := gitexec.Open(context.Background(), dir, "")
	require.NoError(t, err)

	cfg := &config.Config{WorktreePath: "../{branch|sanitize}", DefaultTarget: "main"}
	engine, err := New(repo, cfg)
	require.NoError(t, err)
	return engine, dir
}

func TestNewWorktreeCreatesBranchAndPath(t *testing.T) {
	engine, dir := setupEngine(t)
	result, err := engine.NewWorktree(context.Background(), "feature", "")
	require.NoError(t, err)
	require.True(t, result.Created)
	require.DirExists(t, result.Path)
	require.Equal(t, filepath.Clean(filepath.Join(filepath.Dir(dir), "feature")), result.Path)
}

func TestNewWorktreeRefusesDuplicate(t *testing.T) {
	engine, _ := setupEngine(t)
	_, err := engine.NewWorktree(context.Background(), "feature", "")
	require.NoError(t, err)

	_, err = engine.NewWorktree(context.Background(), "feature", "")
	require.Error(t, err)
}

func TestSwitchCreatesWorktreeForExistingBranchThenReusesIt(t *testing.T) {
	engine, dir := setupEngine(t)
	runGit(t, dir, "branch", "feature")

	path1, err := engine.Switch(context.Background(), "feature", "")
	require.NoError(t, err)
	require.DirExists(t, path1)

	path2, err := engine.Switch(context.Background(), "feature", "")
	require.NoError(t, err)
	require.Equal(t, path1, path2)
}

func TestRmRefusesDirtyWorktreeWithoutForce(t *testing.T) {
	engine, _ := setupEngine(t)
	result, err := engine.NewWorktree(context.Background(), "feature", "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(result.Path, "dirty.txt"), []byte("x"), 0o644))

	_, err = engine.Rm(context.Background(), "feature", RmOptions{})
	require.Error(t, err)
}

func TestRmRemovesCleanWorktreeAndIntegratedBranch(t *testing.T) {
	engine, _ := setupEngine(t)
	result, err := engine.NewWorktree(context.Background(), "feature", "")
	require.NoError(t, err)

	rmResult, err := engine.Rm(context.Background(), "feature", RmOptions{DeleteBranch: true})
	require.NoError(t, err)
	require.True(t, rmResult.BranchDeleted)
	require.NoDirExists(t, result.Path)
}
