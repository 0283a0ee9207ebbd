package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/config"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/lifecycle"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=t", "GIT_AUTHOR_EMAIL=t@e.com", "GIT_COMMITTER_NAME=t", "GIT_COMMITTER_EMAIL=t@e.com")
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "%s", out)
}

// setupTestEngine creates a throwaway git repo with one commit on main
// and returns an Engine bound to it, mirroring lifecycle's own test setup
// since the cli package is a thin RunE layer over the same engine.
func setupTestEngine(t *testing.T) (*lifecycle.Engine, string) {
	t.Helper()
	return setupTestEngineIn(t, t.TempDir(), "repo")
}

// setupTestEngineIn creates the same throwaway repo as setupTestEngine,
// but nested under root/name — for tests (e.g. repo index/pick) that need
// to control the parent directory a repo is discovered under.
func setupTestEngineIn(t *testing.T, root, name string) (*lifecycle.Engine, string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	runGit(t, dir, "init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	// CLI commands load config from disk, so the engine config below is
	// also committed as the project config they will read.
	require.NoError(t, os.MkdirAll(filepath.Dir(config.ProjectConfigPath(dir)), 0o755))
	require.NoError(t, os.WriteFile(config.ProjectConfigPath(dir), []byte("worktree-path = \"../{branch|sanitize}\"\ndefault-target = \"main\"\n"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")

	repo, err := gitexec.Open(context.Background(), dir, "")
	require.NoError(t, err)

	cfg := &config.Config{WorktreePath: "../{branch|sanitize}", DefaultTarget: "main"}
	engine, err := lifecycle.New(repo, cfg)
	require.NoError(t, err)
	return engine, dir
}
