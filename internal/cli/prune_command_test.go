package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneCommandClearsStaleAdministrativeEntries(t *testing.T) {
	_, dir := setupTestEngine(t)

	root := NewRootCommand()
	root.SetArgs([]string{"new", "feature", "--internal", "--chdir", dir})
	require.NoError(t, root.Execute())
	worktreePath := filepath.Clean(filepath.Join(filepath.Dir(dir), "feature"))

	// Simulate the user deleting the worktree directory directly instead
	// of running `wt rm`, leaving git's administrative state behind.
	require.NoError(t, os.RemoveAll(worktreePath))

	root = NewRootCommand()
	root.SetArgs([]string{"prune", "--chdir", dir})
	err := root.Execute()
	assert.NoError(t, err)
}
