package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCdCommandCreatesWorktreeForExistingBranchWithNoWorktree(t *testing.T) {
	_, dir := setupTestEngine(t)
	runGit(t, dir, "branch", "feature")

	root := NewRootCommand()
	root.SetArgs([]string{"cd", "feature", "--internal", "--chdir", dir})
	require.NoError(t, root.Execute())
}

func TestCdCommandSucceedsForExistingWorktree(t *testing.T) {
	_, dir := setupTestEngine(t)

	root := NewRootCommand()
	root.SetArgs([]string{"new", "feature", "--internal", "--chdir", dir})
	require.NoError(t, root.Execute())

	root = NewRootCommand()
	root.SetArgs([]string{"cd", "feature", "--internal", "--chdir", dir})
	err := root.Execute()
	assert.NoError(t, err)
}
