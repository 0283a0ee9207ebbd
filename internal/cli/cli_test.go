package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCommandRegistersEverySubcommand guards against a subcommand
// silently failing to wire into the tree (a typo'd AddCommand, a command
// constructor returning nil).
func TestNewRootCommandRegistersEverySubcommand(t *testing.T) {
	root := NewRootCommand()
	want := []string{"new", "cd", "switch", "run", "rm", "prune", "relocate", "list", "repo", "config", "shell"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestWorkingDirPrefersChdirFlag(t *testing.T) {
	old := chdir
	defer func() { chdir = old }()

	chdir = "/some/explicit/dir"
	dir, err := workingDir()
	require.NoError(t, err)
	assert.Equal(t, "/some/explicit/dir", dir)
}

func TestWorkingDirFallsBackToGetwd(t *testing.T) {
	old := chdir
	defer func() { chdir = old }()

	chdir = ""
	dir, err := workingDir()
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
}
