package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/repoindex"
)

func TestRepoIndexAndPickRoundTrip(t *testing.T) {
	indexDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", indexDir)

	reposRoot := t.TempDir()
	_, repoDir := setupTestEngineIn(t, reposRoot, "demo-project")

	root := NewRootCommand()
	root.SetArgs([]string{"repo", "index", "--root", reposRoot})
	require.NoError(t, root.Execute())

	path, err := repoindex.DefaultPath()
	require.NoError(t, err)
	idx, err := repoindex.Load(path)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 1)
	assert.Equal(t, filepath.Clean(repoDir), idx.Entries[0].Path)

	root = NewRootCommand()
	out := captureStdout(t, func() {
		root.SetArgs([]string{"repo", "pick", "--filter", "demo"})
		require.NoError(t, root.Execute())
	})
	assert.Contains(t, out, repoDir)
}
