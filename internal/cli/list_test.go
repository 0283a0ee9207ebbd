package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrunk/wt/internal/listagg"
)

func TestSkeletonRowIDsListsExistingWorktrees(t *testing.T) {
	engine, _ := setupTestEngine(t)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	ids, err := skeletonRowIDs(cmd, engine, listagg.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, ids)
}

func TestSkeletonRowIDsIncludesBareBranchesWhenRequested(t *testing.T) {
	engine, _ := setupTestEngine(t)
	runGit(t, engine.Repo.Toplevel(), "branch", "feature")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	ids, err := skeletonRowIDs(cmd, engine, listagg.Options{IncludeBareBranches: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main", "feature"}, ids)
}

func TestTermWidthNeverPanicsWithoutATerminal(t *testing.T) {
	assert.GreaterOrEqual(t, termWidth(), 0)
}
