package pathtmpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesVariables(t *testing.T) {
	tmpl, err := Parse("../{main_worktree}.{branch|sanitize}")
	require.NoError(t, err)

	out, err := tmpl.Render(Vars{Branch: "feature/my-thing", MainWorktree: "repo"})
	require.NoError(t, err)
	require.Equal(t, "../repo.feature-my-thing", out)
}

func TestParseRejectsUnknownVariable(t *testing.T) {
	_, err := Parse("{bogus}")
	require.Error(t, err)
}

func TestParseRejectsUnknownFilter(t *testing.T) {
	_, err := Parse("{branch|upper}")
	require.Error(t, err)
}

func TestSanitizeCollapsesSeparators(t *testing.T) {
	require.Equal(t, "a-b-c", Sanitize("a/ b:\\c"))
	require.Equal(t, "leading-trailing", Sanitize("/leading-trailing/"))
}
