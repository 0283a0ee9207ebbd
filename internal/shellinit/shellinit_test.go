package shellinit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKnownShells(t *testing.T) {
	for _, sh := range Supported {
		script, err := Generate(sh)
		require.NoError(t, err)
		require.NotEmpty(t, script)
		require.Contains(t, script, "WORKTRUNK_SHELL_ACTIVE")
	}
}

func TestGenerateRejectsUnknownShell(t *testing.T) {
	_, err := Generate(Shell("tcsh"))
	require.Error(t, err)
}

func TestBashAndZshShareAWrapper(t *testing.T) {
	bash, err := Generate(Bash)
	require.NoError(t, err)
	zsh, err := Generate(Zsh)
	require.NoError(t, err)
	require.Equal(t, bash, zsh)
	require.True(t, strings.Contains(bash, "__WORKTRUNK_CD__"))
}
