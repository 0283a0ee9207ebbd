package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/shellinit"
)

func newShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Generate shell integration",
	}
	cmd.AddCommand(newShellInitCommand())
	return cmd
}

func newShellInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "init <bash|zsh|fish|pwsh>",
		Short:     "Print the shell wrapper function for the named shell",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "pwsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shellinit.Generate(shellinit.Shell(args[0]))
			if err != nil {
				return clierr.Wrap(clierr.ExitUsage, "generating shell integration", err)
			}
			fmt.Print(script)
			return nil
		},
	}
}
