package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "run <branch> -- <command...>",
		Short: "Run a command inside a branch's worktree, creating it first if needed",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			branch := args[0]
			command := strings.Join(args[1:], " ")
			return engine.Run(cmd.Context(), branch, base, command)
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base commit/branch if a new branch must be created")
	return cmd
}
