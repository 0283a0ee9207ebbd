package cli

import (
	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/directive"
)

func newCdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cd <branch>",
		Short: "Jump to a branch's worktree, creating it first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			path, err := engine.Switch(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			sink := directive.Select(internalFlag)
			defer sink.Flush()
			sink.ChangeDirectory(path)
			return nil
		},
	}
}
