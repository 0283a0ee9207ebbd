package cli

import (
	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/directive"
)

func newNewCommand() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "new <branch>",
		Short: "Create a new worktree for a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch := args[0]
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			result, err := engine.NewWorktree(cmd.Context(), branch, base)
			if err != nil {
				return err
			}

			sink := directive.Select(internalFlag)
			defer sink.Flush()
			if result.Created {
				sink.Success("created branch %q and worktree at %s", branch, result.Path)
			} else {
				sink.Success("created worktree for %q at %s", branch, result.Path)
			}
			if result.HookLog != "" {
				sink.Hint("post-start hook log: %s", result.HookLog)
			}
			sink.ChangeDirectory(result.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base commit/branch for a newly created branch (default: the configured integration target)")
	return cmd
}
