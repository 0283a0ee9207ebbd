package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/lifecycle"
)

func newRelocateCommand() *cobra.Command {
	var clobber, clobberMain bool

	cmd := &cobra.Command{
		Use:   "relocate <branch>=<new-path> [<branch>=<new-path>...]",
		Short: "Move one or more worktrees to new paths in a single batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			moves := make([]lifecycle.RelocateMove, 0, len(args))
			for _, a := range args {
				branch, path, ok := strings.Cut(a, "=")
				if !ok {
					return clierr.New(clierr.ExitUsage, fmt.Sprintf("invalid move %q, expected <branch>=<new-path>", a))
				}
				moves = append(moves, lifecycle.RelocateMove{Branch: branch, NewPath: path})
			}
			if err := engine.Relocate(cmd.Context(), moves, lifecycle.RelocateOptions{Clobber: clobber, ClobberMain: clobberMain}); err != nil {
				return err
			}
			fmt.Printf("relocated %d worktree(s)\n", len(moves))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clobber, "clobber", false, "allow overwriting a path occupied by a worktree outside this batch")
	cmd.Flags().BoolVar(&clobberMain, "clobber-main", false, "allow relocating the main worktree")
	return cmd
}
