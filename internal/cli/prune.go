package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/lifecycle"
)

func newPruneCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Clean up administrative state for worktrees whose directories were deleted manually",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := engine.Prune(cmd.Context(), lifecycle.PruneOptions{DryRun: dryRun})
			if err != nil {
				return err
			}
			printPruned(entries)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be pruned without pruning it")
	return cmd
}

func printPruned(entries []lifecycle.PrunedEntry) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(data))
		return
	}
	if len(entries) == 0 {
		fmt.Println("nothing to prune")
		return
	}
	for _, e := range entries {
		fmt.Printf("pruned %s (%s)\n", e.Path, e.Branch)
	}
}
