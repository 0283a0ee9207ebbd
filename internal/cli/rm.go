package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/lifecycle"
)

func newRmCommand() *cobra.Command {
	var force, deleteBranch, forceDeleteBranch bool

	cmd := &cobra.Command{
		Use:   "rm <branch>",
		Short: "Remove a branch's worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			result, err := engine.Rm(cmd.Context(), args[0], lifecycle.RmOptions{
				Force:             force,
				DeleteBranch:      deleteBranch,
				ForceDeleteBranch: forceDeleteBranch,
			})
			if err != nil {
				return err
			}
			printRmResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove the worktree even with uncommitted changes")
	cmd.Flags().BoolVar(&deleteBranch, "delete-branch", false, "also delete the branch, if it appears integrated")
	cmd.Flags().BoolVar(&forceDeleteBranch, "force-branch", false, "delete the branch even if it does not appear integrated")
	return cmd
}

func printRmResult(result *lifecycle.RmResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("removed worktree %s\n", result.Path)
	if result.BranchDeleted {
		fmt.Fprintf(os.Stdout, "deleted branch (%s)\n", result.IntegrationReason)
	}
}
