package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/lifecycle"
	"github.com/worktrunk/wt/internal/listagg"
	"github.com/worktrunk/wt/internal/render"
)

func newListCommand() *cobra.Command {
	var showFull, includeBare bool
	var ciPlatform string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worktrees with ahead/behind, working-tree, and CI status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}

			opts := listagg.Options{
				Target:              engine.DefaultTarget(),
				ShowFull:            showFull,
				CIPlatform:          ciPlatform,
				IncludeBareBranches: includeBare,
			}

			width := termWidth()
			isTTY := isatty.IsTerminal(os.Stdout.Fd())

			if isTTY && !IsJSONOutput() {
				ids, err := skeletonRowIDs(cmd, engine, opts)
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "listing worktrees", err)
				}
				prog := render.NewProgressive(os.Stdout, ids, width)
				rows, err := listagg.AggregateProgressive(cmd.Context(), engine.Repo, opts, prog.Patch)
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "aggregating worktree status", err)
				}
				prog.Finalize(rows)
				return nil
			}

			rows, err := listagg.Aggregate(cmd.Context(), engine.Repo, opts)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "aggregating worktree status", err)
			}
			if IsJSONOutput() {
				return render.JSON(os.Stdout, rows)
			}
			render.Buffered(os.Stdout, rows, width)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFull, "full", false, "also fetch CI/PR status (slower, needs gh or glab)")
	cmd.Flags().BoolVar(&includeBare, "all-branches", false, "also list local branches with no worktree")
	cmd.Flags().StringVar(&ciPlatform, "ci-platform", "", "override CI platform detection (github or gitlab)")
	return cmd
}

// skeletonRowIDs previews the row identifiers AggregateProgressive will
// report, so the progressive renderer can draw its placeholder skeleton
// before any enrichment has run.
func skeletonRowIDs(cmd *cobra.Command, engine *lifecycle.Engine, opts listagg.Options) ([]string, error) {
	entries, err := engine.Repo.WorktreeList(cmd.Context())
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	var ids []string
	for _, e := range entries {
		id := e.Branch
		if id == "" {
			id = e.Path
		}
		ids = append(ids, id)
		if e.Branch != "" {
			seen[e.Branch] = true
		}
	}
	if opts.IncludeBareBranches {
		branches, err := engine.Repo.ListRefs(cmd.Context(), "refs/heads/")
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			if !seen[b] {
				ids = append(ids, b)
			}
		}
	}
	return ids, nil
}

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
