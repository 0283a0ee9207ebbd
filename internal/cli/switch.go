package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/directive"
	"github.com/worktrunk/wt/internal/lifecycle"
	"github.com/worktrunk/wt/internal/picker"
	"github.com/worktrunk/wt/internal/repoindex"
)

func newSwitchCommand() *cobra.Command {
	var base, filter string
	var roots []string
	var maxDepth int
	var cachePath string

	cmd := &cobra.Command{
		Use:   "switch [branch]",
		Short: "Jump to a branch's worktree, creating it first if needed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(roots) > 0 {
				return switchCrossRepo(cmd, args, roots, maxDepth, cachePath, filter)
			}

			engine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}

			branch := ""
			switch {
			case len(args) == 1:
				branch = args[0]
			case filter != "":
				chosen, err := pickBranch(cmd, engine, filter)
				if err != nil {
					return err
				}
				branch = chosen
			default:
				if err := ttyRequiredError(); err != nil {
					return err
				}
				chosen, err := pickBranch(cmd, engine, "")
				if err != nil {
					return err
				}
				branch = chosen
			}

			path, err := engine.Switch(cmd.Context(), branch, base)
			if err != nil {
				return err
			}
			sink := directive.Select(internalFlag)
			defer sink.Flush()
			sink.ChangeDirectory(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base commit/branch if a new branch must be created")
	cmd.Flags().StringVar(&filter, "filter", "", "filter existing branches by case-insensitive substring and prompt if more than one matches")
	cmd.Flags().StringSliceVar(&roots, "root", nil, "scan this root for repositories and switch across all of them (repeatable)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 5, "maximum directory depth below each --root to scan (0 = unlimited)")
	cmd.Flags().StringVar(&cachePath, "cache-path", "", "override the repo index cache file location used to keep --root scans warm")
	return cmd
}

// ttyRequiredError returns nil when standard output is a terminal
// (meaning the caller should go on to open the interactive picker), or
// the platform-specific refusal the shell wrapper's tests parse
// otherwise — Windows lacks the exec-based picker takeover the other
// platforms use, so it gets a distinct message.
func ttyRequiredError() error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	if runtime.GOOS == "windows" {
		return clierr.New(clierr.ExitTTYRequired, "interactive picker is not supported on Windows")
	}
	return clierr.New(clierr.ExitTTYRequired, "interactive picker requires a TTY")
}

// repoMatch is one branch-with-worktree found while scanning --root for
// a cross-repo switch.
type repoMatch struct {
	repoName string
	branch   string
	path     string
}

// switchCrossRepo implements `switch --root <root> [--filter <q>]`: scan
// roots for repositories (refreshing the shared repo index cache along
// the way, the same as `repo index` does), then look for a branch with
// an existing worktree matching branch/filter across every discovered
// repository.
func switchCrossRepo(cmd *cobra.Command, args []string, roots []string, maxDepth int, cachePath, filter string) error {
	ctx := cmd.Context()
	branch := ""
	if len(args) == 1 {
		branch = args[0]
	}
	if branch == "" && filter == "" {
		return fmt.Errorf("--root requires a branch argument or --filter")
	}

	found, err := repoindex.Scan(roots, maxDepth)
	if err != nil {
		return clierr.Wrap(clierr.ExitRuntime, "scanning for repositories", err)
	}

	path := cachePath
	if path == "" {
		path, err = repoindex.DefaultPath()
		if err != nil {
			return clierr.Wrap(clierr.ExitRuntime, "resolving repo index path", err)
		}
	}
	if idx, loadErr := repoindex.Load(path); loadErr == nil {
		now := time.Now()
		for _, repoPath := range found {
			idx.Upsert(repoPath, filepath.Base(repoPath), "", now)
		}
		_ = repoindex.Save(path, idx)
	}

	// A linked worktree's directory is itself discovered as a repository,
	// so the same worktree can be reached from more than one scanned path.
	var matches []repoMatch
	seen := make(map[string]bool)
	for _, repoPath := range found {
		engine, err := openEngineAt(ctx, repoPath)
		if err != nil {
			continue
		}
		branches, err := engine.Repo.ListRefs(ctx, "refs/heads/")
		if err != nil {
			continue
		}
		lower := strings.ToLower(filter)
		for _, b := range branches {
			if branch != "" && b != branch {
				continue
			}
			if branch == "" && !strings.Contains(strings.ToLower(b), lower) {
				continue
			}
			if worktreePath, ok, err := engine.Resolver().Attached(ctx, b); err == nil && ok && !seen[worktreePath] {
				seen[worktreePath] = true
				matches = append(matches, repoMatch{repoName: filepath.Base(repoPath), branch: b, path: worktreePath})
			}
		}
	}

	switch len(matches) {
	case 0:
		return clierr.New(clierr.ExitNotFound, fmt.Sprintf("no worktree for branch %q found under the scanned roots", firstNonEmpty(branch, filter)))
	case 1:
		sink := directive.Select(internalFlag)
		defer sink.Flush()
		sink.ChangeDirectory(matches[0].path)
		return nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return clierr.New(clierr.ExitTTYRequired, fmt.Sprintf("%d worktrees match; narrow it or attach a terminal to pick one", len(matches)))
	}
	items := make([]picker.Item, len(matches))
	for i, m := range matches {
		items[i] = picker.Item{Label: fmt.Sprintf("%s:%s", m.repoName, m.branch), Detail: m.path, Value: m.path}
	}
	chosen, err := picker.Pick("switch to worktree", items)
	if err != nil {
		return clierr.Wrap(clierr.ExitRuntime, "running cross-repo picker", err)
	}
	if chosen == "" {
		return clierr.New(clierr.ExitCancelled, "no worktree selected")
	}
	sink := directive.Select(internalFlag)
	defer sink.Flush()
	sink.ChangeDirectory(chosen)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// pickBranch narrows local branches to those matching filter (an empty
// filter matches every branch, used to open the all-branches picker for
// a bare `switch`), resolving immediately on a single match and
// prompting an interactive picker when more than one matches and a TTY
// is attached.
func pickBranch(cmd *cobra.Command, engine *lifecycle.Engine, filter string) (string, error) {
	branches, err := engine.Repo.ListRefs(cmd.Context(), "refs/heads/")
	if err != nil {
		return "", clierr.Wrap(clierr.ExitRuntime, "listing branches", err)
	}

	lower := strings.ToLower(filter)
	var matches []string
	for _, b := range branches {
		if strings.Contains(strings.ToLower(b), lower) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return "", clierr.New(clierr.ExitNotFound, fmt.Sprintf("no branch matches filter %q", filter))
	case 1:
		return matches[0], nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", clierr.New(clierr.ExitTTYRequired, fmt.Sprintf("%d branches match filter %q; narrow it or attach a terminal to pick one", len(matches), filter))
	}

	items := make([]picker.Item, len(matches))
	for i, b := range matches {
		items[i] = picker.Item{Label: b, Value: b}
	}
	chosen, err := picker.Pick("switch to branch", items)
	if err != nil {
		return "", clierr.Wrap(clierr.ExitRuntime, "running branch picker", err)
	}
	if chosen == "" {
		return "", clierr.New(clierr.ExitCancelled, "no branch selected")
	}
	return chosen, nil
}
