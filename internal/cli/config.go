package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/config"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/repoindex"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize wt configuration",
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigRefreshCacheCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter user configuration file, if one doesn't already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.Init()
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "initializing configuration", err)
			}
			if created {
				fmt.Printf("wrote starter configuration to %s\n", path)
			} else {
				fmt.Printf("configuration already exists at %s\n", path)
			}
			return nil
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the effective merged configuration for the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "resolving working directory", err)
			}
			repo, err := gitexec.Open(cmd.Context(), dir, "")
			if err == nil {
				printEffectiveConfig(cmd.Context(), repo)
				return nil
			}

			userPath := config.UserConfigPath()
			if contents, exists, readErr := config.ReadRaw(userPath); readErr == nil && exists {
				fmt.Print(contents)
			} else {
				fmt.Print(config.DefaultConfigSummary())
			}
			return nil
		},
	}
}

func printEffectiveConfig(ctx context.Context, repo *gitexec.Repository) {
	cfg, err := config.Load(repo.Toplevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: loading configuration: %v\n", err)
		fmt.Print(config.DefaultConfigSummary())
		return
	}
	fmt.Printf("worktree-path = %q\n", cfg.WorktreePath)
	if cfg.DefaultTarget != "" {
		fmt.Printf("default-target = %q\n", cfg.DefaultTarget)
	}
	if cfg.CIPlatform != "" {
		fmt.Printf("ci-platform = %q\n", cfg.CIPlatform)
	}
	printHookSummary("post-create", cfg.Hooks.PostCreate)
	printHookSummary("post-start", cfg.Hooks.PostStart)
	printHookSummary("pre-commit", cfg.Hooks.PreCommit)
	printHookSummary("pre-merge", cfg.Hooks.PreMerge)
	printHookSummary("post-merge", cfg.Hooks.PostMerge)
}

func printHookSummary(name string, cc config.CommandConfig) {
	commands := cc.Commands()
	if len(commands) == 0 {
		return
	}
	fmt.Printf("[%s]\n", name)
	for _, nc := range commands {
		if nc.Name != "" {
			fmt.Printf("  %s: %s\n", nc.Name, nc.Command)
		} else {
			fmt.Printf("  %s\n", nc.Command)
		}
	}
}

func newConfigRefreshCacheCommand() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "refresh-cache",
		Short: "Re-resolve the repository's default branch and clear wt's in-process git query cache",
		Long: `refresh-cache asks <remote> which branch its HEAD points at (a network
round-trip) and stores the answer in the repo index entry for this
repository, so the repo index's branch-aware features don't rely on a
possibly-stale local refs/remotes/<remote>/HEAD. It also drops wt's
in-process git query cache for the current repository, the same
invalidation mutating commands trigger automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "resolving working directory", err)
			}
			repo, err := gitexec.Open(cmd.Context(), dir, "")
			if err != nil {
				return clierr.Wrap(clierr.ExitNotFound, "not inside a git repository", err)
			}

			mainBranch, err := repo.RemoteDefaultBranch(cmd.Context(), remote)
			if err != nil {
				repo.InvalidateCache()
				return clierr.Wrap(clierr.ExitRuntime, fmt.Sprintf("resolving default branch for remote %q", remote), err)
			}

			if err := refreshIndexEntry(repo.Toplevel(), mainBranch); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "updating repo index", err)
			}

			repo.InvalidateCache()
			fmt.Printf("default branch is %q; cache cleared\n", mainBranch)
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "origin", "remote to query for the default branch")
	return cmd
}

func refreshIndexEntry(repoPath, mainBranch string) error {
	path, err := repoindex.DefaultPath()
	if err != nil {
		return err
	}
	idx, err := repoindex.Load(path)
	if err != nil {
		return err
	}
	idx.Upsert(repoPath, filepath.Base(repoPath), mainBranch, time.Now())
	return repoindex.Save(path, idx)
}
