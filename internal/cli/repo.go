package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/picker"
	"github.com/worktrunk/wt/internal/repoindex"
)

func newRepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage the cross-repo index used by repo pick",
	}
	cmd.AddCommand(newRepoIndexCommand())
	cmd.AddCommand(newRepoPickCommand())
	return cmd
}

func newRepoIndexCommand() *cobra.Command {
	var roots []string
	var maxDepth int
	var cachePath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan roots for git repositories and refresh the repo index cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cachePath
			if path == "" {
				var err error
				path, err = repoindex.DefaultPath()
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "resolving repo index path", err)
				}
			}
			if len(roots) == 0 {
				home, err := os.UserHomeDir()
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, "resolving home directory", err)
				}
				roots = []string{home}
			}

			found, err := repoindex.Scan(roots, maxDepth)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "scanning for repositories", err)
			}

			idx, err := repoindex.Load(path)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "loading repo index", err)
			}
			now := time.Now()
			for _, repoPath := range found {
				idx.Upsert(repoPath, filepath.Base(repoPath), "", now)
			}
			if err := repoindex.Save(path, idx); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "saving repo index", err)
			}
			fmt.Printf("indexed %d repositor(y/ies)\n", len(found))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roots, "root", nil, "directory to scan (repeatable; default: $HOME)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 5, "maximum directory depth below each root to scan (0 = unlimited)")
	cmd.Flags().StringVar(&cachePath, "cache-path", "", "override the repo index cache file location")
	return cmd
}

func newRepoPickCommand() *cobra.Command {
	var filter string
	var cached bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print the path of a repository from the index, prompting if more than one matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := repoindex.DefaultPath()
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "resolving repo index path", err)
			}
			idx, err := repoindex.Load(path)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "loading repo index", err)
			}
			_ = cached // the index is never rescanned here regardless; flag documents intent to the user

			matches := repoindex.Pick(idx.Entries, filter)
			switch len(matches) {
			case 0:
				return clierr.New(clierr.ExitNotFound, fmt.Sprintf("no indexed repository matches %q", filter))
			case 1:
				fmt.Println(matches[0].Path)
				return nil
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) {
				return clierr.New(clierr.ExitTTYRequired, fmt.Sprintf("%d repositories match %q; narrow it or attach a terminal to pick one", len(matches), filter))
			}
			items := make([]picker.Item, len(matches))
			for i, e := range matches {
				items[i] = picker.Item{Label: e.Name, Detail: e.Path, Value: e.Path}
			}
			chosen, err := picker.Pick("pick a repository", items)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, "running repo picker", err)
			}
			if chosen == "" {
				return clierr.New(clierr.ExitCancelled, "no repository selected")
			}
			fmt.Println(chosen)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "substring or fuzzy filter over indexed repository names/paths")
	cmd.Flags().BoolVar(&cached, "cached", true, "read the index without rescanning (always true: repo index is a separate command)")
	return cmd
}
