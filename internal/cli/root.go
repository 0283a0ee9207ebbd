// Package cli implements the cobra-based commands for wt. Each subcommand
// lives in its own file; this file defines the root command, global
// flags, and the error-to-exit-code translation shared by all of them.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/worktrunk/wt/internal/clierr"
)

var (
	jsonOutput   bool
	verbose      bool
	internalFlag bool
	chdir        string
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand builds the wt root command and registers every
// subcommand.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "wt",
		Short: "Make git worktrees a first-class workflow",
		Long: `wt turns git worktrees into a first-class workflow: create one per
branch, jump between them, see their status at a glance, and clean them
up once their branch has been integrated upstream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&internalFlag, "internal", false, "emit shell directives instead of human output (set by the shell wrapper)")
	root.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if wt were started in <dir>")

	root.AddCommand(newNewCommand())
	root.AddCommand(newCdCommand())
	root.AddCommand(newSwitchCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newRmCommand())
	root.AddCommand(newPruneCommand())
	root.AddCommand(newRelocateCommand())
	root.AddCommand(newListCommand())
	root.AddCommand(newRepoCommand())
	root.AddCommand(newConfigCommand())
	root.AddCommand(newShellCommand())

	return root
}

// Execute runs root and maps the returned error to a process exit code.
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		if cliErr, ok := err.(*clierr.Error); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error(), nil)
		os.Exit(int(clierr.ExitRuntime))
	}
}

func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{"error": map[string]interface{}{"message": message}}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	red := color.New(color.FgRed, color.Bold)
	if underlying != nil {
		red.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		red.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints to stderr only when --verbose was passed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput reports whether --json was passed.
func IsJSONOutput() bool {
	return jsonOutput
}

// workingDir returns the directory wt should operate from: -C's value if
// given, else the process's actual working directory.
func workingDir() (string, error) {
	if chdir != "" {
		return chdir, nil
	}
	return os.Getwd()
}
