// Package hooks runs the lifecycle hook points (post-create, post-start,
// pre-commit, pre-merge, post-merge) that project config attaches to wt
// operations.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/worktrunk/wt/internal/gitexec"
)

// Point names a hook attachment point.
type Point string

const (
	PostCreate Point = "post-create"
	PostStart  Point = "post-start"
	PreCommit  Point = "pre-commit"
	PreMerge   Point = "pre-merge"
	PostMerge  Point = "post-merge"
)

// Mode controls how a hook command is executed.
type Mode int

const (
	// Blocking runs the command to completion and fails the whole
	// operation on non-zero exit (post-create's default).
	Blocking Mode = iota
	// Detached spawns the command fully detached from wt's own process
	// tree, logging to a file, and never blocks or fails the operation
	// (post-start's default).
	Detached
)

// Runner executes hook commands for one repository.
type Runner struct {
	repo *gitexec.Repository
}

// New builds a Runner bound to repo.
func New(repo *gitexec.Repository) *Runner {
	return &Runner{repo: repo}
}

// Run executes command in worktreeDir. For Blocking mode it waits and
// returns the command's error (fail-fast); for Detached mode it spawns
// the command fully detached and returns the log file path, never an
// execution error — only a failure to even start the spawn is reported.
// name distinguishes this command's log file from any other command
// configured at the same point (config lets several commands share a
// point, each with its own optional name); when empty it falls back to
// the point's own name.
func (r *Runner) Run(ctx context.Context, point Point, mode Mode, worktreeDir, branch, command, name string) (logPath string, err error) {
	if strings.TrimSpace(command) == "" {
		return "", nil
	}
	if name == "" {
		name = string(point)
	}

	if mode == Blocking {
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Dir = worktreeDir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Stdin = nil
		if err := cmd.Run(); err != nil {
			return "", fmt.Errorf("hook %s failed: %w", point, err)
		}
		return "", nil
	}

	return r.spawnDetached(worktreeDir, command, branch, name)
}

// logPathFor builds the per-branch, per-hook log file path under the
// shared git directory: <common-dir>/wt-logs/<branch-with-/-as-dash>-<name>.log.
// The file is truncated (not appended) on every run, so a stale previous
// run's output never blends with the current one (Open Question 1).
func (r *Runner) logPathFor(branch, name string) (string, error) {
	logDir := filepath.Join(r.repo.GitCommonDir(), "wt-logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("creating hook log directory: %w", err)
	}
	safeBranch := strings.ReplaceAll(branch, "/", "-")
	return filepath.Join(logDir, fmt.Sprintf("%s-%s.log", safeBranch, name)), nil
}
