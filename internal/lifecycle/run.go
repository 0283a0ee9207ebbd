package lifecycle

import (
	"context"
	"os"
	"os/exec"

	"github.com/worktrunk/wt/internal/clierr"
)

// Run executes command inside branch's worktree (creating it first via
// Switch if necessary), inheriting the caller's stdio.
func (e *Engine) Run(ctx context.Context, branch, base, command string) error {
	path, err := e.Switch(ctx, branch, base)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = path
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return clierr.New(clierr.ExitRuntime, "command exited with code "+exitErr.String())
		}
		return clierr.Wrap(clierr.ExitRuntime, "running command in worktree", err)
	}
	return nil
}
