package cli

import (
	"context"

	"github.com/worktrunk/wt/internal/clierr"
	"github.com/worktrunk/wt/internal/config"
	"github.com/worktrunk/wt/internal/gitexec"
	"github.com/worktrunk/wt/internal/lifecycle"
)

// openEngine resolves the repository at the effective working directory
// and wires a lifecycle.Engine over it — the one piece of setup nearly
// every command needs before it can do anything else.
func openEngine(ctx context.Context) (*lifecycle.Engine, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "resolving working directory", err)
	}
	return openEngineAt(ctx, dir)
}

// openEngineAt is openEngine for a caller (cross-repo switch) that
// already knows the repository directory rather than relying on the
// effective working directory.
func openEngineAt(ctx context.Context, dir string) (*lifecycle.Engine, error) {
	repo, err := gitexec.Open(ctx, dir, "")
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitNotFound, "not inside a git repository", err)
	}
	cfg, err := config.Load(repo.Toplevel())
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitRuntime, "loading configuration", err)
	}
	return lifecycle.New(repo, cfg)
}
