// Package main is the entry point for the wt CLI. It delegates all
// functionality to internal/cli, which defines the cobra command tree;
// this file only wires build-time version info and the top-level
// cancellation context.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/worktrunk/wt/internal/cli"
)

// version, commit, and date are set by the release build via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	root.SetContext(ctx)
	cli.Execute(root)
}
