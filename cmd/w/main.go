// Package main is the entry point for w, a shorter alias for wt that
// shares internal/cli's command tree entirely — only the root command's
// Use string differs, so `w switch feature` and `wt switch feature`
// behave identically.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/worktrunk/wt/internal/cli"
)

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
	root.Use = "w"
	root.SetContext(ctx)
	cli.Execute(root)
}
