// Package cistatus detects which CI/forge platform a repository's remote
// points at, and fetches PR/check status for a branch from that
// platform's CLI (gh or glab), treating the external tool as an oracle:
// its absence degrades to "unknown" status rather than failing the
// enclosing list operation.
package cistatus

import (
	"context"
	"os/exec"
	"strings"
)

// Platform identifies a forge.
type Platform string

const (
	PlatformNone   Platform = ""
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
)

// Detect chooses a platform: an explicit config override always wins;
// otherwise any remote URL containing "github.com" selects GitHub, and
// failing that any remote URL containing "gitlab" selects GitLab.
func Detect(configOverride string, remoteURLs map[string]string) Platform {
	switch strings.ToLower(configOverride) {
	case "github":
		return PlatformGitHub
	case "gitlab":
		return PlatformGitLab
	}

	for _, url := range remoteURLs {
		lower := strings.ToLower(url)
		if strings.Contains(lower, "github.com") {
			return PlatformGitHub
		}
	}
	for _, url := range remoteURLs {
		lower := strings.ToLower(url)
		if strings.Contains(lower, "gitlab.com") || strings.Contains(lower, "gitlab") {
			return PlatformGitLab
		}
	}
	return PlatformNone
}

// Status is the PR/check status for one branch.
type Status struct {
	Found       bool
	Number      int
	State       string // as reported by the CLI, e.g. "OPEN" (gh) or "opened" (glab)
	ChecksState string // "pending", "success", "failure", ""
	URL         string
}

// Fetch queries the platform's CLI for branch's PR status in dir. A
// missing CLI binary or any command failure yields a zero Status, not an
// error — CI status is an enrichment, never a reason to fail `wt list`.
func Fetch(ctx context.Context, platform Platform, dir, branch string) Status {
	switch platform {
	case PlatformGitHub:
		return fetchGitHub(ctx, dir, branch)
	case PlatformGitLab:
		return fetchGitLab(ctx, dir, branch)
	default:
		return Status{}
	}
}

func binaryAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func fetchGitHub(ctx context.Context, dir, branch string) Status {
	if !binaryAvailable("gh") {
		return Status{}
	}
	cmd := exec.CommandContext(ctx, "gh", "pr", "view", branch,
		"--json", "number,state,statusCheckRollup,url")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		_ = out
		return Status{}
	}
	return parseGHStatus(string(out))
}

func fetchGitLab(ctx context.Context, dir, branch string) Status {
	if !binaryAvailable("glab") {
		return Status{}
	}
	cmd := exec.CommandContext(ctx, "glab", "mr", "view", branch, "--output", "json")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		_ = out
		return Status{}
	}
	return parseGlabStatus(string(out))
}
