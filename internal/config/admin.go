package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExampleConfig is written by `wt config init` when no user config
// exists yet.
const ExampleConfig = `# wt user configuration
# See 'wt config list' to view the effective merged configuration.

worktree-path = "../{main_worktree}.{branch|sanitize}"

# post-create = "npm install"

# post-start = "npm run dev"
`

// Init writes ExampleConfig to the user config path unless a file
// already exists there, in which case it is a no-op (created reports
// false).
func Init() (path string, created bool, err error) {
	path = UserConfigPath()
	if path == "" {
		return "", false, fmt.Errorf("config: could not determine user config path")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("config: creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(ExampleConfig), 0o644); err != nil {
		return "", false, fmt.Errorf("config: writing config file: %w", err)
	}
	return path, true, nil
}

// ReadRaw returns the raw text contents of path, or ("", false, nil) if
// the file does not exist.
func ReadRaw(path string) (contents string, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// DefaultConfigSummary is shown by `wt config list` when no user config
// file exists yet, so a user can see the built-in default without
// creating a file.
func DefaultConfigSummary() string {
	return strings.TrimSpace(fmt.Sprintf("# Default configuration (no file present):\nworktree-path = %q", DefaultPathTemplate)) + "\n"
}
