// Package config loads wt's TOML configuration, merging a per-user
// config with a project config checked into the repository. Project
// config wins for hook definitions; the worktree path template is
// project-first, user-second, built-in-default last.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPathTemplate is used when neither project nor user config sets
// worktree-path.
const DefaultPathTemplate = "../{main_worktree}.{branch|sanitize}"

// CommandConfig is the shape of a hook value in TOML: a single command
// string, an array of commands run in sequence, or a table of named
// commands (the name gives each command its own log file).
// Exactly one of the three is populated after decoding.
type CommandConfig struct {
	Single   string
	Multiple []string
	Named    map[string]string
}

// UnmarshalTOML implements toml.Unmarshaler so a single key can accept
// any of the three shapes the original project config supports.
func (c *CommandConfig) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		c.Single = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				c.Multiple = append(c.Multiple, s)
			}
		}
	case map[string]interface{}:
		c.Named = make(map[string]string, len(v))
		for k, val := range v {
			if s, ok := val.(string); ok {
				c.Named[k] = s
			}
		}
	}
	return nil
}

// Commands flattens whichever shape was set into a list of (name,
// command) pairs; name is "" for the Single/Multiple shapes. Multiple
// keeps its configured order; Named is read from a map, so the order of
// named commands is not defined.
func (c CommandConfig) Commands() []NamedCommand {
	switch {
	case c.Single != "":
		return []NamedCommand{{Command: c.Single}}
	case len(c.Multiple) > 0:
		out := make([]NamedCommand, len(c.Multiple))
		for i, cmd := range c.Multiple {
			out[i] = NamedCommand{Command: cmd}
		}
		return out
	case len(c.Named) > 0:
		out := make([]NamedCommand, 0, len(c.Named))
		for name, cmd := range c.Named {
			out = append(out, NamedCommand{Name: name, Command: cmd})
		}
		return out
	default:
		return nil
	}
}

// NamedCommand is one resolved hook command, with an optional name used
// to distinguish its log file from siblings at the same hook point.
type NamedCommand struct {
	Name    string
	Command string
}

// Hooks holds the five hook-point attachments.
type Hooks struct {
	PostCreate CommandConfig `toml:"post-create"`
	PostStart  CommandConfig `toml:"post-start"`
	PreCommit  CommandConfig `toml:"pre-commit"`
	PreMerge   CommandConfig `toml:"pre-merge"`
	PostMerge  CommandConfig `toml:"post-merge"`
}

// Config is the merged, effective configuration for one invocation.
type Config struct {
	WorktreePath string `toml:"worktree-path"`
	DefaultTarget string `toml:"default-target"`
	Hooks        Hooks  `toml:"-"`

	CIPlatform string `toml:"ci-platform"` // "github", "gitlab", or "" (auto-detect)

	raw rawConfig
}

type rawConfig struct {
	WorktreePath  string `toml:"worktree-path"`
	DefaultTarget string `toml:"default-target"`
	CIPlatform    string `toml:"ci-platform"`

	PostCreate CommandConfig `toml:"post-create"`
	PostStart  CommandConfig `toml:"post-start"`
	PreCommit  CommandConfig `toml:"pre-commit"`
	PreMerge   CommandConfig `toml:"pre-merge"`
	PostMerge  CommandConfig `toml:"post-merge"`
}

func loadFile(path string) (rawConfig, bool, error) {
	var raw rawConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, false, nil
		}
		return raw, false, err
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return raw, false, err
	}
	return raw, true, nil
}

// UserConfigPath returns the default per-user config file location,
// honoring XDG_CONFIG_HOME the way the upstream project does, with HOME
// as a fallback for platforms/tests without XDG set.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "worktrunk", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "worktrunk", "config.toml")
}

// ProjectConfigPath returns the project config path for a repo root.
func ProjectConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".config", "wt.toml")
}

// Load merges the user config and the project config (if repoRoot is
// non-empty), with project values winning on every field that both set.
func Load(repoRoot string) (*Config, error) {
	user, _, err := loadFile(UserConfigPath())
	if err != nil {
		return nil, err
	}

	var project rawConfig
	if repoRoot != "" {
		project, _, err = loadFile(ProjectConfigPath(repoRoot))
		if err != nil {
			return nil, err
		}
	}

	merged := user
	overlayString(&merged.WorktreePath, project.WorktreePath)
	overlayString(&merged.DefaultTarget, project.DefaultTarget)
	overlayString(&merged.CIPlatform, project.CIPlatform)
	overlayHook(&merged.PostCreate, project.PostCreate)
	overlayHook(&merged.PostStart, project.PostStart)
	overlayHook(&merged.PreCommit, project.PreCommit)
	overlayHook(&merged.PreMerge, project.PreMerge)
	overlayHook(&merged.PostMerge, project.PostMerge)

	cfg := &Config{
		WorktreePath:  merged.WorktreePath,
		DefaultTarget: merged.DefaultTarget,
		CIPlatform:    merged.CIPlatform,
		Hooks: Hooks{
			PostCreate: merged.PostCreate,
			PostStart:  merged.PostStart,
			PreCommit:  merged.PreCommit,
			PreMerge:   merged.PreMerge,
			PostMerge:  merged.PostMerge,
		},
		raw: merged,
	}
	if cfg.WorktreePath == "" {
		cfg.WorktreePath = DefaultPathTemplate
	}
	return cfg, nil
}

func overlayString(base *string, override string) {
	if override != "" {
		*base = override
	}
}

func overlayHook(base *CommandConfig, override CommandConfig) {
	if len(override.Commands()) > 0 {
		*base = override
	}
}
