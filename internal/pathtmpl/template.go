// Package pathtmpl implements the small, closed template language used to
// compute worktree paths: "{variable}" substitutions with an optional
// "|filter" pipe, nothing else. It deliberately does not reach for
// text/template — the language has no control flow, no user-defined
// functions, and must reject anything it doesn't recognize outright
// rather than silently emit an empty string.
package pathtmpl

import (
	"fmt"
	"regexp"
	"strings"
)

// Vars supplies the substitution values available to a template for one
// render. Fields are looked up by the lowercase variable name; Target is
// only populated for merge-hook templates.
type Vars struct {
	Branch       string
	Repo         string
	MainWorktree string
	RepoRoot     string
	Target       string
}

func (v Vars) lookup(name string) (string, bool) {
	switch name {
	case "branch":
		return v.Branch, true
	case "repo":
		return v.Repo, true
	case "main_worktree":
		return v.MainWorktree, true
	case "repo_root":
		return v.RepoRoot, true
	case "target":
		return v.Target, true
	default:
		return "", false
	}
}

// Template is a parsed path template, ready to Render against any Vars.
type Template struct {
	segments []segment
}

type segment struct {
	literal string // non-empty only when variable == ""
	variable string
	filter   string // "" or "sanitize"
}

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Parse compiles a template string, rejecting unknown variables and
// filters immediately rather than at render time.
func Parse(tmpl string) (*Template, error) {
	var segments []segment
	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(tmpl, -1) {
		start, end := loc[0], loc[1]
		if start > last {
			segments = append(segments, segment{literal: tmpl[last:start]})
		}
		inner := tmpl[loc[2]:loc[3]]
		variable, filter, hasFilter := strings.Cut(inner, "|")
		variable = strings.TrimSpace(variable)
		if !hasFilter {
			filter = ""
		} else {
			filter = strings.TrimSpace(filter)
		}

		if _, ok := (Vars{}).lookup(variable); !ok {
			return nil, fmt.Errorf("pathtmpl: unknown variable %q", variable)
		}
		if filter != "" && filter != "sanitize" {
			return nil, fmt.Errorf("pathtmpl: unknown filter %q", filter)
		}
		segments = append(segments, segment{variable: variable, filter: filter})
		last = end
	}
	if last < len(tmpl) {
		segments = append(segments, segment{literal: tmpl[last:]})
	}
	return &Template{segments: segments}, nil
}

// Render substitutes vars into the template. A {target} placeholder with
// an empty Vars.Target is allowed — merge hooks are the only callers that
// populate it, and non-merge templates never reference it (Parse would
// have accepted it regardless, since whether target applies is a caller
// concern, not a syntax one).
func (t *Template) Render(vars Vars) (string, error) {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.variable == "" {
			b.WriteString(seg.literal)
			continue
		}
		value, ok := vars.lookup(seg.variable)
		if !ok {
			return "", fmt.Errorf("pathtmpl: unknown variable %q", seg.variable)
		}
		if seg.filter == "sanitize" {
			value = Sanitize(value)
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

var unsafeRe = regexp.MustCompile(`[/\\\s:*?"<>|]+`)

// Sanitize replaces filesystem-unsafe runs of characters with a single
// hyphen and trims leading/trailing hyphens, mirroring the branch-name
// sanitization used when deriving a directory name from a branch like
// "feature/my-thing".
func Sanitize(s string) string {
	s = unsafeRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
