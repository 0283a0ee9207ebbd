package repoindex

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Scan walks roots looking for git repositories — any directory
// containing a .git entry (file or directory, since a worktree's .git is
// a file pointing at the common dir) — up to maxDepth directories below
// each root (maxDepth <= 0 means unlimited). Matches are not descended
// into further, so a repo nested inside another repo's working tree
// (e.g. a vendored copy) is reported once at its own root. Every
// returned path is canonicalized via filepath.EvalSymlinks so the same
// repository always yields the same string regardless of which symlink
// a root was reached through.
func Scan(roots []string, maxDepth int) ([]string, error) {
	var found []string
	for _, root := range roots {
		rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable entries, keep scanning
			}
			if !d.IsDir() {
				return nil
			}
			if maxDepth > 0 && path != root {
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
				if depth > maxDepth {
					return filepath.SkipDir
				}
			}
			if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
				canonical, err := filepath.EvalSymlinks(path)
				if err != nil {
					canonical = path
				}
				found = append(found, canonical)
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return found, nil
}
