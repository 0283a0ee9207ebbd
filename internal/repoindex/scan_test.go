package repoindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonical mirrors Scan's own canonicalization so expectations still
// hold on platforms where t.TempDir() itself sits behind a symlink.
func canonical(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func TestScanFindsRepoRootsAndDoesNotDescendIntoThem(t *testing.T) {
	root := t.TempDir()

	repoA := filepath.Join(root, "projects", "a")
	require.NoError(t, os.MkdirAll(filepath.Join(repoA, ".git"), 0o755))

	nested := filepath.Join(repoA, "vendor", "nested-repo")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".git"), 0o755))

	repoB := filepath.Join(root, "projects", "b")
	require.NoError(t, os.MkdirAll(repoB, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoB, ".git"), []byte("gitdir: /elsewhere"), 0o644))

	notARepo := filepath.Join(root, "projects", "c")
	require.NoError(t, os.MkdirAll(notARepo, 0o755))

	found, err := Scan([]string{root}, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{canonical(t, repoA), canonical(t, repoB)}, found)
}

func TestScanAcrossMultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootA, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(rootB, ".git"), 0o755))

	found, err := Scan([]string{rootA, rootB}, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{canonical(t, rootA), canonical(t, rootB)}, found)
}

func TestScanHonorsMaxDepth(t *testing.T) {
	root := t.TempDir()

	shallow := filepath.Join(root, "a")
	require.NoError(t, os.MkdirAll(filepath.Join(shallow, ".git"), 0o755))

	deep := filepath.Join(root, "x", "y", "z")
	require.NoError(t, os.MkdirAll(filepath.Join(deep, ".git"), 0o755))

	found, err := Scan([]string{root}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{canonical(t, shallow)}, found)
}
