package repoindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyIndex(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "repos.json"))
	require.NoError(t, err)
	require.Empty(t, idx.Entries)
	require.Equal(t, schemaVersion, idx.SchemaVersion)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.json")
	idx := &Index{}
	idx.Upsert("/repos/a", "a", "main", time.Unix(100, 0))
	idx.Upsert("/repos/b", "b", "main", time.Unix(200, 0))
	require.NoError(t, Save(path, idx))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)
	require.Equal(t, "/repos/b", loaded.Entries[0].Path) // most recent first
}

func TestSaveWritesRepoListUnderReposKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.json")
	idx := &Index{}
	idx.Upsert("/repos/a", "a", "main", time.Unix(100, 0))
	require.NoError(t, Save(path, idx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &generic))
	require.Contains(t, generic, "repos")
	require.NotContains(t, generic, "entries")
}

func TestLoadRejectsUnsupportedSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.json")
	future := &Index{SchemaVersion: 99, Entries: []Entry{{Path: "/x", Name: "x"}}}
	data, err := json.Marshal(future)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Load(path)
	require.Error(t, err)
	var unsupported *UnsupportedSchemaVersion
	require.ErrorAs(t, err, &unsupported)
}

func TestUpsertRefreshesExistingEntry(t *testing.T) {
	idx := &Index{}
	idx.Upsert("/repos/a", "a", "main", time.Unix(1, 0))
	idx.Upsert("/repos/a", "a-renamed", "main", time.Unix(2, 0))
	require.Len(t, idx.Entries, 1)
	require.Equal(t, "a-renamed", idx.Entries[0].Name)
}

func TestRemoveDropsEntry(t *testing.T) {
	idx := &Index{}
	idx.Upsert("/repos/a", "a", "", time.Unix(1, 0))
	idx.Remove("/repos/a")
	require.Empty(t, idx.Entries)
}
