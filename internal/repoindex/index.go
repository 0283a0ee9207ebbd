// Package repoindex maintains the persisted list of git repositories wt
// knows about, so `wt repo pick` can offer a cross-repo jump without
// rescanning the filesystem on every invocation.
package repoindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/jsonc"
)

const schemaVersion = 1

// Entry describes one discovered repository.
type Entry struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	LastSeen   time.Time `json:"last_seen"`
	MainBranch string    `json:"main_branch,omitempty"`
}

// Index is the on-disk cache: a schema-versioned list of Entry, guarded
// against concurrent writers with an flock and tolerant of hand-edited
// JSONC (comments, trailing commas) on read.
type Index struct {
	SchemaVersion int     `json:"schema_version"`
	Entries       []Entry `json:"repos"`
}

// UnsupportedSchemaVersion is returned by Load when the cache file was
// written by a future, incompatible version of wt.
type UnsupportedSchemaVersion struct {
	Found int
}

func (e *UnsupportedSchemaVersion) Error() string {
	return "repo index has unsupported schema_version"
}

// DefaultPath returns the repo index cache location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "worktrunk", "repos.json"), nil
}

// Load reads and parses the index file at path. A missing file yields an
// empty Index rather than an error, so first use doesn't require a
// separate init step.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{SchemaVersion: schemaVersion}, nil
		}
		return nil, err
	}
	clean := jsonc.ToJSON(data)
	var idx Index
	if err := json.Unmarshal(clean, &idx); err != nil {
		return nil, err
	}
	if idx.SchemaVersion == 0 {
		idx.SchemaVersion = schemaVersion
	}
	if idx.SchemaVersion != schemaVersion {
		return nil, &UnsupportedSchemaVersion{Found: idx.SchemaVersion}
	}
	return &idx, nil
}

// Save writes idx to path, holding an exclusive flock for the duration so
// two concurrent `wt` invocations never interleave writes. The lock file
// sits alongside the index rather than on the index itself, since Save
// replaces the index file's contents wholesale.
func Save(path string, idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	idx.SchemaVersion = schemaVersion
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Upsert adds or refreshes the entry for path, sorting entries by most
// recently seen.
func (idx *Index) Upsert(path, name, mainBranch string, seenAt time.Time) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == path {
			idx.Entries[i].LastSeen = seenAt
			idx.Entries[i].Name = name
			if mainBranch != "" {
				idx.Entries[i].MainBranch = mainBranch
			}
			idx.sortByRecency()
			return
		}
	}
	idx.Entries = append(idx.Entries, Entry{Path: path, Name: name, MainBranch: mainBranch, LastSeen: seenAt})
	idx.sortByRecency()
}

// Remove drops any entry for path, e.g. after a scan finds it no longer
// exists on disk.
func (idx *Index) Remove(path string) {
	out := idx.Entries[:0]
	for _, e := range idx.Entries {
		if e.Path != path {
			out = append(out, e)
		}
	}
	idx.Entries = out
}

func (idx *Index) sortByRecency() {
	sort.Slice(idx.Entries, func(i, j int) bool {
		return idx.Entries[i].LastSeen.After(idx.Entries[j].LastSeen)
	})
}
