package repoindex

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Pick narrows entries to those matching filter: an exact substring match
// on Name or Path first (the common case — typing a repo's real name),
// falling back to fuzzy subsequence matching when no entry contains the
// substring outright, ranked by fuzzy's match score.
func Pick(entries []Entry, filter string) []Entry {
	if filter == "" {
		return entries
	}
	lower := strings.ToLower(filter)
	var substr []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), lower) || strings.Contains(strings.ToLower(e.Path), lower) {
			substr = append(substr, e)
		}
	}
	if len(substr) > 0 {
		return substr
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(filter, names)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
