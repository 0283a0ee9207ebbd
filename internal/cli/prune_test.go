package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worktrunk/wt/internal/lifecycle"
)

func TestPrintPrunedReportsNothingToPrune(t *testing.T) {
	old := jsonOutput
	defer func() { jsonOutput = old }()
	jsonOutput = false

	out := captureStdout(t, func() { printPruned(nil) })
	assert.Contains(t, out, "nothing to prune")
}

func TestPrintPrunedListsEachEntry(t *testing.T) {
	old := jsonOutput
	defer func() { jsonOutput = old }()
	jsonOutput = false

	entries := []lifecycle.PrunedEntry{{Path: "/repos/proj-feature", Branch: "feature"}}
	out := captureStdout(t, func() { printPruned(entries) })
	assert.Contains(t, out, "pruned /repos/proj-feature (feature)")
}

func TestPrintPrunedJSON(t *testing.T) {
	old := jsonOutput
	defer func() { jsonOutput = old }()
	jsonOutput = true

	entries := []lifecycle.PrunedEntry{{Path: "/repos/proj-feature", Branch: "feature"}}
	out := captureStdout(t, func() { printPruned(entries) })
	assert.Contains(t, out, `"Branch": "feature"`)
}
