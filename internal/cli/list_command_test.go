package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommandJSONOutputIsValidAndNonEmpty(t *testing.T) {
	_, dir := setupTestEngine(t)

	root := NewRootCommand()
	root.SetArgs([]string{"list", "--json", "--chdir", dir})
	out := captureStdout(t, func() {
		require.NoError(t, root.Execute())
	})

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	rows, ok := doc["rows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)
}
