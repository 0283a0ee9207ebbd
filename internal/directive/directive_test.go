package directive

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectiveSinkChangeDirectoryEmitsNULTerminatedRecord(t *testing.T) {
	var buf bytes.Buffer
	s := NewDirectiveSink(&buf)

	s.ChangeDirectory("/repos/proj-feature")

	records := splitRecords(t, buf.String())
	require.Len(t, records, 1)
	assert.Equal(t, cdPrefix+"/repos/proj-feature", records[0])
}

func TestDirectiveSinkSuccessIsPlainAndNULTerminated(t *testing.T) {
	var buf bytes.Buffer
	s := NewDirectiveSink(&buf)

	s.Success("created worktree at %s", "/repos/proj-feature")

	records := splitRecords(t, buf.String())
	require.Len(t, records, 1)
	assert.Equal(t, "created worktree at /repos/proj-feature", records[0])
}

func TestDirectiveSinkHintIsSuppressed(t *testing.T) {
	var buf bytes.Buffer
	s := NewDirectiveSink(&buf)

	s.Hint("install the shell wrapper")

	assert.Empty(t, buf.String())
}

func TestDirectiveSinkExecuteQuotesArguments(t *testing.T) {
	var buf bytes.Buffer
	s := NewDirectiveSink(&buf)

	err := s.Execute(context.Background(), "echo", []string{"it's fine"})
	require.NoError(t, err)

	records := splitRecords(t, buf.String())
	require.Len(t, records, 1)
	assert.Equal(t, execPrefix+`echo 'it'\''s fine'`, records[0])
}

func TestDirectiveSinkTerminateOutputWritesASeparatorRecord(t *testing.T) {
	var buf bytes.Buffer
	s := NewDirectiveSink(&buf)

	s.Success("hello")
	s.TerminateOutput()

	assert.Equal(t, "hello\x00\x00", buf.String())
}

func splitRecords(t *testing.T, raw string) []string {
	t.Helper()
	trimmed := strings.TrimSuffix(raw, "\x00")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\x00")
}
