package directive

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
)

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)

// InteractiveSink writes styled lines for a human at a TTY. ChangeDirectory
// only records the target path; a later Execute replaces the current
// process with the requested command run from that directory, so the
// command inherits the real terminal instead of a pipe.
type InteractiveSink struct {
	out     io.Writer
	err     io.Writer
	pending string
}

// NewInteractiveSink wraps stdout/stderr for human-facing output.
func NewInteractiveSink(stdout, stderr io.Writer) *InteractiveSink {
	return &InteractiveSink{out: stdout, err: stderr}
}

// Success writes a human-facing status line to standard error, keeping
// standard output reserved for the bare path ChangeDirectory prints —
// scripts doing `cd "$(wt new feature)"` must see only the path.
func (s *InteractiveSink) Success(format string, args ...interface{}) {
	fmt.Fprintf(s.err, format+"\n", args...)
}

func (s *InteractiveSink) Hint(format string, args ...interface{}) {
	fmt.Fprintln(s.err, hintStyle.Render(fmt.Sprintf(format, args...)))
}

// ChangeDirectory records path for a later Execute and, since a bare wt
// process can never change its parent shell's directory on its own,
// prints the bare path to standard output so a human not running
// through the shell wrapper can act on it directly (pipe it, cd into
// it via command substitution, etc).
func (s *InteractiveSink) ChangeDirectory(path string) {
	s.pending = path
	fmt.Fprintln(s.out, path)
}

// Execute runs command from the last ChangeDirectory target, if any. On
// Unix it execs in place via execve so the command takes over this
// process's terminal exactly as if the user had typed it themselves; on
// platforms without exec semantics it falls back to spawn-and-wait and
// exits with the child's status.
func (s *InteractiveSink) Execute(ctx context.Context, command string, args []string) error {
	if s.pending != "" {
		if err := os.Chdir(s.pending); err != nil {
			return err
		}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return err
	}
	return execInPlace(path, command, args)
}

func (s *InteractiveSink) TerminateOutput() {}

func (s *InteractiveSink) Flush() {}
