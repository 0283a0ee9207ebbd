package directive

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Select picks the Sink implementation for this invocation: directive mode
// when stdout is not a terminal and either the shell wrapper announced
// itself via ModeEnvVar or the caller passed --internal explicitly, else
// interactive mode.
func Select(internalFlag bool) Sink {
	stdoutIsTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	wrapperActive := os.Getenv(ModeEnvVar) != ""
	if !stdoutIsTTY && (wrapperActive || internalFlag) {
		return NewDirectiveSink(os.Stdout)
	}
	return NewInteractiveSink(os.Stdout, os.Stderr)
}
