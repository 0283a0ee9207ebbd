//go:build unix

package directive

import (
	"os"
	"syscall"
)

// execInPlace replaces the current process image via execve, so the
// command inherits this process's pid, stdio, and controlling terminal.
func execInPlace(path, command string, args []string) error {
	argv := append([]string{command}, args...)
	return syscall.Exec(path, argv, os.Environ())
}
