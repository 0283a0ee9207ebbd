// Package gitexec is the sole boundary between wt and the git binary.
//
// Every other package talks to a repository through a *Repository, never
// through os/exec directly. Read-only queries are cached per process and
// invalidated on any mutating call, so a single `wt list` run issues each
// distinct git invocation at most once even though several components ask
// for the same ref or diff.
//
// We shell out to git rather than embedding a Go git implementation for
// the same reason the worktree examples in this codebase do: worktree
// semantics, sparse hook behavior and exact porcelain formats are a moving
// target that only the real git binary tracks reliably.
package gitexec
