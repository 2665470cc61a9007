// Package models defines the data objects shared across the hook packages.
package models

// SubmoduleRef identifies one submodule by its path relative to the
// repository root.
type SubmoduleRef struct {
	Path string
}

// SubmoduleStatus classifies one submodule against the index and HEAD.
type SubmoduleStatus int

const (
	// Unmodified means neither the worktree nor the index differ.
	Unmodified SubmoduleStatus = iota
	// ModifiedUnstaged means the worktree differs from the index.
	ModifiedUnstaged
	// ModifiedStaged means the index differs from HEAD.
	ModifiedStaged
	// ModifiedBoth means both of the above hold at once.
	ModifiedBoth
)

// String returns a short label used in debug logs.
func (s SubmoduleStatus) String() string {
	switch s {
	case Unmodified:
		return "unmodified"
	case ModifiedUnstaged:
		return "modified-unstaged"
	case ModifiedStaged:
		return "modified-staged"
	case ModifiedBoth:
		return "modified-both"
	default:
		return "unknown"
	}
}

// Staged reports whether the index entry differs from HEAD.
func (s SubmoduleStatus) Staged() bool {
	return s == ModifiedStaged || s == ModifiedBoth
}

// Unstaged reports whether the worktree differs from the index.
func (s SubmoduleStatus) Unstaged() bool {
	return s == ModifiedUnstaged || s == ModifiedBoth
}

// Diagnostic holds the classified submodules. A submodule that is
// modified with only part of it staged appears in both lists.
type Diagnostic struct {
	Unstaged []SubmoduleRef
	Staged   []SubmoduleRef
}

// Empty reports whether no modified submodules were found.
func (d *Diagnostic) Empty() bool {
	return len(d.Unstaged) == 0 && len(d.Staged) == 0
}

// Answer is the committer's response to the confirmation prompt.
type Answer int

const (
	// AnswerYes proceeds with the commit.
	AnswerYes Answer = iota
	// AnswerNo aborts the commit.
	AnswerNo
	// AnswerInterrupted means the prompt was cancelled (Ctrl+C).
	AnswerInterrupted
)

// Decision is the terminal state of one hook invocation.
type Decision int

const (
	// Proceed lets the commit continue (exit 0).
	Proceed Decision = iota
	// Blocked stops the commit after a "no" answer (exit 1).
	Blocked
	// Interrupted stops the commit after a cancelled prompt (exit 130).
	Interrupted
)

// Exit code contract for the pre-commit hook.
const (
	ExitOK          = 0
	ExitBlocked     = 1
	ExitError       = 3
	ExitInterrupted = 130
)

// ExitCode maps a Decision onto the hook's exit code contract.
func (d Decision) ExitCode() int {
	switch d {
	case Blocked:
		return ExitBlocked
	case Interrupted:
		return ExitInterrupted
	default:
		return ExitOK
	}
}
