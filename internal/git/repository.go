// Package git wraps the handful of git commands the hook needs. All
// queries are read-only; the hook never mutates repository state.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/git-submodule-hook/internal/log"
	"github.com/chmouel/git-submodule-hook/internal/models"
)

// ErrNotARepository is returned by Open when the path does not belong
// to a git repository.
var ErrNotARepository = errors.New("not a git repository")

// runGit executes git in dir and returns stdout plus the exit code.
// Exposed as a package variable so tests can mock it and avoid
// depending on system git state.
var runGit = func(ctx context.Context, dir string, args ...string) (string, int, error) {
	// #nosec G204 -- arguments come from internal logic, not user input
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return "", -1, err
	}
	return string(out), 0, nil
}

// Repository is a handle on one opened git repository.
type Repository struct {
	path string
}

// Path returns the repository worktree path the handle was opened at.
func (r *Repository) Path() string { return r.path }

// Open verifies that path is inside a git repository and returns a
// handle for it.
func Open(ctx context.Context, path string) (*Repository, error) {
	_, code, err := runGit(ctx, path, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("open repository %q: %w", path, err)
	}
	if code != 0 {
		return nil, fmt.Errorf("open repository %q: %w", path, ErrNotARepository)
	}
	return &Repository{path: path}, nil
}

// Submodules lists the submodules registered in .gitmodules, in file
// order. A repository without submodules yields an empty list.
func (r *Repository) Submodules(ctx context.Context) ([]models.SubmoduleRef, error) {
	out, code, err := runGit(ctx, r.path,
		"config", "--file", ".gitmodules", "--get-regexp", `^submodule\..*\.path$`)
	if err != nil {
		return nil, fmt.Errorf("list submodules: %w", err)
	}
	// Exit code 1 covers both a missing .gitmodules and no matches.
	if code == 1 {
		return nil, nil
	}
	if code != 0 {
		return nil, fmt.Errorf("list submodules: git config exited %d", code)
	}

	var refs []models.SubmoduleRef
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			log.Printf("git: skipping malformed .gitmodules entry %q", line)
			continue
		}
		refs = append(refs, models.SubmoduleRef{Path: parts[1]})
	}
	return refs, nil
}

// WorktreeModified reports whether the submodule's worktree differs
// from the index entry (modified but not staged).
func (r *Repository) WorktreeModified(ctx context.Context, ref models.SubmoduleRef) (bool, error) {
	return r.diffQuiet(ctx, ref, false)
}

// IndexModified reports whether the index entry for the submodule
// differs from HEAD (modified and staged).
func (r *Repository) IndexModified(ctx context.Context, ref models.SubmoduleRef) (bool, error) {
	return r.diffQuiet(ctx, ref, true)
}

func (r *Repository) diffQuiet(ctx context.Context, ref models.SubmoduleRef, cached bool) (bool, error) {
	// The dirty ignore mode keeps uncommitted content inside the
	// submodule out of the comparison: only a different checked-out
	// commit counts as modified.
	args := []string{"diff", "--quiet", "--ignore-submodules=dirty"}
	if cached {
		args = append(args, "--cached")
	}
	args = append(args, "--", ref.Path)

	_, code, err := runGit(ctx, r.path, args...)
	if err != nil {
		return false, fmt.Errorf("diff %s: %w", ref.Path, err)
	}
	switch code {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("diff %s: git exited %d", ref.Path, code)
	}
}
