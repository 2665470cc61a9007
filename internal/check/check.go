// Package check classifies a repository's submodules into the
// modified-but-not-staged and modified-and-staged sets the hook
// reports on.
package check

import (
	"context"
	"fmt"

	"github.com/chmouel/git-submodule-hook/internal/log"
	"github.com/chmouel/git-submodule-hook/internal/models"
)

// Repository is the read-only repository access the classifier needs.
// Implemented by *git.Repository; tests substitute fakes.
type Repository interface {
	Submodules(ctx context.Context) ([]models.SubmoduleRef, error)
	WorktreeModified(ctx context.Context, ref models.SubmoduleRef) (bool, error)
	IndexModified(ctx context.Context, ref models.SubmoduleRef) (bool, error)
}

// SubmoduleAccessError reports a submodule whose status could not be
// determined.
type SubmoduleAccessError struct {
	Path string
	Err  error
}

func (e *SubmoduleAccessError) Error() string {
	return fmt.Sprintf("cannot determine status of submodule %q: %v", e.Path, e.Err)
}

func (e *SubmoduleAccessError) Unwrap() error { return e.Err }

// Classify walks every submodule and partitions the modified ones.
// The two facts per submodule are independent: a partially staged
// submodule lands in both lists. Under strict mode the first
// per-submodule failure aborts with a SubmoduleAccessError; otherwise
// the failing submodule is logged and skipped.
func Classify(ctx context.Context, repo Repository, strict bool) (*models.Diagnostic, error) {
	refs, err := repo.Submodules(ctx)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("list submodules: %w", err)
		}
		log.Printf("check: skipping submodule listing: %v", err)
		return &models.Diagnostic{}, nil
	}

	diag := &models.Diagnostic{}
	for _, ref := range refs {
		status, err := statusOf(ctx, repo, ref)
		if err != nil {
			if strict {
				return nil, &SubmoduleAccessError{Path: ref.Path, Err: err}
			}
			log.Printf("check: skipping submodule %q: %v", ref.Path, err)
			continue
		}
		log.Printf("check: submodule %q is %s", ref.Path, status)
		if status.Unstaged() {
			diag.Unstaged = append(diag.Unstaged, ref)
		}
		if status.Staged() {
			diag.Staged = append(diag.Staged, ref)
		}
	}
	return diag, nil
}

// statusOf resolves the tagged status from the two repository facts.
func statusOf(ctx context.Context, repo Repository, ref models.SubmoduleRef) (models.SubmoduleStatus, error) {
	unstaged, err := repo.WorktreeModified(ctx, ref)
	if err != nil {
		return models.Unmodified, err
	}
	staged, err := repo.IndexModified(ctx, ref)
	if err != nil {
		return models.Unmodified, err
	}

	switch {
	case unstaged && staged:
		return models.ModifiedBoth, nil
	case unstaged:
		return models.ModifiedUnstaged, nil
	case staged:
		return models.ModifiedStaged, nil
	default:
		return models.Unmodified, nil
	}
}
