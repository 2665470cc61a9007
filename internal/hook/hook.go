// Package hook holds the decision logic tying configuration and
// submodule classification together: let the commit through, ask the
// committer, or fail.
package hook

import (
	"context"
	"fmt"

	"github.com/chmouel/git-submodule-hook/internal/check"
	"github.com/chmouel/git-submodule-hook/internal/config"
	"github.com/chmouel/git-submodule-hook/internal/log"
	"github.com/chmouel/git-submodule-hook/internal/models"
)

// Confirmer collects the committer's answer once a prompt is needed.
// Implemented by *prompt.Prompter; tests substitute fakes.
type Confirmer interface {
	Confirm(ctx context.Context, diag *models.Diagnostic) (models.Answer, error)
}

// Decide runs the hook's state machine for one invocation. The
// classifier result only matters behind the configured gates: a
// disabled gate hides its list, and with both gates closed the hook
// proceeds no matter what was found.
func Decide(ctx context.Context, cfg config.Effective, diag *models.Diagnostic, confirmer Confirmer) (models.Decision, error) {
	if cfg.Disabled() {
		log.Printf("hook: both confirmation gates closed, proceeding")
		return models.Proceed, nil
	}

	wantsPrompt := (cfg.NotStaging && len(diag.Unstaged) > 0) ||
		(cfg.Staging && len(diag.Staged) > 0)
	if !wantsPrompt {
		log.Printf("hook: nothing to confirm, proceeding")
		return models.Proceed, nil
	}

	answer, err := confirmer.Confirm(ctx, diag)
	if err != nil {
		return models.Proceed, fmt.Errorf("confirm: %w", err)
	}

	switch answer {
	case models.AnswerYes:
		return models.Proceed, nil
	case models.AnswerNo:
		return models.Blocked, nil
	default:
		return models.Interrupted, nil
	}
}

// Run classifies the repository and decides. A non-nil error means the
// invocation failed (exit 3 territory); the returned Decision is only
// meaningful when err is nil. Both collaborators are parameters so
// tests can drive the whole flow with fakes.
func Run(ctx context.Context, cfg config.Effective, repo check.Repository, confirmer Confirmer) (models.Decision, error) {
	if cfg.Disabled() {
		// Skip classification entirely, the answer cannot change.
		return models.Proceed, nil
	}

	diag, err := check.Classify(ctx, repo, cfg.Strict)
	if err != nil {
		return models.Proceed, err
	}
	return Decide(ctx, cfg, diag, confirmer)
}
