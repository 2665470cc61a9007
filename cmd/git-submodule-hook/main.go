// Package main is the entry point for the git-submodule-hook binary,
// a pre-commit hook that warns about modified submodules.
package main

import (
	"fmt"
	"os"
	"os/signal"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/git-submodule-hook/internal/buildinfo"
	"github.com/chmouel/git-submodule-hook/internal/config"
	"github.com/chmouel/git-submodule-hook/internal/git"
	"github.com/chmouel/git-submodule-hook/internal/hook"
	"github.com/chmouel/git-submodule-hook/internal/log"
	"github.com/chmouel/git-submodule-hook/internal/models"
	"github.com/chmouel/git-submodule-hook/internal/prompt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date)
	buildinfo.Enrich()

	cliApp := &urfavecli.App{
		Name:            "git-submodule-hook",
		Usage:           "pre-commit hook that asks before committing around modified submodules",
		Version:         buildinfo.String(),
		Flags:           globalFlags(),
		HideHelpCommand: true,
		Action:          runHook,
	}

	if err := cliApp.Run(os.Args); err != nil {
		// urfave/cli prints exit-coded errors itself; anything else is
		// an operational failure.
		if _, ok := err.(urfavecli.ExitCoder); !ok {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(models.ExitError)
		}
	}
}

func runHook(c *urfavecli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	repoPath := c.String("repo")
	cfg, err := config.Resolve(overridesFromFlags(c),
		config.LocalSource(repoPath),
		config.GlobalSource(),
	)
	if err != nil {
		return urfavecli.Exit(fmt.Sprintf("git-submodule-hook: %v", err), models.ExitError)
	}

	// Messages logged before this point sit in the buffer; an empty
	// path drops them.
	if err := log.SetFile(cfg.DebugLog); err != nil && cfg.DebugLog != "" {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", cfg.DebugLog, err)
	}
	defer func() { _ = log.Close() }()

	if cfg.Disabled() {
		log.Printf("main: hook disabled by configuration")
		return nil
	}

	repo, err := git.Open(ctx, repoPath)
	if err != nil {
		// Nothing to classify without a repository; fatal in any mode.
		return urfavecli.Exit(fmt.Sprintf("git-submodule-hook: %v", err), models.ExitError)
	}

	decision, err := hook.Run(ctx, cfg, repo, prompt.New())
	if err != nil {
		return urfavecli.Exit(fmt.Sprintf("git-submodule-hook: %v", err), models.ExitError)
	}

	switch decision {
	case models.Blocked:
		return urfavecli.Exit("Commit aborted by user.", decision.ExitCode())
	case models.Interrupted:
		return urfavecli.Exit("Confirmation cancelled by user.", decision.ExitCode())
	default:
		return nil
	}
}
