// Package main provides CLI flag definitions for git-submodule-hook.
package main

import (
	urfavecli "github.com/urfave/cli/v2"

	"github.com/chmouel/git-submodule-hook/internal/config"
)

// globalFlags returns all flags for the hook. The three boolean flags
// are tri-state: left unset they defer to git config, and
// --flag=false explicitly turns a behavior off.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:  "strict",
			Usage: "Make failed checks hard errors",
		},
		&urfavecli.BoolFlag{
			Name:  "confirm-staging",
			Usage: "Ask confirmation if the commit contains a submodule update",
		},
		&urfavecli.BoolFlag{
			Name:  "confirm-not-staging",
			Usage: "Ask confirmation if a submodule is modified and not staged for commit",
		},
		&urfavecli.StringFlag{
			Name:  "repo",
			Value: ".",
			Usage: "Repository path",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
	}
}

// overridesFromFlags turns explicitly set flags into the
// highest-precedence configuration layer. IsSet keeps unset flags out
// of the merge so lower layers still apply.
func overridesFromFlags(c *urfavecli.Context) config.Partial {
	var p config.Partial
	if c.IsSet("strict") {
		v := c.Bool("strict")
		p.Strict = &v
	}
	if c.IsSet("confirm-staging") {
		v := c.Bool("confirm-staging")
		p.Staging = &v
	}
	if c.IsSet("confirm-not-staging") {
		v := c.Bool("confirm-not-staging")
		p.NotStaging = &v
	}
	if c.IsSet("debug-log") {
		v := c.String("debug-log")
		p.DebugLog = &v
	}
	return p
}
