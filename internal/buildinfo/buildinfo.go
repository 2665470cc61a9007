// Package buildinfo holds build metadata for the hook binary. The
// linker injects values into cmd/git-submodule-hook; main() forwards
// them here via Set.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Set stores the metadata received from linker-injected variables.
func Set(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the build version string.
func Version() string { return version }

// String returns the full version line shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Enrich fills a missing commit hash from runtime/debug build info.
func Enrich() {
	if commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			commit = setting.Value
		}
	}
}
