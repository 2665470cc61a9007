// Package config resolves the hook configuration from layered sources:
// CLI flags override repository-local git config, which overrides
// global git config, which overrides compiled-in defaults. Each field
// resolves independently to the first source that sets it.
package config

import (
	"fmt"

	"github.com/chmouel/git-submodule-hook/internal/log"
)

// Namespace is the git config section all hook keys live under.
const Namespace = "submodulehook"

// Keys within the namespace.
const (
	keyStrict     = "strict"
	keyStaging    = "staging"
	keyNotStaging = "notstaging"
	keyDebugLog   = "debuglog"
)

// Partial holds the values a single source sets. A nil field means the
// source says nothing about it.
type Partial struct {
	Strict     *bool
	Staging    *bool
	NotStaging *bool
	DebugLog   *string
}

// Effective is the fully resolved configuration for one invocation.
type Effective struct {
	Strict     bool
	Staging    bool
	NotStaging bool
	DebugLog   string
}

// Disabled reports whether both confirmation gates are off, in which
// case the hook always lets the commit through.
func (e Effective) Disabled() bool {
	return !e.Staging && !e.NotStaging
}

// AccessError reports a configuration source that could not be read
// while strict mode was already in effect.
type AccessError struct {
	Scope string
	Err   error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot read %s config: %v", e.Scope, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Source is one configuration layer. Load may fail; whether that
// failure matters depends on the strict value resolved so far.
type Source struct {
	Scope string
	Load  func() (Partial, error)
}

// fill copies values from other into p for fields p does not set.
func (p Partial) fill(other Partial) Partial {
	if p.Strict == nil {
		p.Strict = other.Strict
	}
	if p.Staging == nil {
		p.Staging = other.Staging
	}
	if p.NotStaging == nil {
		p.NotStaging = other.NotStaging
	}
	if p.DebugLog == nil {
		p.DebugLog = other.DebugLog
	}
	return p
}

// Resolve merges the runtime overrides with the given sources, ordered
// highest precedence first. A source read failure normally contributes
// nothing; once a higher-precedence layer has resolved strict=true it
// becomes an AccessError instead, so strict mode never degrades
// silently.
func Resolve(overrides Partial, sources ...Source) (Effective, error) {
	merged := overrides
	for _, src := range sources {
		partial, err := src.Load()
		if err != nil {
			if merged.Strict != nil && *merged.Strict {
				return Effective{}, &AccessError{Scope: src.Scope, Err: err}
			}
			log.Printf("config: skipping unreadable %s source: %v", src.Scope, err)
			continue
		}
		merged = merged.fill(partial)
	}

	eff := Effective{
		Strict:     false,
		Staging:    true,
		NotStaging: true,
	}
	if merged.Strict != nil {
		eff.Strict = *merged.Strict
	}
	if merged.Staging != nil {
		eff.Staging = *merged.Staging
	}
	if merged.NotStaging != nil {
		eff.NotStaging = *merged.NotStaging
	}
	if merged.DebugLog != nil {
		eff.DebugLog = *merged.DebugLog
	}
	return eff, nil
}
