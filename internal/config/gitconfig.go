package config

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/git-submodule-hook/internal/log"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config exits 1 when no key matches (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// GlobalSource reads hook keys from the user-wide git config.
func GlobalSource() Source {
	return Source{
		Scope: "global",
		Load: func() (Partial, error) {
			return loadGitConfig("global", []string{"config", "--global", "--get-regexp", "^" + Namespace + `\.`}, "")
		},
	}
}

// LocalSource reads hook keys from the target repository's config.
func LocalSource(repoPath string) Source {
	return Source{
		Scope: "local",
		Load: func() (Partial, error) {
			return loadGitConfig("local", []string{"config", "--local", "--get-regexp", "^" + Namespace + `\.`}, repoPath)
		},
	}
}

func loadGitConfig(scope string, args []string, repoPath string) (Partial, error) {
	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return Partial{}, err
	}
	return parsePartial(scope, output)
}

// parsePartial parses `git config --get-regexp` output, one
// "submodulehook.key value" pair per line. The last occurrence of a
// key wins, matching git's own behavior for single-valued keys.
func parsePartial(scope, output string) (Partial, error) {
	var p Partial
	if strings.TrimSpace(output) == "" {
		return p, nil
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		// SplitN keeps values containing spaces intact. A key with no
		// value (e.g. "[submodulehook] strict") yields one field and an
		// implicit true, like git's own boolean handling.
		parts := strings.SplitN(line, " ", 2)
		key := strings.TrimPrefix(parts[0], Namespace+".")
		value := ""
		hasValue := len(parts) == 2
		if hasValue {
			value = parts[1]
		}

		switch key {
		case keyStrict, keyStaging, keyNotStaging:
			b, err := parseGitBool(value, !hasValue)
			if err != nil {
				return Partial{}, fmt.Errorf("%s config %s.%s: %w", scope, Namespace, key, err)
			}
			log.Printf("config: %s %s.%s = %t", scope, Namespace, key, b)
			switch key {
			case keyStrict:
				p.Strict = &b
			case keyStaging:
				p.Staging = &b
			case keyNotStaging:
				p.NotStaging = &b
			}
		case keyDebugLog:
			log.Printf("config: %s %s.%s = %q", scope, Namespace, key, value)
			p.DebugLog = &value
		default:
			log.Printf("config: ignoring unknown key %s.%s", Namespace, key)
		}
	}
	return p, nil
}

// parseGitBool follows git's boolean literal rules. A key present with
// no value at all counts as true.
func parseGitBool(value string, bare bool) (bool, error) {
	if bare {
		return true, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", value)
	}
}
