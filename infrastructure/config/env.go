package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/stackplan/domain/config"
)

// envPattern matches ${VAR}, ${VAR:-default}, ${VAR:?message} and $VAR.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:[-?][^}]*)?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// envExpander expands environment variables in configuration text.
type envExpander struct {
	// strict fails if a referenced variable is not set.
	strict bool
	// lookup resolves a variable. Defaults to os.LookupEnv.
	lookup func(string) (string, bool)
}

// Expand expands environment variables in the input in a single pass, so
// substituted values are never expanded again. Supported patterns:
//   - ${VAR} - expands to the value of VAR
//   - ${VAR:-default} - expands to VAR or "default" if unset or empty
//   - ${VAR:?message} - fails if VAR is unset or empty
//   - $VAR - simple expansion
func (e *envExpander) Expand(input string) (string, error) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	result := envPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		name, modifier := groups[1], groups[2]
		if name == "" {
			name = groups[3]
		}

		value, exists := lookup(name)
		switch {
		case strings.HasPrefix(modifier, ":-"):
			if !exists || value == "" {
				return modifier[2:]
			}
		case strings.HasPrefix(modifier, ":?"):
			if !exists || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, modifier[2:]))
				return match
			}
		case !exists:
			if e.strict {
				missing = append(missing, name)
			}
			return ""
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return result, nil
}

// ExpandEnv expands environment variables, replacing unset ones with "".
func ExpandEnv(input string) string {
	e := &envExpander{}
	result, _ := e.Expand(input)
	return result
}

// ExpandEnvStrict expands environment variables and returns an error for missing vars.
func ExpandEnvStrict(input string) (string, error) {
	e := &envExpander{strict: true}
	return e.Expand(input)
}
