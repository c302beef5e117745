// Package shared provides common utility functions used across multiple
// packages in the extbuild codebase.
package shared

import (
	"fmt"
	"strings"
)

// MacroPrefix is the marker token carried by every feature macro and by
// the keys of the runtime reflection structure.
const MacroPrefix = "WITH_"

// MacroName derives the configuration macro for a feature name: the
// marker prefix plus the uppercased token.
func MacroName(feature string) string {
	return MacroPrefix + UpperToken(feature)
}

// UpperToken uppercases a name for use in a preprocessor identifier,
// mapping every non-alphanumeric run to a single underscore.
func UpperToken(value string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToUpper(strings.TrimSpace(value)) {
		switch {
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case !underscore:
			b.WriteRune('_')
			underscore = true
		}
	}
	return b.String()
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
