package world

import (
	"fmt"
	"unicode"
)

// MaxNameLength bounds the length of a stored world name.
const MaxNameLength = 64

// ValidateName checks that name can key a stored world: non-empty, at most
// MaxNameLength bytes, letters, digits, '-', '_' and '.' only.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			continue
		}
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
	}
	return nil
}
