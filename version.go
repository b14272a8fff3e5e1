// Package stackplan provides the version information for stackplan.
package stackplan

// Version is the current version of stackplan.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
