package world

import "strings"

// Describe renders an object as a definite noun phrase, e.g. "the large white ball".
func Describe(o Object) string {
	if o.IsFloor() {
		return "the floor"
	}
	parts := []string{"the"}
	if o.Size != "" {
		parts = append(parts, string(o.Size))
	}
	if o.Color != "" {
		parts = append(parts, o.Color)
	}
	parts = append(parts, string(o.Form))
	return strings.Join(parts, " ")
}
