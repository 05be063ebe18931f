package extract

import "strings"

// SplitName splits a full-name string into first and last components.
// The last whitespace-separated token becomes the last name; everything
// before it, re-joined with single spaces, becomes the first name. A
// single-token name is all first name. No punctuation is stripped.
//
// ok is false only for the empty input, in which case both components
// are empty.
func SplitName(fullName string) (first, last string, ok bool) {
	if fullName == "" {
		return "", "", false
	}
	parts := strings.Fields(fullName)
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
	}
	return fullName, "", true
}
