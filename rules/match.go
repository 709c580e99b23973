package rules

import "strings"

// containsFold reports whether substr occurs in s, ignoring case. An empty
// merchant never matches a non-empty pattern, so rows with a missing
// description fall through without special handling.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
