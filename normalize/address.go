package normalize

import (
	"regexp"
	"strings"
)

var buildingPattern = regexp.MustCompile(`\d{4}`)

// CommentSeparator joins the rice choice and the free-text comment.
const CommentSeparator = " | "

// BuildingNumber returns the first four-digit run in the address, or the
// trimmed address itself when there is none. The result is not validated.
func BuildingNumber(address string) string {
	if m := buildingPattern.FindString(address); m != "" {
		return m
	}
	return strings.TrimSpace(address)
}

// JoinComments joins the non-empty parts with CommentSeparator.
func JoinComments(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, CommentSeparator)
}
