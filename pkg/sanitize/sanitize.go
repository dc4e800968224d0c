package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips markup from a free-text field and collapses whitespace.
func Text(s string) string {
	cleaned := html.UnescapeString(policy.Sanitize(s))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
