package resolve

import (
	"regexp"
	"strings"
)

// slugPattern matches the canonical item path the redirect points at:
// /items/<id>-<slug>.
var slugPattern = regexp.MustCompile(`/items/\d+-([^?#]*)`)

// ExtractKeywords turns a redirect Location value into search keywords by
// pulling the slug out of the item path and restoring its word separators.
// An empty string means "no keywords available", never an error.
func ExtractKeywords(redirectLocation string) string {
	m := slugPattern.FindStringSubmatch(redirectLocation)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(m[1], "-", " "))
}
