package pipeline

import (
	"regexp"
	"strings"
)

// h1Pattern matches an ATX level-1 heading line.
var h1Pattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// ExtractTitle returns the text of the first level-1 heading in markdown,
// or fallback when there is none.
func ExtractTitle(markdown, fallback string) string {
	m := h1Pattern.FindStringSubmatch(markdown)
	if m == nil {
		return fallback
	}
	// Closing hashes are optional ATX syntax.
	title := strings.TrimSpace(m[1])
	title = strings.TrimSpace(strings.TrimRight(title, "#"))
	if title == "" {
		return fallback
	}
	return title
}
