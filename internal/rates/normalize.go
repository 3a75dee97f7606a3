package rates

import (
	"regexp"
	"strings"
)

// Policy suffixes booking.com appends to room names; stripped before any
// caller-supplied patterns run.
var policySuffixes = []string{
	"- Non-refundable",
	"- Free Cancellation",
}

// Normalize strips policy suffixes from a raw room name and then applies
// each pattern substitution in order against the progressively rewritten
// string. Matched spans are removed.
func Normalize(raw string, patterns []*regexp.Regexp) string {
	name := raw
	for _, s := range policySuffixes {
		name = strings.ReplaceAll(name, s, "")
	}
	for _, re := range patterns {
		name = re.ReplaceAllString(name, "")
	}
	return name
}

// MatchesFilter reports whether a room name passes the filter. An empty
// filter matches everything; otherwise the name matches when any filter term
// occurs as a substring of the lower-cased, trimmed name. Filter terms are
// expected to be lower-cased and trimmed already (done at config load).
func MatchesFilter(name string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	candidate := strings.TrimSpace(strings.ToLower(name))
	for _, term := range filter {
		if strings.Contains(candidate, term) {
			return true
		}
	}
	return false
}
