package textutil

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SummaryLimit is the rune ceiling applied to summaries at ingestion.
const SummaryLimit = 200

var strict = bluemonday.StrictPolicy()

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// PlainText strips markup from feed-provided HTML and collapses whitespace.
func PlainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	text := html.UnescapeString(strict.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// Summary is PlainText truncated to SummaryLimit.
func Summary(raw string) string {
	return Truncate(PlainText(raw), SummaryLimit)
}
