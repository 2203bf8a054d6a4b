package filter

import (
	"strings"

	"SentimentScanner/internal/domain"
)

// DefaultKeywords scope single-outlet feeds to AI coverage.
var DefaultKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "chatgpt", "openai",
	"gpt", "llm", "neural", "deep learning", "generative", "gemini", "claude",
	"anthropic", "microsoft copilot", "meta ai", "google ai",
}

// Keywords admits records mentioning any keyword in headline or summary.
// Matching is a case-insensitive substring test.
type Keywords struct {
	words []string
}

var _ Policy = Keywords{}

// NewKeywords folds keywords once; blank entries are dropped.
func NewKeywords(words []string) Keywords {
	folded := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			folded = append(folded, w)
		}
	}
	return Keywords{words: folded}
}

// Accept implements Policy.
func (k Keywords) Accept(raw domain.RawArticle) bool {
	return k.Contains(raw.Headline) || k.Contains(raw.Summary)
}

// Contains reports whether text mentions any keyword.
func (k Keywords) Contains(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range k.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
