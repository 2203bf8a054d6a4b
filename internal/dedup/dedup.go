package dedup

import (
	"sort"
	"strings"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/textutil"
)

// KeyLength is the number of headline runes that decide article identity.
const KeyLength = 50

// Key is the cross-source identity of an article: its case-folded headline
// prefix. Distinct stories sharing a 50-rune prefix collapse into one.
func Key(headline string) string {
	return textutil.Truncate(strings.ToLower(headline), KeyLength)
}

// Merge flattens per-adapter lists in the given priority order, keeps the first
// occurrence of each Key and returns the survivors newest first.
func Merge(lists [][]domain.Article) []domain.Article {
	seen := map[string]struct{}{}
	merged := make([]domain.Article, 0)

	for _, list := range lists {
		for _, article := range list {
			key := Key(article.Headline)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, article)
		}
	}

	SortNewestFirst(merged)
	return merged
}

// SortNewestFirst orders articles by PublishedAt descending, keeping input
// order for equal timestamps.
func SortNewestFirst(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
