package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/scanner"
	"SentimentScanner/internal/textutil"
)

// TopicScanner reads a single outlet's topical feed. Every entry carries the
// outlet as its source; relevance is decided later by a keyword policy, so
// summaries are returned untruncated and capped by the collector.
type TopicScanner struct {
	name   string
	url    string
	source string

	parser *gofeed.Parser
	now    func() time.Time
	logger *slog.Logger
}

var _ scanner.Scanner = (*TopicScanner)(nil)

// NewTopicScanner builds an adapter for one configured topic feed.
func NewTopicScanner(cfg config.TopicFeedConfig, client *http.Client, log *slog.Logger) *TopicScanner {
	return &TopicScanner{
		name:   cfg.Name,
		url:    cfg.URL,
		source: cfg.Source,
		parser: newParser(client, cfg.Timeout, ""),
		now:    time.Now,
		logger: log,
	}
}

// Name identifies the adapter inside the registry.
func (t *TopicScanner) Name() string {
	return t.name
}

// Scan fetches the feed once.
func (t *TopicScanner) Scan(ctx context.Context) ([]domain.RawArticle, error) {
	feed, err := t.parser.ParseURLWithContext(t.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", t.url, err)
	}

	source := t.source
	if source == "" {
		source = strings.TrimSpace(feed.Title)
	}
	if source == "" {
		source = t.name
	}

	results := make([]domain.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		results = append(results, domain.RawArticle{
			Headline:    strings.TrimSpace(item.Title),
			SourceName:  source,
			URL:         item.Link,
			PublishedAt: publishedAt(item, t.now),
			Summary:     textutil.PlainText(item.Description),
		})
	}

	if t.logger != nil {
		t.logger.Debug("topic feed fetched", "feed", t.name, "entries", len(results))
	}
	return results, nil
}
