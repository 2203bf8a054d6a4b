package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/scanner"
)

const googleNewsName = "googlenews"

// GoogleNewsScanner reads search feeds whose titles encode the publisher as a
// " - Source" suffix.
type GoogleNewsScanner struct {
	endpoint      string
	queries       []string
	maxEntries    int
	defaultSource string

	parser  *gofeed.Parser
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

var _ scanner.Scanner = (*GoogleNewsScanner)(nil)

// NewGoogleNewsScanner wires a feed parser with a browser-like user agent.
func NewGoogleNewsScanner(cfg config.GoogleNewsConfig, client *http.Client, log *slog.Logger, rec *metrics.Recorder) *GoogleNewsScanner {
	return &GoogleNewsScanner{
		endpoint:      cfg.Endpoint,
		queries:       cfg.Queries,
		maxEntries:    cfg.MaxEntries,
		defaultSource: cfg.DefaultSource,
		parser:        newParser(client, cfg.Timeout, cfg.UserAgent),
		now:           time.Now,
		logger:        log,
		metrics:       rec,
	}
}

// Name identifies the adapter inside the registry.
func (g *GoogleNewsScanner) Name() string {
	return googleNewsName
}

// Scan fetches one feed per query; a failing feed is logged and skipped.
func (g *GoogleNewsScanner) Scan(ctx context.Context) ([]domain.RawArticle, error) {
	var results []domain.RawArticle

	for _, query := range g.queries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		feedURL, err := buildSearchURL(g.endpoint, query)
		if err != nil {
			return nil, err
		}

		feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			g.warn("feed failed", "query", query, "error", err)
			g.metrics.FetchFailed(googleNewsName)
			continue
		}

		items := feed.Items
		if g.maxEntries > 0 && len(items) > g.maxEntries {
			items = items[:g.maxEntries]
		}

		g.debug("feed fetched", "query", query, "entries", len(feed.Items), "inspected", len(items))
		for _, item := range items {
			results = append(results, g.toRaw(item))
		}
	}

	return results, nil
}

func (g *GoogleNewsScanner) toRaw(item *gofeed.Item) domain.RawArticle {
	headline, source := SplitTitle(item.Title, g.defaultSource)
	return domain.RawArticle{
		Headline:    headline,
		SourceName:  source,
		URL:         item.Link,
		PublishedAt: publishedAt(item, g.now),
		Summary:     descriptionText(item.Description),
	}
}

func buildSearchURL(base, query string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid google news endpoint %s: %w", base, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func (g *GoogleNewsScanner) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *GoogleNewsScanner) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
