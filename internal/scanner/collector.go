package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/filter"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/textutil"
)

// Collector implements ArticleSource by running registered adapters
// concurrently and filtering each adapter's output with its own policy.
type Collector struct {
	registry   *Registry
	priority   []string
	rejections filter.Rejections
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

var _ ports.ArticleSource = (*Collector)(nil)

// NewCollector wires the registry with the configured adapter priority.
func NewCollector(reg *Registry, priority []string, rejections filter.Rejections, log *slog.Logger, rec *metrics.Recorder) *Collector {
	return &Collector{
		registry:   reg,
		priority:   priority,
		rejections: rejections,
		logger:     log,
		metrics:    rec,
	}
}

// FetchAll returns one article list per adapter, ordered by priority. An
// adapter failure yields an empty list and never affects its siblings.
func (c *Collector) FetchAll(ctx context.Context) ([][]domain.Article, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	entries, unknown := c.registry.Ordered(c.priority)
	if len(unknown) > 0 {
		c.warn("priority names without a registered adapter", "names", strings.Join(unknown, ","))
	}

	c.debug("fetch all", "adapters", len(entries))

	results := make([][]domain.Article, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = c.collect(gctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// collect filters on the full summary text and truncates it afterwards.
func (c *Collector) collect(ctx context.Context, entry Entry) []domain.Article {
	name := entry.Scanner.Name()

	raws, err := entry.Scanner.Scan(ctx)
	if err != nil {
		c.warn("adapter failed", "adapter", name, "error", err)
		c.metrics.FetchFailed(name)
		return []domain.Article{}
	}

	kept := dedupeHeadlines(filter.Apply(raws, c.rejections, entry.Policy))

	articles := make([]domain.Article, 0, len(kept))
	for _, raw := range kept {
		raw.Summary = textutil.Truncate(raw.Summary, textutil.SummaryLimit)
		articles = append(articles, domain.NewArticle(raw))
	}

	c.metrics.ObserveFetch(name, len(articles))
	c.info("adapter produced articles", "adapter", name, "raw", len(raws), "kept", len(articles))
	return articles
}

// dedupeHeadlines drops repeated headlines inside one adapter's output using
// an exact case-folded comparison.
func dedupeHeadlines(raws []domain.RawArticle) []domain.RawArticle {
	seen := map[string]struct{}{}
	out := make([]domain.RawArticle, 0, len(raws))
	for _, raw := range raws {
		key := strings.ToLower(raw.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, raw)
	}
	return out
}

func (c *Collector) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Collector) info(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Collector) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
