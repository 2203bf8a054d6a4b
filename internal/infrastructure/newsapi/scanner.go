package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/scanner"
	"SentimentScanner/internal/textutil"
)

const (
	name           = "newsapi"
	unknownSource  = "Unknown"
	dayLayout      = "2006-01-02"
	maxErrorBody   = 1024
	defaultTimeout = 30 * time.Second
)

// Scanner runs one keyword search per configured query over a trailing window.
type Scanner struct {
	endpoint   string
	apiKey     string
	queries    []string
	windowDays int
	pageSize   int
	language   string

	client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

var _ scanner.Scanner = (*Scanner)(nil)

type response struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// NewScanner wires an HTTP client; a nil client gets the configured timeout.
func NewScanner(cfg config.NewsAPIConfig, client *http.Client, log *slog.Logger, rec *metrics.Recorder) *Scanner {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}

	return &Scanner{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		queries:    cfg.Queries,
		windowDays: cfg.WindowDays,
		pageSize:   cfg.PageSize,
		language:   cfg.Language,
		client:     client,
		limiter:    rate.NewLimiter(limit, 1),
		now:        time.Now,
		logger:     log,
		metrics:    rec,
	}
}

// Name identifies the adapter inside the registry.
func (s *Scanner) Name() string {
	return name
}

// Scan queries sequentially. A failed query is logged and skipped; only a
// cancelled context stops the loop early.
func (s *Scanner) Scan(ctx context.Context) ([]domain.RawArticle, error) {
	to := s.now().UTC()
	from := to.AddDate(0, 0, -s.windowDays)

	var results []domain.RawArticle
	for _, query := range s.queries {
		if err := s.limiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("wait for rate limiter: %w", err)
		}

		articles, err := s.search(ctx, query, from, to)
		if err != nil {
			s.warn("query failed", "query", query, "error", err)
			s.metrics.FetchFailed(name)
			continue
		}

		s.debug("query fetched", "query", query, "count", len(articles))
		for _, a := range articles {
			results = append(results, s.toRaw(a))
		}
	}

	return results, nil
}

func (s *Scanner) search(ctx context.Context, query string, from, to time.Time) ([]apiArticle, error) {
	reqURL, err := buildSearchURL(s.endpoint, query, from, to, s.language, s.pageSize)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("User-Agent", "SentimentScanner/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("newsapi returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s %s", payload.Status, payload.Code, payload.Message)
	}

	return payload.Articles, nil
}

func (s *Scanner) toRaw(a apiArticle) domain.RawArticle {
	source := strings.TrimSpace(a.Source.Name)
	if source == "" {
		source = unknownSource
	}

	publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		publishedAt = s.now()
	}

	return domain.RawArticle{
		Headline:    strings.TrimSpace(a.Title),
		SourceName:  source,
		URL:         a.URL,
		PublishedAt: publishedAt.UTC(),
		Summary:     textutil.Summary(a.Description),
	}
}

func buildSearchURL(base, query string, from, to time.Time, language string, pageSize int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid newsapi endpoint %s: %w", base, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	q.Set("from", from.Format(dayLayout))
	q.Set("to", to.Format(dayLayout))
	q.Set("sortBy", "publishedAt")
	if language != "" {
		q.Set("language", language)
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func (s *Scanner) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Scanner) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
