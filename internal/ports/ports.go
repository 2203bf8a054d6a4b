package ports

import (
	"context"

	"SentimentScanner/internal/domain"
)

// ArticleSource pulls articles from every configured adapter. The outer slice is
// ordered by adapter priority, never by completion order.
type ArticleSource interface {
	FetchAll(ctx context.Context) ([][]domain.Article, error)
}

// Classifier is the external tri-class sentiment model.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.ClassScore, error)
}

// ReportSink persists the finished report document.
type ReportSink interface {
	Write(ctx context.Context, report domain.Report) error
}

// Notifier streams the run digest to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scorer annotates merged articles with sentiment, preserving input order.
type Scorer interface {
	Score(ctx context.Context, articles []domain.Article) []domain.Article
}
