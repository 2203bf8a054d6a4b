package sentiment

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/ports"
)

const (
	defaultConcurrency = 4
	progressEvery      = 20
)

// Scorer annotates articles with classifier-derived sentiment.
type Scorer struct {
	classifier  ports.Classifier
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

var _ ports.Scorer = (*Scorer)(nil)

// NewScorer wires the classifier; concurrency below 1 falls back to 4.
func NewScorer(classifier ports.Classifier, concurrency int, log *slog.Logger, rec *metrics.Recorder) *Scorer {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Scorer{
		classifier:  classifier,
		concurrency: concurrency,
		logger:      log,
		metrics:     rec,
	}
}

// Score classifies every article once. The returned slice has the input order;
// articles whose classification fails carry the neutral default.
func (s *Scorer) Score(ctx context.Context, articles []domain.Article) []domain.Article {
	scored := make([]domain.Article, len(articles))
	copy(scored, articles)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range scored {
		g.Go(func() error {
			scored[i].Sentiment = s.scoreOne(gctx, scored[i])
			if n := done.Add(1); n%progressEvery == 0 {
				s.info("classification progress", "processed", n, "total", len(scored))
			}
			return nil
		})
	}
	_ = g.Wait()

	return scored
}

func (s *Scorer) scoreOne(ctx context.Context, article domain.Article) *domain.Sentiment {
	if s.classifier == nil {
		return domain.NeutralSentiment()
	}

	started := time.Now()
	scores, err := s.classifier.Classify(ctx, AnalysisText(article))
	var result domain.Sentiment
	if err == nil {
		result, err = FromProbabilities(scores)
	}
	s.metrics.ObserveClassification(time.Since(started), err)

	if err != nil {
		s.warn("classification failed, defaulting to neutral", "headline", article.Headline, "error", err)
		return domain.NeutralSentiment()
	}
	return &result
}

func (s *Scorer) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Scorer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
