package app

import (
	"context"
	"fmt"
	"log/slog"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/filter"
	"SentimentScanner/internal/infrastructure/huggingface"
	"SentimentScanner/internal/infrastructure/newsapi"
	"SentimentScanner/internal/infrastructure/rss"
	"SentimentScanner/internal/infrastructure/storage"
	"SentimentScanner/internal/infrastructure/telegram"
	"SentimentScanner/internal/logging"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/scanner"
	"SentimentScanner/internal/sentiment"
	"SentimentScanner/internal/usecase"
)

// Options carries per-invocation switches that are not part of the config file.
type Options struct {
	DryRun bool
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds the runnable application: adapters, filters, classifier and sinks.
func New(cfg config.Config, baseLogger *slog.Logger, opts Options) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	rec := metrics.New()

	registry := NewRegistry(cfg, baseLogger, rec)
	source := scanner.NewCollector(
		registry,
		cfg.Sources.Priority,
		filter.NewRejections(cfg.Sources.RemovedMarkers),
		baseLogger.With("component", "collector"),
		rec,
	)

	classifier := huggingface.NewClient(cfg.Classifier, nil)
	scorer := sentiment.NewScorer(classifier, cfg.Classifier.Concurrency, baseLogger.With("component", "scorer"), rec)

	var notifier ports.Notifier
	if n := telegram.NewNotifier(cfg.Notifications.Telegram, nil); n != nil {
		notifier = n
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   source,
		Scorer:   scorer,
		Sink:     storage.NewJSONFileSink(cfg.Output.Path),
		Notifier: notifier,
		Metrics:  rec,
		Pusher:   metrics.NewPusher(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job),
		Logger:   baseLogger.With("component", "pipeline"),
		DryRun:   opts.DryRun,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}
}

// NewRegistry registers every configured adapter with its filter policy.
// Search adapters are gated by the publisher allow-list; topic feeds by keywords.
func NewRegistry(cfg config.Config, baseLogger *slog.Logger, rec *metrics.Recorder) *scanner.Registry {
	if baseLogger == nil {
		baseLogger = slog.New(slog.DiscardHandler)
	}
	allowList := filter.NewAllowList(filter.NewPublisherMatcher(cfg.Sources.FilterPublishers()))

	registry := scanner.NewRegistry()
	registry.Register(
		newsapi.NewScanner(cfg.NewsAPI, nil, baseLogger.With("component", "scanner.newsapi"), rec),
		allowList,
	)
	registry.Register(
		rss.NewGoogleNewsScanner(cfg.GoogleNews, nil, baseLogger.With("component", "scanner.googlenews"), rec),
		allowList,
	)
	for _, feed := range cfg.TopicFeeds {
		if feed.Name == "" || feed.URL == "" {
			baseLogger.Warn("skipping topic feed without name or url", "name", feed.Name)
			continue
		}
		keywords := feed.Keywords
		if len(keywords) == 0 {
			keywords = filter.DefaultKeywords
		}
		registry.Register(
			rss.NewTopicScanner(feed, nil, baseLogger.With("component", "scanner."+feed.Name)),
			filter.NewKeywords(keywords),
		)
	}
	return registry
}

// Run validates configuration and performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) (domain.Report, error) {
	if err := a.cfg.Validate(); err != nil {
		return domain.Report{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if a.pipeline == nil {
		return domain.Report{}, fmt.Errorf("pipeline is not configured")
	}

	a.logger.Info("run started", "output", a.cfg.Output.Path, "priority", a.cfg.Sources.Priority)
	return a.pipeline.Run(ctx)
}
