package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"SentimentScanner/internal/dedup"
	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/metrics"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/report"
)

// ErrNoSource is returned when the pipeline is run without an article source.
var ErrNoSource = errors.New("pipeline has no article source")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.ArticleSource
	Scorer   ports.Scorer
	Sink     ports.ReportSink
	Notifier ports.Notifier
	Metrics  *metrics.Recorder
	Pusher   *metrics.Pusher
	Logger   *slog.Logger
	Now      func() time.Time
	DryRun   bool
}

// Pipeline implements the fetch, merge, score, aggregate and publish workflow.
type Pipeline struct {
	source   ports.ArticleSource
	scorer   ports.Scorer
	sink     ports.ReportSink
	notifier ports.Notifier
	metrics  *metrics.Recorder
	pusher   *metrics.Pusher
	logger   *slog.Logger
	now      func() time.Time
	dryRun   bool
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		source:   deps.Source,
		scorer:   deps.Scorer,
		sink:     deps.Sink,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		pusher:   deps.Pusher,
		logger:   deps.Logger,
		now:      now,
		dryRun:   deps.DryRun,
	}
}

// Run executes one batch. Only source and sink failures abort the run;
// notification and metrics push problems are logged.
func (p *Pipeline) Run(ctx context.Context) (domain.Report, error) {
	if p.source == nil {
		return domain.Report{}, ErrNoSource
	}

	lists, err := p.source.FetchAll(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("fetch articles: %w", err)
	}

	merged := dedup.Merge(lists)
	p.metrics.SetMerged(len(merged))
	p.info("articles merged", "adapters", len(lists), "unique", len(merged))

	if len(merged) == 0 {
		p.warn("no articles collected, writing empty report")
	}

	scored := merged
	if p.scorer != nil && len(merged) > 0 {
		scored = p.scorer.Score(ctx, merged)
	}
	if err := ctx.Err(); err != nil {
		return domain.Report{}, fmt.Errorf("score articles: %w", err)
	}

	rep := report.Build(p.now(), scored)

	if p.dryRun {
		p.info("dry run, report not written", "articles", rep.TotalArticles)
	} else if p.sink != nil {
		if err := p.sink.Write(ctx, rep); err != nil {
			return rep, fmt.Errorf("write report: %w", err)
		}
	}

	p.metrics.RunCompleted(rep.OverallSentiment, rep.GeneratedAt)

	digest := report.Summary(rep)
	p.info("run complete",
		"articles", rep.TotalArticles,
		"overall_sentiment", rep.OverallSentiment,
		"overall_label", rep.OverallLabel,
		"days", len(rep.DailyStats),
		"sources", len(rep.SourceStats))
	p.debug("run summary\n" + digest)

	if p.notifier != nil && !p.dryRun {
		if err := p.notifier.PublishDigest(ctx, digest); err != nil {
			p.warn("publish digest failed", "error", err)
		}
	}

	if err := p.pusher.Push(ctx, p.metrics); err != nil {
		p.warn("metrics push failed", "error", err)
	}

	return rep, nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
