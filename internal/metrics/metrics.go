// Package metrics records per-run pipeline counters in a Prometheus registry.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "sentimentscanner"

// Recorder owns a private registry so every run (and every test) starts from zero.
// All methods are safe to call on a nil Recorder.
type Recorder struct {
	registry *prometheus.Registry

	fetched          *prometheus.CounterVec
	fetchErrors      *prometheus.CounterVec
	classifyFailures prometheus.Counter
	classifyDuration prometheus.Histogram
	merged           prometheus.Gauge
	overall          prometheus.Gauge
	lastSuccess      prometheus.Gauge
}

// New registers all pipeline collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_fetched_total",
			Help:      "Articles kept per adapter after filtering",
		}, []string{"adapter"}),
		fetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed fetch requests per adapter",
		}, []string{"adapter"}),
		classifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_failures_total",
			Help:      "Articles defaulted to neutral after a classifier error",
		}),
		classifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Latency of classifier calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		merged: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "articles_merged",
			Help:      "Unique articles after cross-source deduplication",
		}),
		overall: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overall_sentiment",
			Help:      "Mean sentiment score of the last run",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFetch adds the number of articles an adapter contributed.
func (r *Recorder) ObserveFetch(adapter string, count int) {
	if r == nil {
		return
	}
	r.fetched.WithLabelValues(adapter).Add(float64(count))
}

// FetchFailed counts one failed request for adapter.
func (r *Recorder) FetchFailed(adapter string) {
	if r == nil {
		return
	}
	r.fetchErrors.WithLabelValues(adapter).Inc()
}

// ObserveClassification records a classifier call and whether it failed.
func (r *Recorder) ObserveClassification(elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.classifyDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.classifyFailures.Inc()
	}
}

// SetMerged records the deduplicated article count.
func (r *Recorder) SetMerged(n int) {
	if r == nil {
		return
	}
	r.merged.Set(float64(n))
}

// RunCompleted stamps the overall score and completion time.
func (r *Recorder) RunCompleted(overall float64, at time.Time) {
	if r == nil {
		return
	}
	r.overall.Set(overall)
	r.lastSuccess.Set(float64(at.Unix()))
}

// Pusher sends a recorder's registry to a Prometheus Pushgateway once per run.
type Pusher struct {
	url string
	job string
}

// NewPusher returns nil when url is empty so callers can skip pushing.
func NewPusher(url, job string) *Pusher {
	if url == "" {
		return nil
	}
	if job == "" {
		job = namespace
	}
	return &Pusher{url: url, job: job}
}

// Push replaces the job's metric group on the gateway.
func (p *Pusher) Push(ctx context.Context, r *Recorder) error {
	if p == nil || r == nil {
		return nil
	}
	if err := push.New(p.url, p.job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
