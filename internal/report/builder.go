package report

import (
	"time"

	"SentimentScanner/internal/aggregate"
	"SentimentScanner/internal/dedup"
	"SentimentScanner/internal/domain"
)

// ArticleLimit caps the article list in the report.
const ArticleLimit = 100

// Build assembles the report document. Unscored articles get the neutral
// default so every emitted article carries sentiment fields.
func Build(now time.Time, articles []domain.Article) domain.Report {
	all := make([]domain.Article, len(articles))
	for i, a := range articles {
		if a.Sentiment == nil {
			a.Sentiment = domain.NeutralSentiment()
		}
		all[i] = a
	}

	overall, label := aggregate.Overall(all)

	latest := make([]domain.Article, len(all))
	copy(latest, all)
	dedup.SortNewestFirst(latest)
	if len(latest) > ArticleLimit {
		latest = latest[:ArticleLimit]
	}

	return domain.Report{
		GeneratedAt:      now,
		TotalArticles:    len(all),
		OverallSentiment: overall,
		OverallLabel:     label,
		DailyStats:       aggregate.Daily(all),
		SourceStats:      aggregate.Sources(all),
		Articles:         latest,
	}
}
