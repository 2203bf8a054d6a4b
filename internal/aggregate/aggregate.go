package aggregate

import (
	"sort"

	"SentimentScanner/internal/domain"
)

const (
	// Threshold is the half-width of the neutral band used for rollups. It is
	// wider than the per-article label rule on purpose.
	Threshold = 0.2
	// MovingWindow is the trailing window, in daily rows, of the moving average.
	MovingWindow = 7
	// MinSourceArticles drops sources too small to be meaningful.
	MinSourceArticles = 2
	// SourceLimit caps the source leaderboard.
	SourceLimit = 20

	dateLayout = "2006-01-02"
)

// LabelFor maps an aggregated score to a label with the ±0.2 neutral band.
func LabelFor(score float64) domain.Label {
	switch {
	case score > Threshold:
		return domain.LabelPositive
	case score < -Threshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// Daily groups articles by UTC publication date, oldest date first, with the
// trailing moving average already applied.
func Daily(articles []domain.Article) []domain.DailyStat {
	byDate := map[string][]float64{}
	for _, a := range articles {
		date := a.PublishedAt.UTC().Format(dateLayout)
		byDate[date] = append(byDate[date], a.SentimentScore())
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	stats := make([]domain.DailyStat, 0, len(dates))
	for _, date := range dates {
		scores := byDate[date]
		stat := domain.DailyStat{
			Date:         date,
			AvgSentiment: domain.Round3(mean(scores)),
			ArticleCount: len(scores),
		}
		for _, s := range scores {
			switch LabelFor(s) {
			case domain.LabelPositive:
				stat.PositiveCount++
			case domain.LabelNegative:
				stat.NegativeCount++
			default:
				stat.NeutralCount++
			}
		}
		stats = append(stats, stat)
	}

	MovingAverage(stats, MovingWindow)
	return stats
}

// MovingAverage fills MovingAvg with the mean of AvgSentiment over the last
// min(window, i+1) rows. The first row therefore equals its own average.
func MovingAverage(stats []domain.DailyStat, window int) {
	if window < 1 {
		window = 1
	}
	for i := range stats {
		start := max(0, i+1-window)
		var sum float64
		for _, s := range stats[start : i+1] {
			sum += s.AvgSentiment
		}
		stats[i].MovingAvg = domain.Round3(sum / float64(i+1-start))
	}
}

// Sources builds the per-publisher leaderboard: sources with at least two
// articles, most prolific first, at most twenty rows.
func Sources(articles []domain.Article) []domain.SourceStat {
	order := make([]string, 0)
	bySource := map[string][]float64{}
	for _, a := range articles {
		if _, ok := bySource[a.SourceName]; !ok {
			order = append(order, a.SourceName)
		}
		bySource[a.SourceName] = append(bySource[a.SourceName], a.SentimentScore())
	}

	stats := make([]domain.SourceStat, 0, len(order))
	for _, source := range order {
		scores := bySource[source]
		if len(scores) < MinSourceArticles {
			continue
		}
		avg := mean(scores)
		stats = append(stats, domain.SourceStat{
			SourceName:     source,
			AvgSentiment:   domain.Round3(avg),
			ArticleCount:   len(scores),
			SentimentLabel: LabelFor(avg),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ArticleCount > stats[j].ArticleCount
	})
	if len(stats) > SourceLimit {
		stats = stats[:SourceLimit]
	}
	return stats
}

// Overall is the rounded mean score of all articles (zero when empty) and its label.
func Overall(articles []domain.Article) (float64, domain.Label) {
	if len(articles) == 0 {
		return 0, domain.LabelNeutral
	}
	scores := make([]float64, len(articles))
	for i, a := range articles {
		scores[i] = a.SentimentScore()
	}
	avg := mean(scores)
	return domain.Round3(avg), LabelFor(avg)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
