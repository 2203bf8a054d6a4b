package domain

import "time"

// DailyStat is the per-calendar-date rollup of scored articles.
type DailyStat struct {
	Date          string  `json:"date"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	ArticleCount  int     `json:"article_count"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	NeutralCount  int     `json:"neutral_count"`
	MovingAvg     float64 `json:"moving_avg"`
}

// SourceStat is a leaderboard row for a single publisher.
type SourceStat struct {
	SourceName     string  `json:"source_name"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	ArticleCount   int     `json:"article_count"`
	SentimentLabel Label   `json:"sentiment_label"`
}

// Report is the document handed to the sink. Field names are consumed by the
// presentation layer and must stay stable.
type Report struct {
	GeneratedAt      time.Time    `json:"generated_at"`
	TotalArticles    int          `json:"total_articles"`
	OverallSentiment float64      `json:"overall_sentiment"`
	OverallLabel     Label        `json:"overall_label"`
	DailyStats       []DailyStat  `json:"daily_stats"`
	SourceStats      []SourceStat `json:"source_stats"`
	Articles         []Article    `json:"articles"`
}
