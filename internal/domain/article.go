package domain

import "time"

// RawArticle is what a source adapter hands to the filter stage.
type RawArticle struct {
	Headline    string
	SourceName  string
	URL         string
	PublishedAt time.Time
	Summary     string
}

// Label is the discrete sentiment class attached to articles and aggregates.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// Sentiment holds the classifier-derived annotation of an article.
type Sentiment struct {
	Score      float64 `json:"sentiment_score"`
	Label      Label   `json:"sentiment_label"`
	Confidence float64 `json:"confidence"`
}

// NeutralSentiment is the fallback used when classification fails.
func NeutralSentiment() *Sentiment {
	return &Sentiment{Score: 0, Label: LabelNeutral, Confidence: 0}
}

// Article is the canonical, deduplicated unit flowing through scoring and aggregation.
// A nil Sentiment means the article has not been scored yet.
type Article struct {
	Headline    string    `json:"headline"`
	SourceName  string    `json:"source_name"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Summary     string    `json:"-"`
	*Sentiment
}

// NewArticle promotes a filtered raw record to a canonical article.
func NewArticle(raw RawArticle) Article {
	return Article{
		Headline:    raw.Headline,
		SourceName:  raw.SourceName,
		URL:         raw.URL,
		PublishedAt: raw.PublishedAt,
		Summary:     raw.Summary,
	}
}

// Scored reports whether sentiment fields are set.
func (a Article) Scored() bool {
	return a.Sentiment != nil
}

// SentimentScore returns the score or zero for unscored articles.
func (a Article) SentimentScore() float64 {
	if a.Sentiment == nil {
		return 0
	}
	return a.Sentiment.Score
}

// ClassScore is a single class probability returned by the classifier.
type ClassScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
