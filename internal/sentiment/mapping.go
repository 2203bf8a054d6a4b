package sentiment

import (
	"errors"
	"fmt"
	"strings"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/textutil"
)

const (
	summaryLimit = 200
	textLimit    = 500
)

// ErrMalformedScores is returned when classifier output cannot be mapped.
var ErrMalformedScores = errors.New("malformed classifier scores")

// AnalysisText builds the classifier input: the headline, then ". " and the
// first 200 runes of the summary when present, capped at 500 runes overall.
func AnalysisText(article domain.Article) string {
	text := article.Headline
	if article.Summary != "" {
		text = text + ". " + textutil.Truncate(article.Summary, summaryLimit)
	}
	return textutil.Truncate(text, textLimit)
}

// FromProbabilities maps tri-class probabilities to a signed score, a label
// and a confidence. Missing classes count as zero.
func FromProbabilities(scores []domain.ClassScore) (domain.Sentiment, error) {
	var pos, neg, neu float64
	known := 0

	for _, s := range scores {
		if s.Score < 0 || s.Score > 1 {
			return domain.Sentiment{}, fmt.Errorf("%w: %s probability %v out of range", ErrMalformedScores, s.Label, s.Score)
		}
		switch strings.ToLower(strings.TrimSpace(s.Label)) {
		case "positive":
			pos = s.Score
		case "negative":
			neg = s.Score
		case "neutral":
			neu = s.Score
		default:
			continue
		}
		known++
	}

	if known == 0 {
		return domain.Sentiment{}, fmt.Errorf("%w: no positive/negative/neutral class", ErrMalformedScores)
	}

	label := domain.LabelNeutral
	switch {
	case pos > neg && pos > neu:
		label = domain.LabelPositive
	case neg > pos && neg > neu:
		label = domain.LabelNegative
	}

	return domain.Sentiment{
		Score:      domain.Round3(pos - neg),
		Label:      label,
		Confidence: domain.Round3(max(pos, neg, neu)),
	}, nil
}
