package sentiment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"SentimentScanner/internal/domain"
)

func TestAnalysisText(t *testing.T) {
	t.Parallel()

	plain := AnalysisText(domain.Article{Headline: "OpenAI ships"})
	if plain != "OpenAI ships" {
		t.Fatalf("unexpected text without summary: %q", plain)
	}

	withSummary := AnalysisText(domain.Article{Headline: "Head", Summary: strings.Repeat("s", 300)})
	if withSummary != "Head. "+strings.Repeat("s", summaryLimit) {
		t.Fatalf("summary was not capped at %d runes", summaryLimit)
	}

	long := AnalysisText(domain.Article{Headline: strings.Repeat("h", 450), Summary: strings.Repeat("s", 200)})
	if n := len([]rune(long)); n != textLimit {
		t.Fatalf("expected %d runes, got %d", textLimit, n)
	}
}

func TestFromProbabilities(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		scores []domain.ClassScore
		want   domain.Sentiment
	}{
		{
			name:   "positive dominates",
			scores: []domain.ClassScore{{Label: "positive", Score: 0.8}, {Label: "negative", Score: 0.1}, {Label: "neutral", Score: 0.1}},
			want:   domain.Sentiment{Score: 0.7, Label: domain.LabelPositive, Confidence: 0.8},
		},
		{
			name:   "negative dominates",
			scores: []domain.ClassScore{{Label: "Positive", Score: 0.05}, {Label: "NEGATIVE", Score: 0.9}, {Label: "neutral", Score: 0.05}},
			want:   domain.Sentiment{Score: -0.85, Label: domain.LabelNegative, Confidence: 0.9},
		},
		{
			name:   "neutral dominates",
			scores: []domain.ClassScore{{Label: "positive", Score: 0.3}, {Label: "negative", Score: 0.1}, {Label: "neutral", Score: 0.6}},
			want:   domain.Sentiment{Score: 0.2, Label: domain.LabelNeutral, Confidence: 0.6},
		},
		{
			name:   "tie between positive and negative",
			scores: []domain.ClassScore{{Label: "positive", Score: 0.45}, {Label: "negative", Score: 0.45}, {Label: "neutral", Score: 0.1}},
			want:   domain.Sentiment{Score: 0, Label: domain.LabelNeutral, Confidence: 0.45},
		},
		{
			name:   "missing class defaults to zero",
			scores: []domain.ClassScore{{Label: "positive", Score: 0.6}, {Label: "neutral", Score: 0.4}},
			want:   domain.Sentiment{Score: 0.6, Label: domain.LabelPositive, Confidence: 0.6},
		},
		{
			name:   "rounds to three decimals",
			scores: []domain.ClassScore{{Label: "positive", Score: 0.12345}, {Label: "negative", Score: 0.00011}, {Label: "neutral", Score: 0.87644}},
			want:   domain.Sentiment{Score: 0.123, Label: domain.LabelNeutral, Confidence: 0.876},
		},
	}

	for _, tc := range cases {
		got, err := FromProbabilities(tc.scores)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
		if got.Score < -1 || got.Score > 1 || got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("%s: values out of range: %+v", tc.name, got)
		}
	}
}

func TestFromProbabilitiesMalformed(t *testing.T) {
	t.Parallel()

	inputs := [][]domain.ClassScore{
		nil,
		{{Label: "joy", Score: 0.9}},
		{{Label: "positive", Score: 1.4}},
		{{Label: "negative", Score: -0.1}},
	}
	for _, in := range inputs {
		if _, err := FromProbabilities(in); !errors.Is(err, ErrMalformedScores) {
			t.Fatalf("expected ErrMalformedScores for %+v, got %v", in, err)
		}
	}
}

type fakeClassifier struct {
	calls atomic.Int32
}

func (f *fakeClassifier) Classify(_ context.Context, text string) ([]domain.ClassScore, error) {
	f.calls.Add(1)
	switch {
	case strings.HasPrefix(text, "fail"):
		return nil, errors.New("rate limited")
	case strings.HasPrefix(text, "slow"):
		time.Sleep(20 * time.Millisecond)
		return []domain.ClassScore{{Label: "positive", Score: 0.9}, {Label: "negative", Score: 0.05}, {Label: "neutral", Score: 0.05}}, nil
	case strings.HasPrefix(text, "bad"):
		return []domain.ClassScore{{Label: "positive", Score: 7}}, nil
	default:
		return []domain.ClassScore{{Label: "positive", Score: 0.1}, {Label: "negative", Score: 0.7}, {Label: "neutral", Score: 0.2}}, nil
	}
}

func TestScorerKeepsOrderAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		{Headline: "slow one"},
		{Headline: "fail two"},
		{Headline: "plain three"},
		{Headline: "bad four"},
		{Headline: "slow five"},
	}

	classifier := &fakeClassifier{}
	scored := NewScorer(classifier, 3, nil, nil).Score(context.Background(), articles)

	if int(classifier.calls.Load()) != len(articles) {
		t.Fatalf("expected one call per article, got %d", classifier.calls.Load())
	}
	if len(scored) != len(articles) {
		t.Fatalf("expected %d articles, got %d", len(articles), len(scored))
	}

	for i, a := range scored {
		if a.Headline != articles[i].Headline {
			t.Fatalf("order changed at %d: %s", i, a.Headline)
		}
		if !a.Scored() {
			t.Fatalf("article %d left unscored", i)
		}
	}

	if scored[0].Label != domain.LabelPositive || scored[4].Label != domain.LabelPositive {
		t.Fatalf("slow articles should be positive: %+v %+v", scored[0].Sentiment, scored[4].Sentiment)
	}
	if *scored[1].Sentiment != *domain.NeutralSentiment() {
		t.Fatalf("failed article should be neutral default, got %+v", scored[1].Sentiment)
	}
	if *scored[3].Sentiment != *domain.NeutralSentiment() {
		t.Fatalf("malformed article should be neutral default, got %+v", scored[3].Sentiment)
	}
	if scored[2].Label != domain.LabelNegative || scored[2].Score != -0.6 {
		t.Fatalf("unexpected plain sentiment: %+v", scored[2].Sentiment)
	}

	if articles[0].Sentiment != nil {
		t.Fatalf("input slice must not be mutated")
	}
}
