package aggregate

import (
	"fmt"
	"testing"
	"time"

	"SentimentScanner/internal/domain"
)

func scored(source string, score float64, at time.Time) domain.Article {
	return domain.Article{
		Headline:    fmt.Sprintf("%s %v %s", source, score, at),
		SourceName:  source,
		PublishedAt: at,
		Sentiment:   &domain.Sentiment{Score: score, Label: domain.LabelNeutral},
	}
}

func day(d int) time.Time {
	return time.Date(2025, time.November, d, 9, 30, 0, 0, time.UTC)
}

func TestLabelFor(t *testing.T) {
	t.Parallel()

	cases := map[float64]domain.Label{
		0.21:  domain.LabelPositive,
		0.2:   domain.LabelNeutral,
		0:     domain.LabelNeutral,
		-0.2:  domain.LabelNeutral,
		-0.21: domain.LabelNegative,
	}
	for score, want := range cases {
		if got := LabelFor(score); got != want {
			t.Fatalf("LabelFor(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestThreeArticlesSameDay(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		scored("Reuters", 0.5, day(8)),
		scored("Reuters", -0.5, day(8).Add(time.Hour)),
		scored("CNBC", 0.1, day(8).Add(2*time.Hour)),
	}

	daily := Daily(articles)
	if len(daily) != 1 {
		t.Fatalf("expected one date, got %d", len(daily))
	}

	d := daily[0]
	if d.Date != "2025-11-08" {
		t.Fatalf("unexpected date %s", d.Date)
	}
	if d.AvgSentiment != 0.033 {
		t.Fatalf("expected avg 0.033, got %v", d.AvgSentiment)
	}
	if d.PositiveCount != 1 || d.NegativeCount != 1 || d.NeutralCount != 1 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if d.MovingAvg != d.AvgSentiment {
		t.Fatalf("first moving average must equal the day's average: %+v", d)
	}

	overall, label := Overall(articles)
	if overall != 0.033 || label != domain.LabelNeutral {
		t.Fatalf("unexpected overall: %v %s", overall, label)
	}
}

func TestDailyCountsAndOrdering(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		scored("A", 0.9, day(10)),
		scored("A", -0.3, day(8)),
		scored("A", 0.2, day(9)),
		scored("A", -0.2, day(9)),
		{Headline: "unscored", SourceName: "B", PublishedAt: day(9)},
	}

	daily := Daily(articles)
	if len(daily) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(daily))
	}
	for i := 1; i < len(daily); i++ {
		if daily[i-1].Date >= daily[i].Date {
			t.Fatalf("dates not ascending: %s then %s", daily[i-1].Date, daily[i].Date)
		}
	}
	for _, d := range daily {
		if d.ArticleCount != d.PositiveCount+d.NegativeCount+d.NeutralCount {
			t.Fatalf("count invariant broken: %+v", d)
		}
	}
	if daily[1].NeutralCount != 3 {
		t.Fatalf("boundary scores should be neutral: %+v", daily[1])
	}
}

func TestDailyUsesUTCDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2025, time.November, 9, 3, 0, 0, 0, loc)

	daily := Daily([]domain.Article{scored("A", 0.1, local)})
	if daily[0].Date != "2025-11-08" {
		t.Fatalf("expected UTC date 2025-11-08, got %s", daily[0].Date)
	}
}

func TestMovingAverageWindow(t *testing.T) {
	t.Parallel()

	stats := make([]domain.DailyStat, 9)
	for i := range stats {
		stats[i].AvgSentiment = float64(i + 1)
	}

	MovingAverage(stats, 7)

	want := []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6}
	for i, w := range want {
		if stats[i].MovingAvg != w {
			t.Fatalf("row %d: got %v, want %v", i, stats[i].MovingAvg, w)
		}
	}
}

func TestSourcesFiltersSortsAndCaps(t *testing.T) {
	t.Parallel()

	var articles []domain.Article
	articles = append(articles, scored("Solo", 0.9, day(8)))
	for i := 0; i < 25; i++ {
		source := fmt.Sprintf("Source %02d", i)
		for j := 0; j <= i%4+1; j++ {
			articles = append(articles, scored(source, 0.3, day(8)))
		}
	}

	stats := Sources(articles)
	if len(stats) > SourceLimit {
		t.Fatalf("expected at most %d sources, got %d", SourceLimit, len(stats))
	}
	for i, s := range stats {
		if s.SourceName == "Solo" {
			t.Fatalf("single-article source must be excluded")
		}
		if s.ArticleCount < MinSourceArticles {
			t.Fatalf("source with %d articles included", s.ArticleCount)
		}
		if i > 0 && stats[i-1].ArticleCount < s.ArticleCount {
			t.Fatalf("not sorted by count desc at %d", i)
		}
		if s.SentimentLabel != domain.LabelPositive {
			t.Fatalf("expected positive label for 0.3 average, got %s", s.SentimentLabel)
		}
	}
}

func TestOverallEmpty(t *testing.T) {
	t.Parallel()

	score, label := Overall(nil)
	if score != 0 || label != domain.LabelNeutral {
		t.Fatalf("unexpected empty overall: %v %s", score, label)
	}
}
