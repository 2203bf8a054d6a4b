package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"SentimentScanner/internal/domain"
)

const (
	summarySources = 5
	sourceColumn   = 28
)

// Summary renders a short plain-text digest of a report for logs and chat.
func Summary(r domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "AI news sentiment, %s\n", r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Articles analyzed: %d\n", r.TotalArticles)
	fmt.Fprintf(&b, "Overall sentiment: %.3f (%s)\n", r.OverallSentiment, r.OverallLabel)

	if len(r.DailyStats) > 0 {
		first, last := r.DailyStats[0], r.DailyStats[len(r.DailyStats)-1]
		fmt.Fprintf(&b, "Date range: %s to %s\n", first.Date, last.Date)
	} else {
		b.WriteString("Date range: N/A\n")
	}

	fmt.Fprintf(&b, "Sources with 2+ articles: %d\n", len(r.SourceStats))
	for i, s := range r.SourceStats {
		if i == summarySources {
			break
		}
		name := runewidth.Truncate(s.SourceName, sourceColumn, "…")
		fmt.Fprintf(&b, "  %s %3d  %+.3f %s\n", runewidth.FillRight(name, sourceColumn), s.ArticleCount, s.AvgSentiment, s.SentimentLabel)
	}

	return strings.TrimRight(b.String(), "\n")
}
