package rss

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"SentimentScanner/internal/textutil"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "SentimentScanner/1.0"
	titleSeparator   = " - "
)

func newParser(client *http.Client, timeout time.Duration, userAgent string) *gofeed.Parser {
	if client == nil {
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	fp := gofeed.NewParser()
	fp.Client = client
	fp.UserAgent = userAgent
	return fp
}

// publishedAt prefers the publish date, then the update date, then now.
func publishedAt(item *gofeed.Item, now func() time.Time) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	default:
		return now().UTC()
	}
}

// SplitTitle recovers (headline, source) from a "Headline - Source" title,
// splitting on the last separator since headlines may contain " - " too.
// Titles without a separator keep the whole text and the fallback source.
func SplitTitle(title, fallback string) (string, string) {
	idx := strings.LastIndex(title, titleSeparator)
	if idx < 0 {
		return strings.TrimSpace(title), fallback
	}

	headline := strings.TrimSpace(title[:idx])
	source := strings.TrimSpace(title[idx+len(titleSeparator):])
	if source == "" {
		source = fallback
	}
	return headline, source
}

// descriptionText extracts visible text from an HTML description.
func descriptionText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return textutil.Summary(raw)
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	return textutil.Truncate(text, textutil.SummaryLimit)
}
