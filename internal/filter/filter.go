package filter

import (
	"strings"

	"SentimentScanner/internal/domain"
)

// DefaultRemovedMarkers flag placeholder records left behind by takedowns.
var DefaultRemovedMarkers = []string{"[Removed]"}

// Policy decides whether an adapter's record is trusted enough to keep.
type Policy interface {
	Accept(raw domain.RawArticle) bool
}

// Rejections are applied to every record regardless of the adapter's policy.
type Rejections struct {
	markers []string
}

// NewRejections builds the base gate; nil markers fall back to DefaultRemovedMarkers.
func NewRejections(markers []string) Rejections {
	if markers == nil {
		markers = DefaultRemovedMarkers
	}
	return Rejections{markers: markers}
}

// Rejected reports whether the record must be dropped before any policy runs.
func (r Rejections) Rejected(raw domain.RawArticle) bool {
	headline := strings.TrimSpace(raw.Headline)
	if headline == "" {
		return true
	}
	for _, marker := range r.markers {
		if marker != "" && strings.Contains(headline, marker) {
			return true
		}
	}
	return false
}

// Apply keeps records that pass both the base rejections and policy.
// A nil policy accepts everything the rejections let through.
func Apply(raws []domain.RawArticle, rejections Rejections, policy Policy) []domain.RawArticle {
	kept := make([]domain.RawArticle, 0, len(raws))
	for _, raw := range raws {
		if rejections.Rejected(raw) {
			continue
		}
		if policy != nil && !policy.Accept(raw) {
			continue
		}
		kept = append(kept, raw)
	}
	return kept
}
