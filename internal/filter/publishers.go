package filter

import (
	"strings"

	"SentimentScanner/internal/domain"
)

// Publisher is a canonical outlet name plus the variants feeds use for it.
type Publisher struct {
	Name    string
	Aliases []string
}

// DefaultPublishers is the curated allow-list of global news and tech outlets.
var DefaultPublishers = []Publisher{
	{Name: "Reuters"},
	{Name: "Associated Press", Aliases: []string{"AP News"}},
	{Name: "BBC News", Aliases: []string{"BBC"}},
	{Name: "The New York Times", Aliases: []string{"New York Times"}},
	{Name: "The Washington Post", Aliases: []string{"Washington Post"}},
	{Name: "The Guardian", Aliases: []string{"Guardian"}},
	{Name: "Bloomberg", Aliases: []string{"Bloomberg.com"}},
	{Name: "Financial Times"},
	{Name: "CNBC"},
	{Name: "CNN"},
	{Name: "The Wall Street Journal", Aliases: []string{"Wall Street Journal", "WSJ"}},
	{Name: "TechCrunch"},
	{Name: "The Verge"},
	{Name: "Wired"},
	{Name: "Ars Technica"},
}

type alias struct {
	canonical string
	folded    string
}

// PublisherMatcher fuzzy-matches source names against canonicalized aliases:
// a source matches when it contains an alias or an alias contains it, ignoring case.
type PublisherMatcher struct {
	aliases []alias
}

// NewPublisherMatcher folds every name and alias once up front.
func NewPublisherMatcher(publishers []Publisher) *PublisherMatcher {
	m := &PublisherMatcher{}
	for _, p := range publishers {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		m.add(name, name)
		for _, a := range p.Aliases {
			m.add(name, a)
		}
	}
	return m
}

func (m *PublisherMatcher) add(canonical, variant string) {
	folded := strings.ToLower(strings.TrimSpace(variant))
	if folded == "" {
		return
	}
	for _, existing := range m.aliases {
		if existing.folded == folded {
			return
		}
	}
	m.aliases = append(m.aliases, alias{canonical: canonical, folded: folded})
}

// Match returns the canonical publisher for source, if any.
func (m *PublisherMatcher) Match(source string) (string, bool) {
	folded := strings.ToLower(strings.TrimSpace(source))
	if folded == "" || m == nil {
		return "", false
	}
	for _, a := range m.aliases {
		if strings.Contains(folded, a.folded) || strings.Contains(a.folded, folded) {
			return a.canonical, true
		}
	}
	return "", false
}

// AllowList admits records whose source matches a curated publisher.
type AllowList struct {
	matcher *PublisherMatcher
}

var _ Policy = AllowList{}

// NewAllowList wraps a matcher as a filter policy.
func NewAllowList(matcher *PublisherMatcher) AllowList {
	return AllowList{matcher: matcher}
}

// Accept implements Policy.
func (a AllowList) Accept(raw domain.RawArticle) bool {
	_, ok := a.matcher.Match(raw.SourceName)
	return ok
}
