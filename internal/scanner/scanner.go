package scanner

import (
	"context"
	"fmt"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/filter"
)

// Scanner captures a single source adapter (NewsAPI, Google News, a topic feed).
type Scanner interface {
	Name() string
	Scan(ctx context.Context) ([]domain.RawArticle, error)
}

// Entry pairs an adapter with the filter policy matching its trust model.
type Entry struct {
	Scanner Scanner
	Policy  filter.Policy
}

// Registry keeps adapters in registration order, addressable by name.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Register adds or replaces an adapter together with its policy.
func (r *Registry) Register(s Scanner, policy filter.Policy) {
	if r.index == nil {
		r.index = map[string]int{}
	}
	entry := Entry{Scanner: s, Policy: policy}
	if i, ok := r.index[s.Name()]; ok {
		r.entries[i] = entry
		return
	}
	r.index[s.Name()] = len(r.entries)
	r.entries = append(r.entries, entry)
}

// Resolve returns an adapter entry by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Entry, error) {
	if i, ok := r.index[name]; ok {
		return r.entries[i], nil
	}
	return Entry{}, fmt.Errorf("scanner %s is not registered", name)
}

// Ordered returns entries ranked by priority: named adapters first in the
// given order, then the rest in registration order. Unknown names are
// returned separately so the caller can report them.
func (r *Registry) Ordered(priority []string) ([]Entry, []string) {
	ordered := make([]Entry, 0, len(r.entries))
	placed := map[string]bool{}
	var unknown []string

	for _, name := range priority {
		if placed[name] {
			continue
		}
		entry, err := r.Resolve(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		placed[name] = true
		ordered = append(ordered, entry)
	}

	for _, entry := range r.entries {
		if !placed[entry.Scanner.Name()] {
			ordered = append(ordered, entry)
		}
	}

	return ordered, unknown
}
