// Package search finds events by title and location, matching queries
// typed in either the Latin or the Cyrillic alphabet.
package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/translit"
)

const (
	DefaultSuggestions = 6
	DefaultLimit       = 20
)

// Engine evaluates queries against a record list
type Engine struct {
	suggestions int
	limit       int
}

// New creates an Engine. A blank query returns the first suggestions
// records; any other query returns at most limit matches. Non-positive
// values fall back to the defaults.
func New(suggestions, limit int) *Engine {
	if suggestions <= 0 {
		suggestions = DefaultSuggestions
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{suggestions: suggestions, limit: limit}
}

// Search runs a query with the default limits
func Search(events []*event.Event, query string) []*event.Event {
	return New(0, 0).Search(events, query)
}

// Search returns the events whose title or location contains any spelling
// of the query, in input order.
func (s *Engine) Search(events []*event.Event, query string) []*event.Event {
	q := Normalize(query)
	if q == "" {
		return head(events, s.suggestions)
	}

	spellings := translit.Expand(q)

	results := make([]*event.Event, 0)
	for _, e := range events {
		if !matches(haystack(e), spellings) {
			continue
		}
		results = append(results, e)
		if len(results) == s.limit {
			break
		}
	}

	return results
}

// Normalize trims, composes and lowercases text for comparison
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))
}

func haystack(e *event.Event) string {
	return Normalize(e.Title + " " + e.Location)
}

func matches(text string, spellings []string) bool {
	for _, sp := range spellings {
		if strings.Contains(text, sp) {
			return true
		}
	}
	return false
}

func head(events []*event.Event, n int) []*event.Event {
	if len(events) < n {
		n = len(events)
	}
	out := make([]*event.Event, n)
	copy(out, events[:n])
	return out
}
