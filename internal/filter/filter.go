// Package filter narrows the canonical event list by date range, weekday,
// venue, title and placement.
//
// All criteria combine with AND; within Venues and Titles any one substring
// is enough. Dates are ISO YYYY-MM-DD strings compared lexically, which
// orders them chronologically.
//
// Example usage:
//
//	// Weekend events in March at the Kaliningrad cathedral
//	from, to, _ := filter.ParseDateRange("2025-03", today)
//	f := filter.NewFilter()
//	f.DateFrom, f.DateTo = from, to
//	f.WeekendsOnly = true
//	f.Venues = []string{"собор"}
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Inclusive ISO date bounds; empty means unbounded
	DateFrom string `json:"date_from,omitempty" yaml:"date_from,omitempty" mapstructure:"date_from"`
	DateTo   string `json:"date_to,omitempty" yaml:"date_to,omitempty" mapstructure:"date_to"`

	// Saturday and Sunday only
	WeekendsOnly bool `json:"weekends_only,omitempty" yaml:"weekends_only,omitempty" mapstructure:"weekends_only"`

	// Only events with coordinates
	PlacedOnly bool `json:"placed_only,omitempty" yaml:"placed_only,omitempty" mapstructure:"placed_only"`

	// Case-insensitive substrings of the location
	Venues []string `json:"venues,omitempty" yaml:"venues,omitempty" mapstructure:"venues"`

	// Case-insensitive substrings of the title
	Titles []string `json:"titles,omitempty" yaml:"titles,omitempty" mapstructure:"titles"`
}

// NewFilter creates an empty filter that matches every event
func NewFilter() *Filter {
	return &Filter{
		Venues: []string{},
		Titles: []string{},
	}
}

// IsEmpty reports whether the filter has no active criteria
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == "" &&
		f.DateTo == "" &&
		!f.WeekendsOnly &&
		!f.PlacedOnly &&
		len(f.Venues) == 0 &&
		len(f.Titles) == 0
}

// Matches checks if an event passes all active criteria.
// An event whose date does not parse fails the weekend check.
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != "" && evt.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && evt.Date > f.DateTo {
		return false
	}

	if f.WeekendsOnly {
		day, ok := event.Weekday(evt.Date)
		if !ok || (day != time.Saturday && day != time.Sunday) {
			return false
		}
	}

	if f.PlacedOnly && !evt.HasCoordinates() {
		return false
	}

	if len(f.Venues) > 0 && !containsAny(evt.Location, f.Venues) {
		return false
	}

	if len(f.Titles) > 0 && !containsAny(evt.Title, f.Titles) {
		return false
	}

	return true
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// Apply returns the events matching the filter, in input order.
// An empty filter returns the input slice itself.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := make([]*event.Event, 0)
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "From: 01.03.2025 | To: 31.03.2025 | Venues: собор | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != "" {
		parts = append(parts, fmt.Sprintf("From: %s", displayDate(f.DateFrom)))
	}

	if f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("To: %s", displayDate(f.DateTo)))
	}

	if len(f.Venues) > 0 {
		parts = append(parts, fmt.Sprintf("Venues: %s", strings.Join(f.Venues, ", ")))
	}

	if len(f.Titles) > 0 {
		parts = append(parts, fmt.Sprintf("Titles: %s", strings.Join(f.Titles, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	if f.PlacedOnly {
		parts = append(parts, "On the map only")
	}

	return strings.Join(parts, " | ")
}

func displayDate(date string) string {
	t := event.ParseDate(date)
	if t.IsZero() {
		return date
	}
	return t.Format("02.01.2006")
}

// Validate checks that the date bounds parse and are in order
func (f *Filter) Validate() error {
	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d != "" && !event.IsValidDate(d) {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return fmt.Errorf("start date %s must not be after end date %s", f.DateFrom, f.DateTo)
	}
	return nil
}

// Clone creates a deep copy of the filter
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
		WeekendsOnly: f.WeekendsOnly,
		PlacedOnly:   f.PlacedOnly,
		Venues:       make([]string, len(f.Venues)),
		Titles:       make([]string, len(f.Titles)),
	}
	copy(clone.Venues, f.Venues)
	copy(clone.Titles, f.Titles)
	return clone
}
