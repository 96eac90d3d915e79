package timeline

import (
	"sort"
	"time"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

// Section is one day header of the upcoming view and its events
type Section struct {
	Label  string         `json:"label" yaml:"label"`
	Events []*event.Event `json:"events" yaml:"events"`
}

// Partition splits events into upcoming and archived, keeping input order
func Partition(events []*event.Event, now time.Time, today string) (upcoming, archived []*event.Event) {
	upcoming = make([]*event.Event, 0, len(events))
	archived = make([]*event.Event, 0)

	for _, e := range events {
		if Classify(e, now, today) == Archived {
			archived = append(archived, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}

	return upcoming, archived
}

// Group buckets upcoming events under their day label. Sections appear in
// order of first appearance and events keep their input order. Events more
// than a week apart that fall on the same weekday share a section.
func Group(upcoming []*event.Event, today string) []Section {
	sections := make([]Section, 0)
	index := make(map[string]int)

	for _, e := range upcoming {
		label := DayLabel(e.Date, today)
		i, ok := index[label]
		if !ok {
			i = len(sections)
			index[label] = i
			sections = append(sections, Section{Label: label})
		}
		sections[i].Events = append(sections[i].Events, e)
	}

	return sections
}

// Archive returns archived events newest date first. Events on the same
// date keep their input order.
func Archive(archived []*event.Event) []*event.Event {
	out := make([]*event.Event, len(archived))
	copy(out, archived)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// OnDate returns the events dated date, in input order
func OnDate(events []*event.Event, date string) []*event.Event {
	out := make([]*event.Event, 0)
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// DefaultDate picks the date a date selector opens on: today when any event
// is on or after today, otherwise the first event's date. Returns today for
// an empty list.
func DefaultDate(events []*event.Event, today string) string {
	if len(events) == 0 {
		return today
	}
	for _, e := range events {
		if e.Date >= today {
			return today
		}
	}
	return events[0].Date
}

// DateRange returns the earliest and latest event dates
func DateRange(events []*event.Event) (first, last string, ok bool) {
	for _, e := range events {
		if !ok {
			first, last, ok = e.Date, e.Date, true
			continue
		}
		if e.Date < first {
			first = e.Date
		}
		if e.Date > last {
			last = e.Date
		}
	}
	return first, last, ok
}
