package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByTitle    SortOrder = "title"
	SortByLocation SortOrder = "location"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(name string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(name)))
	switch order {
	case SortByDate, SortByTitle, SortByLocation:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'title' or 'location')", name)
	}
}

// sortEvents sorts events in place. Ties keep the feed order.
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Date < events[j].Date
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			return events[i].Date < events[j].Date
		})
	case SortByLocation:
		sort.SliceStable(events, func(i, j int) bool {
			li, lj := strings.ToLower(events[i].Location), strings.ToLower(events[j].Location)
			if li != lj {
				// unplaced venues last
				if li == "" || lj == "" {
					return lj == ""
				}
				return li < lj
			}
			return events[i].Date < events[j].Date
		})
	}
}
