package event

import (
	"sort"
	"time"
)

// Snapshot is the ID index of one canonical record set.
// It lives only for the lifetime of the process; nothing is persisted.
type Snapshot struct {
	Events   map[string]*Event
	LoadedAt time.Time
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make(map[string]*Event),
	}
}

// CreateSnapshot indexes a list of events by ID.
// Repeated IDs keep the first event seen.
func CreateSnapshot(events []*Event, loadedAt time.Time) *Snapshot {
	snap := NewSnapshot()
	snap.LoadedAt = loadedAt

	for _, evt := range events {
		if _, exists := snap.Events[evt.ID]; !exists {
			snap.Events[evt.ID] = evt
		}
	}

	return snap
}

// DiffResult contains the results of comparing two feed loads
type DiffResult struct {
	NewEvents     []*Event
	RemovedEvents []*Event
}

// HasChanges reports whether anything was added or removed
func (d *DiffResult) HasChanges() bool {
	return len(d.NewEvents) > 0 || len(d.RemovedEvents) > 0
}

// Diff compares the current events against the previous load.
// A nil previous snapshot treats every current event as new.
func Diff(previous *Snapshot, current []*Event) *DiffResult {
	result := &DiffResult{
		NewEvents:     make([]*Event, 0),
		RemovedEvents: make([]*Event, 0),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	seen := make(map[string]bool, len(current))
	for _, evt := range current {
		if seen[evt.ID] {
			continue
		}
		seen[evt.ID] = true

		if _, exists := previous.Events[evt.ID]; !exists {
			result.NewEvents = append(result.NewEvents, evt)
		}
	}

	for id, evt := range previous.Events {
		if !seen[id] {
			result.RemovedEvents = append(result.RemovedEvents, evt)
		}
	}

	sortByDateTitle(result.NewEvents)
	sortByDateTitle(result.RemovedEvents)

	return result
}

func sortByDateTitle(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Title < events[j].Title
	})
}
