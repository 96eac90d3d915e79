// Package pipeline turns one load of the event feed and geocode cache into
// the canonical event list.
//
// A load fetches both documents concurrently and waits for both. Records
// are then normalized in feed order: the trailing city suffix is stripped
// from locations, each record gets its identity, missing coordinates are
// resolved from the cache, and the list is sorted by date. A failed feed
// yields an empty list and an error; a failed cache only leaves events
// unplaced.
package pipeline
