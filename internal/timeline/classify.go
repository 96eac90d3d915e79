package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/timewindow"
)

// Status is the temporal class of an event
type Status int

const (
	Upcoming Status = iota
	Archived
)

func (s Status) String() string {
	switch s {
	case Upcoming:
		return "upcoming"
	case Archived:
		return "archived"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Today returns the ISO date of now in now's location
func Today(now time.Time) string {
	return event.DateIn(now)
}

// EndInstant returns the moment a timed event ends, built in loc. An end
// hour before the start hour means the event runs past midnight and ends on
// the following day. ok is false when the description has no end time.
func EndInstant(e *event.Event, loc *time.Location) (time.Time, bool) {
	w := timewindow.Extract(e.Text)
	if w == nil || !w.HasEnd {
		return time.Time{}, false
	}

	date := e.Date
	if w.CrossesMidnight() {
		date = event.AddDays(date, 1)
	}

	hour, minute, _ := w.EndClock()
	return event.At(date, hour, minute, loc)
}

// Classify places an event relative to today. Only events dated today look
// at the clock: they stay upcoming until their end time has passed, and
// forever when no end time is known.
func Classify(e *event.Event, now time.Time, today string) Status {
	switch {
	case e.Date > today:
		return Upcoming
	case e.Date < today:
		return Archived
	}

	end, ok := EndInstant(e, now.Location())
	if !ok {
		return Upcoming
	}
	if !now.Before(end) {
		return Archived
	}
	return Upcoming
}

// EndedAgo renders how long ago today's event ended, in whole hours rounded
// up. Returns "" for other days, for events without an end time and for
// events that have not ended yet.
func EndedAgo(e *event.Event, now time.Time, today string) string {
	if e.Date != today {
		return ""
	}

	end, ok := EndInstant(e, now.Location())
	if !ok || now.Before(end) {
		return ""
	}

	hours := int(math.Ceil(now.Sub(end).Hours()))
	return endedText(hours)
}

func endedText(hours int) string {
	switch {
	case hours == 1:
		return "Закончилось 1 час назад"
	case hours < 5:
		return fmt.Sprintf("Закончилось %d часа назад", hours)
	default:
		return fmt.Sprintf("Закончилось %d часов назад", hours)
	}
}
