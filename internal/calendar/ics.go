// Package calendar exports events as an iCalendar document.
package calendar

import (
	"fmt"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/timeline"
	"github.com/pfrederiksen/afisha-events/internal/timewindow"
)

const (
	ProductID = "-//afisha-events//afisha-events//RU"
	Name      = "Афиша"

	// DefaultDuration is used for timed events without an end time
	DefaultDuration = 2 * time.Hour
)

// UID returns the iCalendar UID of an event
func UID(evt *event.Event) string {
	return evt.ID + "@afisha"
}

// Generate renders events as one VCALENDAR with a VEVENT each. Times in
// the description are read in loc; events without a time become all-day
// entries. stamp is written as DTSTAMP.
func Generate(events []*event.Event, loc *time.Location, stamp time.Time) string {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName(Name)
	cal.SetXWRCalName(Name)
	cal.SetXWRTimezone(loc.String())

	for _, evt := range events {
		addEvent(cal, evt, loc, stamp)
	}

	return cal.Serialize(ical.WithNewLine("\r\n"))
}

func addEvent(cal *ical.Calendar, evt *event.Event, loc *time.Location, stamp time.Time) {
	day := event.ParseDate(evt.Date)
	if day.IsZero() {
		return
	}

	ve := cal.AddEvent(UID(evt))
	ve.SetDtStampTime(stamp)
	ve.SetSummary(evt.Title)
	ve.SetStatus(ical.ObjectStatusConfirmed)

	if evt.Location != "" {
		ve.SetLocation(evt.Location)
	}
	if evt.Text != "" {
		ve.SetDescription(evt.Text)
	}
	if lat, lon, ok := evt.Coordinates(); ok {
		ve.SetProperty(ical.ComponentPropertyGeo, formatCoord(lat)+";"+formatCoord(lon))
	}

	w := timewindow.Extract(evt.Text)
	if w == nil {
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}

	hour, minute := w.StartClock()
	start, _ := event.At(evt.Date, hour, minute, loc)
	end, ok := timeline.EndInstant(evt, loc)
	if !ok {
		end = start.Add(DefaultDuration)
	}

	ve.SetStartAt(start)
	ve.SetEndAt(end)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename suggests a file name for an export of events
func Filename(events []*event.Event) string {
	first, last, ok := timeline.DateRange(events)
	if !ok {
		return "afisha.ics"
	}
	if first == last {
		return fmt.Sprintf("afisha-%s.ics", first)
	}
	return fmt.Sprintf("afisha-%s_%s.ics", first, last)
}
