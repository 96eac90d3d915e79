package calendar

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

var (
	testLoc   = time.FixedZone("Europe/Kaliningrad", 2*60*60)
	testStamp = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func parse(t *testing.T, doc string) map[string]*ical.VEvent {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err)

	byUID := make(map[string]*ical.VEvent)
	for _, ve := range cal.Events() {
		byUID[ve.Id()] = ve
	}
	return byUID
}

func TestGenerate_Calendar(t *testing.T) {
	events := []*event.Event{
		{ID: "e00000001", Title: "Концерт", Location: "Клуб", Date: "2025-03-05", Text: "18:00-19:00"},
		{ID: "e00000002", Title: "Ярмарка", Location: "Площадь", Date: "2025-03-08"},
	}

	doc := Generate(events, testLoc, testStamp)

	for _, field := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"PRODID:" + ProductID,
		"X-WR-CALNAME:" + Name,
		"UID:e00000001@afisha",
		"UID:e00000002@afisha",
		"END:VCALENDAR",
	} {
		assert.Contains(t, doc, field)
	}
	assert.Equal(t, 2, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Contains(t, doc, "\r\n")
	assert.Equal(t, strings.Count(doc, "\n"), strings.Count(doc, "\r\n"), "every line ends with CRLF")
}

func TestGenerate_TimedEvent(t *testing.T) {
	evt := &event.Event{ID: "e1", Title: "Концерт", Location: "Клуб", Date: "2025-03-05", Text: "Начало 18:00-19:30"}

	byUID := parse(t, Generate([]*event.Event{evt}, testLoc, testStamp))
	ve := byUID["e1@afisha"]
	require.NotNil(t, ve)

	start, err := ve.GetStartAt()
	require.NoError(t, err)
	end, err := ve.GetEndAt()
	require.NoError(t, err)

	assert.True(t, start.Equal(time.Date(2025, 3, 5, 18, 0, 0, 0, testLoc)), "start = %v", start)
	assert.True(t, end.Equal(time.Date(2025, 3, 5, 19, 30, 0, 0, testLoc)), "end = %v", end)
	assert.Equal(t, "Клуб", ve.GetProperty(ical.ComponentPropertyLocation).Value)
	assert.Equal(t, "Концерт", ve.GetProperty(ical.ComponentPropertySummary).Value)
}

func TestGenerate_OvernightAndOpenEnded(t *testing.T) {
	events := []*event.Event{
		{ID: "night", Title: "Вечеринка", Date: "2025-01-10", Text: "23:00-01:00"},
		{ID: "open", Title: "Лекция", Date: "2025-01-10", Text: "Начало в 19:00"},
	}

	byUID := parse(t, Generate(events, testLoc, testStamp))

	end, err := byUID["night@afisha"].GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 1, 11, 1, 0, 0, 0, testLoc)), "overnight end = %v", end)

	start, err := byUID["open@afisha"].GetStartAt()
	require.NoError(t, err)
	end, err = byUID["open@afisha"].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, end.Sub(start))
}

func TestGenerate_AllDay(t *testing.T) {
	evt := &event.Event{ID: "day", Title: "Ярмарка", Date: "2025-03-08"}
	doc := Generate([]*event.Event{evt}, testLoc, testStamp)

	assert.Contains(t, doc, "DTSTART;VALUE=DATE:20250308")
	assert.Contains(t, doc, "DTEND;VALUE=DATE:20250309")
}

func TestGenerate_GeoAndEscaping(t *testing.T) {
	evt := &event.Event{ID: "geo", Title: "Рок, поп; джаз", Location: "Клуб", Date: "2025-03-08"}
	evt.SetCoordinates(54.71, 20.51)

	doc := Generate([]*event.Event{evt}, testLoc, testStamp)

	assert.Contains(t, doc, "GEO:")
	assert.Contains(t, doc, "54.71")
	assert.Contains(t, doc, "20.51")
	assert.Contains(t, doc, `Рок\, поп\; джаз`)
}

func TestGenerate_SkipsBadDates(t *testing.T) {
	doc := Generate([]*event.Event{{ID: "bad", Title: "?", Date: "скоро"}}, testLoc, testStamp)
	assert.NotContains(t, doc, "BEGIN:VEVENT")
	assert.Contains(t, doc, "BEGIN:VCALENDAR")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "afisha.ics", Filename(nil))
	assert.Equal(t, "afisha-2025-03-05.ics", Filename([]*event.Event{{Date: "2025-03-05"}}))
	assert.Equal(t, "afisha-2025-03-01_2025-03-09.ics",
		Filename([]*event.Event{{Date: "2025-03-09"}, {Date: "2025-03-01"}}))
}
