package timeline

import (
	"strings"
	"time"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/timewindow"
)

const (
	TodayLabel    = "Сегодня"
	TomorrowLabel = "Завтра"
)

var weekdayNames = [...]string{
	time.Sunday:    "Воскресенье",
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
}

// WeekdayName returns the Russian name of a weekday
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// DayLabel returns the section header of a date: today, tomorrow or the
// weekday name. Unparseable dates get "".
func DayLabel(date, today string) string {
	switch date {
	case today:
		return TodayLabel
	case event.AddDays(today, 1):
		return TomorrowLabel
	}

	day, ok := event.Weekday(date)
	if !ok {
		return ""
	}
	return WeekdayName(day)
}

// Label is the display label of one event
type Label struct {
	Date   string `json:"date" yaml:"date"`                     // "Сегодня" or dd.mm.yy
	Time   string `json:"time,omitempty" yaml:"time,omitempty"` // HH:MM or HH:MM-HH:MM
	Ended  string `json:"ended,omitempty" yaml:"ended,omitempty"`
	Status Status `json:"-" yaml:"-"`
}

// String joins the parts on one line
func (l Label) String() string {
	parts := []string{l.Date}
	if l.Time != "" {
		parts = append(parts, l.Time)
	}
	if l.Ended != "" {
		parts = append(parts, "· "+l.Ended)
	}
	return strings.Join(parts, " ")
}

// Describe builds the display label of an event. showEnded adds the
// "ended N hours ago" text for today's events that are over.
func Describe(e *event.Event, now time.Time, today string, showEnded bool) Label {
	label := Label{
		Date:   formatDay(e.Date, today),
		Status: Classify(e, now, today),
	}

	if w := timewindow.Extract(e.Text); w != nil {
		label.Time = w.String()
	}
	if showEnded {
		label.Ended = EndedAgo(e, now, today)
	}

	return label
}

// formatDay renders "Сегодня" for today and dd.mm.yy otherwise. Dates that
// do not parse are returned unchanged.
func formatDay(date, today string) string {
	if date == today {
		return TodayLabel
	}
	t := event.ParseDate(date)
	if t.IsZero() {
		return date
	}
	return t.Format("02.01.06")
}
