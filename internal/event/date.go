package event

import "time"

// DateLayout is the ISO calendar date layout used by the feed
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date as a wall-clock day in UTC.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsValidDate reports whether date is a well-formed ISO calendar date
func IsValidDate(date string) bool {
	return !ParseDate(date).IsZero()
}

// AddDays shifts an ISO date by n calendar days.
// Returns "" if the date cannot be parsed.
func AddDays(date string, n int) string {
	t := ParseDate(date)
	if t.IsZero() {
		return ""
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// Weekday returns the day of week of an ISO date.
// The second result is false if the date cannot be parsed.
func Weekday(date string) (time.Weekday, bool) {
	t := ParseDate(date)
	if t.IsZero() {
		return time.Sunday, false
	}
	return t.Weekday(), true
}

// DateIn returns the ISO calendar date of t in its own location
func DateIn(t time.Time) string {
	return t.Format(DateLayout)
}

// At combines an ISO date with a wall-clock hour and minute in loc
func At(date string, hour, minute int, loc *time.Location) (time.Time, bool) {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), true
}
