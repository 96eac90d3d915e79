package event

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Event is a single normalized feed entry
type Event struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Location string   `json:"location" yaml:"location"`
	Date     string   `json:"date" yaml:"date"` // ISO YYYY-MM-DD, local wall-clock day
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Lat      *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty" yaml:"lon,omitempty"`
}

// NewEvent creates an Event and assigns its ID from the given fields.
// lat and lon may be nil when the feed did not supply coordinates.
func NewEvent(title, location, date, text string, lat, lon *float64) *Event {
	evt := &Event{
		Title:    title,
		Location: location,
		Date:     date,
		Text:     text,
		Lat:      lat,
		Lon:      lon,
	}
	evt.ID = AssignID(evt)
	return evt
}

// HasCoordinates reports whether both latitude and longitude are present
func (e *Event) HasCoordinates() bool {
	return e.Lat != nil && e.Lon != nil
}

// Coordinates returns the event position, or false when it is unplaced
func (e *Event) Coordinates() (lat, lon float64, ok bool) {
	if !e.HasCoordinates() {
		return 0, 0, false
	}
	return *e.Lat, *e.Lon, true
}

// SetCoordinates stores a resolved position on the event
func (e *Event) SetCoordinates(lat, lon float64) {
	e.Lat = &lat
	e.Lon = &lon
}

var hashtagPattern = regexp.MustCompile(`#[^\s#]+`)

// Excerpt returns the description without hashtags and without its first
// line (which repeats the date and title in the source posts), cut to limit
// runes. A cut excerpt ends with an ellipsis. limit <= 0 disables cutting.
func (e *Event) Excerpt(limit int) string {
	text := strings.TrimSpace(hashtagPattern.ReplaceAllString(e.Text, ""))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[i+1:])
	} else {
		text = ""
	}

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}
