// Package timewindow extracts clock times embedded in free-text event descriptions.
package timewindow

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	rangePattern  = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)
	singlePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Window is a start and optional end clock time parsed from text
type Window struct {
	Start  string `json:"start"`         // HH:MM
	End    string `json:"end,omitempty"` // HH:MM, empty unless HasEnd
	HasEnd bool   `json:"has_end"`
}

// String renders the window as "HH:MM" or "HH:MM-HH:MM"
func (w *Window) String() string {
	if w == nil {
		return ""
	}
	if w.HasEnd {
		return w.Start + "-" + w.End
	}
	return w.Start
}

// StartClock returns the start hour and minute
func (w *Window) StartClock() (hour, minute int) {
	hour, minute, _ = splitClock(w.Start)
	return hour, minute
}

// EndClock returns the end hour and minute; ok is false without an end
func (w *Window) EndClock() (hour, minute int, ok bool) {
	if !w.HasEnd {
		return 0, 0, false
	}
	return splitClock(w.End)
}

// CrossesMidnight reports whether the end hour is before the start hour
func (w *Window) CrossesMidnight() bool {
	if !w.HasEnd {
		return false
	}
	startHour, _ := w.StartClock()
	endHour, _, _ := w.EndClock()
	return endHour < startHour
}

// Extract finds the first time range ("18:00 - 22:00") in text, falling back
// to the first single time ("18:00"). Only the first occurrence of each
// pattern is considered, and an out-of-range match is skipped in favor of
// the next pattern. Returns nil if no valid time is found.
func Extract(text string) *Window {
	if text == "" {
		return nil
	}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		sh, sm := atoi(m[1]), atoi(m[2])
		eh, em := atoi(m[3]), atoi(m[4])
		if validClock(sh, sm) && validClock(eh, em) {
			return &Window{
				Start:  formatClock(sh, sm),
				End:    formatClock(eh, em),
				HasEnd: true,
			}
		}
	}

	if m := singlePattern.FindStringSubmatch(text); m != nil {
		h, mm := atoi(m[1]), atoi(m[2])
		if validClock(h, mm) {
			return &Window{Start: formatClock(h, mm)}
		}
	}

	return nil
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// splitClock parses a zero-padded "HH:MM"
func splitClock(clock string) (hour, minute int, ok bool) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, 0, false
	}
	h, err := strconv.Atoi(clock[:2])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(clock[3:])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// atoi is only called on regexp digit groups
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
