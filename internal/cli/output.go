package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/timeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// excerptLimit bounds the description shown in verbose text output
const excerptLimit = 160

// ParseFormat validates a --format value
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", name)
	}
}

// textWriter is implemented by results that have a human-readable form
type textWriter interface {
	writeText(w io.Writer, verbose bool) error
}

// EventView is an event together with its display label
type EventView struct {
	event.Event `yaml:",inline"`
	Status      string         `json:"status" yaml:"status"`
	Label       timeline.Label `json:"label" yaml:"label"`
}

func newEventView(e *event.Event, now time.Time, today string, showEnded bool) EventView {
	label := timeline.Describe(e, now, today, showEnded)
	return EventView{
		Event:  *e,
		Status: label.Status.String(),
		Label:  label,
	}
}

func newEventViews(events []*event.Event, now time.Time, today string, showEnded bool) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e, now, today, showEnded))
	}
	return views
}

// SectionView is one day section of the upcoming view
type SectionView struct {
	Label  string      `json:"label" yaml:"label"`
	Events []EventView `json:"events" yaml:"events"`
}

// UpcomingResult is the output of the upcoming command
type UpcomingResult struct {
	Now        time.Time     `json:"now" yaml:"now"`
	Sections   []SectionView `json:"sections" yaml:"sections"`
	EventCount int           `json:"event_count" yaml:"event_count"`
}

// ListResult is a flat list of events with a heading
type ListResult struct {
	Now         time.Time   `json:"now" yaml:"now"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Date        string      `json:"date,omitempty" yaml:"date,omitempty"`
	Available   *DateSpan   `json:"available,omitempty" yaml:"available,omitempty"`
	Events      []EventView `json:"events" yaml:"events"`
	EventCount  int         `json:"event_count" yaml:"event_count"`
}

// DateSpan is the first and last date present in the feed
type DateSpan struct {
	First string `json:"first" yaml:"first"`
	Last  string `json:"last" yaml:"last"`
}

// SearchResult is the output of one query
type SearchResult struct {
	Query      string      `json:"query" yaml:"query"`
	Spellings  []string    `json:"spellings,omitempty" yaml:"spellings,omitempty"`
	Events     []EventView `json:"events" yaml:"events"`
	EventCount int         `json:"event_count" yaml:"event_count"`
}

// WatchReport is printed after each successful reload
type WatchReport struct {
	RunID         string      `json:"run_id" yaml:"run_id"`
	LoadedAt      time.Time   `json:"loaded_at" yaml:"loaded_at"`
	EventCount    int         `json:"event_count" yaml:"event_count"`
	NewEvents     []EventView `json:"new_events" yaml:"new_events"`
	RemovedEvents []EventView `json:"removed_events" yaml:"removed_events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result interface{}, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatText:
		tw, ok := result.(textWriter)
		if !ok {
			return fmt.Errorf("no text output for %T", result)
		}
		return tw.writeText(w, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeYAML(w io.Writer, result interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return encoder.Close()
}

// writeEvent prints one event line, plus details in verbose mode
func writeEvent(w io.Writer, v EventView, indent string, verbose bool) {
	line := indent + v.Label.String() + "  " + v.Title
	if v.Location != "" {
		line += " @ " + v.Location
	}
	fmt.Fprintln(w, line)

	if !verbose {
		return
	}
	fmt.Fprintf(w, "%s    ID: %s\n", indent, v.ID)
	if lat, lon, ok := v.Coordinates(); ok {
		fmt.Fprintf(w, "%s    Coordinates: %.6f, %.6f\n", indent, lat, lon)
	}
	if excerpt := v.Excerpt(excerptLimit); excerpt != "" {
		fmt.Fprintf(w, "%s    %s\n", indent, strings.ReplaceAll(excerpt, "\n", " "))
	}
}

func (r *UpcomingResult) writeText(w io.Writer, verbose bool) error {
	if r.EventCount == 0 {
		fmt.Fprintln(w, "No upcoming events.")
		return nil
	}

	for i, section := range r.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d):\n", section.Label, len(section.Events))
		for _, v := range section.Events {
			writeEvent(w, v, "  ", verbose)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", r.EventCount)
	return nil
}

func (r *ListResult) writeText(w io.Writer, verbose bool) error {
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	if r.Available != nil && verbose {
		fmt.Fprintf(w, "Feed covers %s to %s\n", r.Available.First, r.Available.Last)
	}
	if r.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, v := range r.Events {
		writeEvent(w, v, "  ", verbose)
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", r.EventCount)
	return nil
}

func (r *SearchResult) writeText(w io.Writer, verbose bool) error {
	if r.Query == "" {
		fmt.Fprintln(w, "Suggestions:")
	} else {
		fmt.Fprintf(w, "Results for %q:\n", r.Query)
	}
	if r.EventCount == 0 {
		fmt.Fprintln(w, "  Nothing found.")
		return nil
	}
	for _, v := range r.Events {
		writeEvent(w, v, "  ", verbose)
	}
	return nil
}

func (r *WatchReport) writeText(w io.Writer, verbose bool) error {
	ts := r.LoadedAt.Format("2006-01-02 15:04:05")
	if len(r.NewEvents) == 0 && len(r.RemovedEvents) == 0 {
		fmt.Fprintf(w, "[%s] No changes (%d events)\n", ts, r.EventCount)
		return nil
	}

	fmt.Fprintf(w, "[%s] %d new, %d removed (%d events)\n", ts, len(r.NewEvents), len(r.RemovedEvents), r.EventCount)
	for _, v := range r.NewEvents {
		writeEvent(w, v, "  NEW: ", verbose)
	}
	for _, v := range r.RemovedEvents {
		writeEvent(w, v, "  REMOVED: ", verbose)
	}
	return nil
}
