package filter

import (
	"testing"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

func placed(evt *event.Event) *event.Event {
	evt.SetCoordinates(54.71, 20.51)
	return evt
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"empty filter", NewFilter(), true},
		{"zero value", &Filter{}, true},
		{"date from", &Filter{DateFrom: "2025-03-01"}, false},
		{"weekends only", &Filter{WeekendsOnly: true}, false},
		{"placed only", &Filter{PlacedOnly: true}, false},
		{"venue", &Filter{Venues: []string{"собор"}}, false},
		{"title", &Filter{Titles: []string{"джаз"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	concert := &event.Event{Title: "Органный концерт", Location: "Кафедральный собор", Date: "2025-03-08"} // Saturday
	lecture := &event.Event{Title: "Лекция", Location: "Библиотека", Date: "2025-03-05"}                   // Wednesday

	tests := []struct {
		name   string
		filter *Filter
		event  *event.Event
		want   bool
	}{
		{"empty filter matches all", NewFilter(), lecture, true},
		{"inside date range", &Filter{DateFrom: "2025-03-01", DateTo: "2025-03-31"}, concert, true},
		{"bounds are inclusive", &Filter{DateFrom: "2025-03-08", DateTo: "2025-03-08"}, concert, true},
		{"before range", &Filter{DateFrom: "2025-03-06"}, lecture, false},
		{"after range", &Filter{DateTo: "2025-03-07"}, concert, false},
		{"weekend matches", &Filter{WeekendsOnly: true}, concert, true},
		{"weekday rejected", &Filter{WeekendsOnly: true}, lecture, false},
		{"venue case-insensitive", &Filter{Venues: []string{"СОБОР"}}, concert, true},
		{"venue any of", &Filter{Venues: []string{"театр", "библиотека"}}, lecture, true},
		{"venue mismatch", &Filter{Venues: []string{"театр"}}, lecture, false},
		{"title match", &Filter{Titles: []string{"концерт"}}, concert, true},
		{"title mismatch", &Filter{Titles: []string{"концерт"}}, lecture, false},
		{"placed only rejects unplaced", &Filter{PlacedOnly: true}, lecture, false},
		{"placed only accepts placed", &Filter{PlacedOnly: true}, placed(&event.Event{Title: "x", Date: "2025-03-05"}), true},
		{
			name:   "all criteria",
			filter: &Filter{DateFrom: "2025-03-01", WeekendsOnly: true, Venues: []string{"собор"}, Titles: []string{"орган"}},
			event:  concert,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	events := []*event.Event{
		{Title: "A", Date: "2025-03-01"},
		{Title: "B", Date: "2025-03-10"},
		{Title: "C", Date: "2025-03-20"},
	}

	f := &Filter{DateFrom: "2025-03-05", DateTo: "2025-03-25"}
	got := f.Apply(events)
	if len(got) != 2 || got[0].Title != "B" || got[1].Title != "C" {
		t.Errorf("Apply() = %v, want [B C]", got)
	}

	if got := NewFilter().Apply(events); len(got) != 3 {
		t.Errorf("empty filter returned %d events, want 3", len(got))
	}

	if got := (&Filter{DateFrom: "2030-01-01"}).Apply(events); got == nil || len(got) != 0 {
		t.Errorf("Apply() = %v, want empty non-nil slice", got)
	}
}

func TestFilter_String(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{"empty", NewFilter(), "No active filters"},
		{
			name:   "dates and venues",
			filter: &Filter{DateFrom: "2025-03-01", DateTo: "2025-03-31", Venues: []string{"собор"}},
			want:   "From: 01.03.2025 | To: 31.03.2025 | Venues: собор",
		},
		{
			name:   "flags",
			filter: &Filter{Titles: []string{"джаз"}, WeekendsOnly: true, PlacedOnly: true},
			want:   "Titles: джаз | Weekends only | On the map only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  *Filter
		wantErr bool
	}{
		{"empty", NewFilter(), false},
		{"ordered", &Filter{DateFrom: "2025-03-01", DateTo: "2025-03-02"}, false},
		{"reversed", &Filter{DateFrom: "2025-03-02", DateTo: "2025-03-01"}, true},
		{"malformed", &Filter{DateFrom: "01.03.2025"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.filter.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilter_Clone(t *testing.T) {
	original := &Filter{DateFrom: "2025-03-01", Venues: []string{"собор"}, Titles: []string{"джаз"}, PlacedOnly: true}
	clone := original.Clone()

	clone.Venues[0] = "театр"
	clone.Titles = append(clone.Titles, "рок")
	clone.DateFrom = "2025-04-01"

	if original.Venues[0] != "собор" {
		t.Errorf("modifying clone changed original venues: %v", original.Venues)
	}
	if len(original.Titles) != 1 {
		t.Errorf("modifying clone changed original titles: %v", original.Titles)
	}
	if original.DateFrom != "2025-03-01" {
		t.Errorf("modifying clone changed original date: %s", original.DateFrom)
	}
	if !clone.PlacedOnly {
		t.Error("clone lost PlacedOnly")
	}
}
