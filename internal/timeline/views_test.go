package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

func titles(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func sampleEvents() []*event.Event {
	return []*event.Event{
		{Title: "old", Date: "2025-03-01"},
		{Title: "older", Date: "2025-02-20"},
		{Title: "ended", Date: "2025-03-05", Text: "18:00-19:00"},
		{Title: "tonight", Date: "2025-03-05", Text: "21:00-23:00"},
		{Title: "tomorrow", Date: "2025-03-06"},
		{Title: "saturday", Date: "2025-03-08"},
		{Title: "next saturday", Date: "2025-03-15"},
		{Title: "same day as old", Date: "2025-03-01"},
	}
}

func TestPartition(t *testing.T) {
	loc := kaliningrad(t)
	now := at(loc, "2025-03-05", 20, 0)

	upcoming, archived := Partition(sampleEvents(), now, "2025-03-05")

	assert.Equal(t, []string{"tonight", "tomorrow", "saturday", "next saturday"}, titles(upcoming))
	assert.Equal(t, []string{"old", "older", "ended", "same day as old"}, titles(archived))
}

func TestGroup(t *testing.T) {
	loc := kaliningrad(t)
	now := at(loc, "2025-03-05", 20, 0)
	upcoming, _ := Partition(sampleEvents(), now, "2025-03-05")

	sections := Group(upcoming, "2025-03-05")
	require.Len(t, sections, 3)

	assert.Equal(t, "Сегодня", sections[0].Label)
	assert.Equal(t, []string{"tonight"}, titles(sections[0].Events))
	assert.Equal(t, "Завтра", sections[1].Label)
	assert.Equal(t, "Суббота", sections[2].Label)
	assert.Equal(t, []string{"saturday", "next saturday"}, titles(sections[2].Events))
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil, "2025-03-05"))
}

func TestArchive(t *testing.T) {
	loc := kaliningrad(t)
	now := at(loc, "2025-03-05", 20, 0)
	_, archived := Partition(sampleEvents(), now, "2025-03-05")

	got := Archive(archived)
	assert.Equal(t, []string{"ended", "old", "same day as old", "older"}, titles(got))
	// input untouched
	assert.Equal(t, "old", archived[0].Title)
}

func TestOnDate(t *testing.T) {
	got := OnDate(sampleEvents(), "2025-03-01")
	assert.Equal(t, []string{"old", "same day as old"}, titles(got))
	assert.Empty(t, OnDate(sampleEvents(), "2030-01-01"))
}

func TestDefaultDate(t *testing.T) {
	events := []*event.Event{{Date: "2025-02-01"}, {Date: "2025-02-10"}}

	assert.Equal(t, "2025-02-05", DefaultDate(events, "2025-02-05"))
	assert.Equal(t, "2025-02-01", DefaultDate(events, "2025-03-01"))
	assert.Equal(t, "2025-03-01", DefaultDate(nil, "2025-03-01"))
}

func TestDateRange(t *testing.T) {
	first, last, ok := DateRange(sampleEvents())
	require.True(t, ok)
	assert.Equal(t, "2025-02-20", first)
	assert.Equal(t, "2025-03-15", last)

	_, _, ok = DateRange(nil)
	assert.False(t, ok)
}
