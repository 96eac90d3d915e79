package search

import (
	"fmt"
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

func catalog() []*event.Event {
	return []*event.Event{
		{Title: "Концерт органной музыки", Location: "Кафедральный собор"},
		{Title: "Jazz Night", Location: "Клуб Вагонка"},
		{Title: "Светская хроника", Location: "Дом искусств"},
		{Title: "Лекция о космосе", Location: "Планетарий"},
		{Title: "Маркет", Location: "Barn Loft"},
		{Title: "Кинопоказ", Location: "Заря"},
		{Title: "Джаз на крыше", Location: "Отель Москва"},
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"cyrillic substring", "концерт", []string{"Концерт органной музыки"}},
		{"case insensitive", "КОНЦЕРТ", []string{"Концерт органной музыки"}},
		{"latin query finds cyrillic title", "kontsert", []string{"Концерт органной музыки"}},
		{"matches location", "вагонка", []string{"Jazz Night"}},
		{"cyrillic query finds latin location", "барн", []string{"Маркет"}},
		{"latin title", "jazz", []string{"Jazz Night"}},
		{"latin digraph", "khronika", []string{"Светская хроника"}},
		{"trimmed", "  заря ", []string{"Кинопоказ"}},
		{"no match", "футбол", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(catalog(), tt.query)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearch_OnlyExpandedSpellings(t *testing.T) {
	events := []*event.Event{{Title: "Светская вечеринка", Location: "Клуб"}}

	tests := []struct {
		query string
		want  int
	}{
		{"ц", 0},
		{"э", 0},
		{"svetskaya", 0},
		{"svet", 1},
		{"вечер", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Len(t, Search(events, tt.query), tt.want)
		})
	}
}

func TestSearch_BlankQuerySuggests(t *testing.T) {
	events := catalog()

	got := Search(events, "   ")
	require.Len(t, got, DefaultSuggestions)
	assert.Equal(t, titles(events[:DefaultSuggestions]), titles(got))

	short := events[:2]
	assert.Len(t, Search(short, ""), 2)
}

func TestSearch_LimitAndOrder(t *testing.T) {
	events := make([]*event.Event, 0, 30)
	for i := 0; i < 30; i++ {
		events = append(events, &event.Event{Title: fmt.Sprintf("Концерт %02d", i), Location: "Зал"})
	}

	got := Search(events, "концерт")
	require.Len(t, got, DefaultLimit)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("Концерт %02d", i), e.Title)
	}

	custom := New(2, 5).Search(events, "зал")
	assert.Len(t, custom, 5)
	assert.Len(t, New(2, 5).Search(events, ""), 2)
}

func TestSearch_ComposedForms(t *testing.T) {
	// "й" written as и + combining breve
	events := []*event.Event{{Title: "Чаи\u0306ная церемония", Location: "Дом"}}
	got := Search(events, "чай")
	assert.Len(t, got, 1)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ёлка", Normalize("  ЁЛКА "))
	assert.Equal(t, "", Normalize("\t\n"))
}
