package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	evt := NewEvent("Jazz night", "Club", "2025-03-05", "18:00-19:00", nil, nil)

	assert.Equal(t, AssignID(evt), evt.ID)
	assert.Equal(t, "Jazz night", evt.Title)
	assert.False(t, evt.HasCoordinates())

	_, _, ok := evt.Coordinates()
	assert.False(t, ok)
}

func TestEvent_SetCoordinates(t *testing.T) {
	evt := &Event{Title: "A"}
	evt.SetCoordinates(54.71, 20.45)

	lat, lon, ok := evt.Coordinates()
	assert.True(t, ok)
	assert.InDelta(t, 54.71, lat, 1e-9)
	assert.InDelta(t, 20.45, lon, 1e-9)
}

func TestEvent_HasCoordinates_Partial(t *testing.T) {
	evt := &Event{Lat: ptr(54.71)}
	assert.False(t, evt.HasCoordinates())
}

func TestEvent_Excerpt(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "drops header line and hashtags",
			text:  "05.03 | Джаз #afisha\nВход свободный #music #free",
			limit: 90,
			want:  "Вход свободный",
		},
		{
			name:  "single line has no body",
			text:  "05.03 | Джаз",
			limit: 90,
			want:  "",
		},
		{
			name:  "cuts long body on rune boundary",
			text:  "header\nабвгдеёжзи",
			limit: 4,
			want:  "абвг…",
		},
		{
			name:  "zero limit keeps everything",
			text:  "header\nабвгдеёжзи",
			limit: 0,
			want:  "абвгдеёжзи",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := &Event{Text: tt.text}
			assert.Equal(t, tt.want, evt.Excerpt(tt.limit))
		})
	}
}
