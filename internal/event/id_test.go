package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestAssignID(t *testing.T) {
	tests := []struct {
		name string
		evt  *Event
		want string
	}{
		{
			name: "no coordinates",
			evt:  &Event{Date: "2025-03-05", Title: "A"},
			want: "e46c36565",
		},
		{
			name: "latin title with coordinates",
			evt:  &Event{Date: "2025-03-05", Title: "A", Lat: ptr(54.71), Lon: ptr(20.45)},
			want: "e6e529cbd",
		},
		{
			name: "cyrillic title",
			evt:  &Event{Date: "2025-03-05", Title: "Концерт", Lat: ptr(54.71), Lon: ptr(20.45)},
			want: "e4e0b20ce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignID(tt.evt))
		})
	}
}

func TestAssignID_Stable(t *testing.T) {
	a := &Event{Date: "2025-03-05", Title: "Jazz", Location: "Club", Lat: ptr(54.7), Lon: ptr(20.5)}
	b := &Event{Date: "2025-03-05", Title: "Jazz", Location: "Other venue", Text: "different text", Lat: ptr(54.7), Lon: ptr(20.5)}

	assert.Equal(t, AssignID(a), AssignID(a), "same event must hash the same twice")
	assert.Equal(t, AssignID(a), AssignID(b), "location and text are not part of the identity")
}

func TestAssignID_ChangesWithKeyFields(t *testing.T) {
	base := &Event{Date: "2025-03-05", Title: "Jazz", Lat: ptr(54.7), Lon: ptr(20.5)}
	baseID := AssignID(base)

	variants := map[string]*Event{
		"date":  {Date: "2025-03-06", Title: "Jazz", Lat: ptr(54.7), Lon: ptr(20.5)},
		"title": {Date: "2025-03-05", Title: "Rock", Lat: ptr(54.7), Lon: ptr(20.5)},
		"lat":   {Date: "2025-03-05", Title: "Jazz", Lat: ptr(54.8), Lon: ptr(20.5)},
		"lon":   {Date: "2025-03-05", Title: "Jazz", Lat: ptr(54.7), Lon: ptr(20.6)},
		"unset": {Date: "2025-03-05", Title: "Jazz"},
	}

	for field, evt := range variants {
		t.Run(field, func(t *testing.T) {
			assert.NotEqual(t, baseID, AssignID(evt))
		})
	}
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, "2025-03-05|A||", IdentityKey(&Event{Date: "2025-03-05", Title: "A"}))
	assert.Equal(t, "2025-03-05|A|54.71|20.45", IdentityKey(&Event{Date: "2025-03-05", Title: "A", Lat: ptr(54.71), Lon: ptr(20.45)}))
}

func TestAssignID_Format(t *testing.T) {
	id := AssignID(&Event{})
	assert.Len(t, id, 9)
	assert.Regexp(t, `^e[0-9a-f]{8}$`, id)
}
