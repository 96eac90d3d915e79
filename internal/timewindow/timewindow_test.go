package timewindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *Window
	}{
		{
			name: "range",
			text: "Начало 18:00-22:00, вход свободный",
			want: &Window{Start: "18:00", End: "22:00", HasEnd: true},
		},
		{
			name: "range with spaces and single-digit hours",
			text: "с 9:30 - 1:05",
			want: &Window{Start: "09:30", End: "01:05", HasEnd: true},
		},
		{
			name: "single time",
			text: "Сбор в 7:15 у входа",
			want: &Window{Start: "07:15"},
		},
		{
			name: "range wins over earlier single time",
			text: "Двери 17:30, концерт 19:00-21:00",
			want: &Window{Start: "19:00", End: "21:00", HasEnd: true},
		},
		{
			name: "invalid range falls back to single pattern",
			text: "Сбор 18:30, шоу 20:61-23:00",
			want: &Window{Start: "18:30"},
		},
		{
			name: "invalid hour in range",
			text: "24:00-25:00 then 18:00",
			want: nil,
		},
		{
			name: "single pattern is not retried on a later occurrence",
			text: "99:99 then 18:00",
			want: nil,
		},
		{
			name: "dates are not times",
			text: "05.03 в клубе",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_ValidRangesAlwaysHaveEnd(t *testing.T) {
	for h := 0; h < 24; h += 5 {
		for m := 0; m < 60; m += 13 {
			text := "в " + formatClock(h, m)[1:] + "-" + formatClock((h+2)%24, m)
			w := Extract(text)
			require.NotNil(t, w, text)
			assert.True(t, w.HasEnd, text)
			assert.Len(t, w.Start, 5, text)
			assert.Len(t, w.End, 5, text)
		}
	}
}

func TestWindow_String(t *testing.T) {
	assert.Equal(t, "18:00-22:00", (&Window{Start: "18:00", End: "22:00", HasEnd: true}).String())
	assert.Equal(t, "18:00", (&Window{Start: "18:00"}).String())

	var w *Window
	assert.Equal(t, "", w.String())
}

func TestWindow_Clocks(t *testing.T) {
	w := &Window{Start: "23:00", End: "01:30", HasEnd: true}

	h, m := w.StartClock()
	assert.Equal(t, 23, h)
	assert.Equal(t, 0, m)

	h, m, ok := w.EndClock()
	require.True(t, ok)
	assert.Equal(t, 1, h)
	assert.Equal(t, 30, m)
	assert.True(t, w.CrossesMidnight())

	single := &Window{Start: "18:00"}
	_, _, ok = single.EndClock()
	assert.False(t, ok)
	assert.False(t, single.CrossesMidnight())
}
