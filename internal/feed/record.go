package feed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode"
)

// Record is one feed entry as published, before normalization
type Record struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Date     string   `json:"date"`
	Text     string   `json:"text,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
}

// IsPost reports whether the entry carries only raw post text and has to go
// through the post grammar.
func (r Record) IsPost() bool {
	return r.Title == "" && r.Date == "" && r.Location == "" && r.Text != ""
}

// DecodeStats describes what DecodeRecords produced
type DecodeStats struct {
	Records int // structured records
	Posts   int // wall posts turned into records
	Skipped int // posts that did not match the grammar
}

// wallPost is a wall.get item; only the text matters here
type wallPost struct {
	Text string `json:"text"`
}

type wallEnvelope struct {
	Response struct {
		Items []wallPost `json:"items"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

// DecodeRecords reads a feed document: either a JSON array of entries or a
// wall.get response object. Descriptions are flattened from HTML, wall posts
// are extracted with opts, and posts without a date or location are skipped.
func DecodeRecords(r io.Reader, opts PostOptions) ([]Record, DecodeStats, error) {
	var stats DecodeStats

	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, stats, fmt.Errorf("reading feed: %w", err)
	}

	var entries []Record
	switch first {
	case '[':
		if err := json.NewDecoder(br).Decode(&entries); err != nil {
			return nil, stats, fmt.Errorf("decoding feed: %w", err)
		}
	case '{':
		var env wallEnvelope
		if err := json.NewDecoder(br).Decode(&env); err != nil {
			return nil, stats, fmt.Errorf("decoding feed: %w", err)
		}
		if len(env.Error) > 0 && string(env.Error) != "null" {
			return nil, stats, fmt.Errorf("feed returned an error: %s", env.Error)
		}
		for _, item := range env.Response.Items {
			if item.Text == "" {
				stats.Skipped++
				continue
			}
			entries = append(entries, Record{Text: item.Text})
		}
	default:
		return nil, stats, fmt.Errorf("feed must be a JSON array or object, got %q", first)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		entry.Text = FlattenHTML(entry.Text)

		if !entry.IsPost() {
			stats.Records++
			records = append(records, entry)
			continue
		}

		rec, err := ExtractPost(entry.Text, opts)
		if err != nil {
			stats.Skipped++
			continue
		}
		rec.Lat, rec.Lon = entry.Lat, entry.Lon
		stats.Posts++
		records = append(records, rec)
	}

	return records, stats, nil
}

func peekNonSpace(br *bufio.Reader) (rune, error) {
	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.New("empty document")
			}
			return 0, err
		}
		// BOM and whitespace
		if ch == '\uFEFF' || unicode.IsSpace(ch) {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return 0, err
		}
		return ch, nil
	}
}
