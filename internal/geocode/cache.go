package geocode

import (
	"encoding/json"
	"fmt"
	"io"
)

// Coordinates is a resolved position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Cache is an insertion-ordered location to coordinates mapping
type Cache struct {
	keys    []string
	entries map[string]Coordinates
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Coordinates),
	}
}

// Add stores coordinates for a location. Re-adding a key updates its value
// but keeps its original position in the scan order.
func (c *Cache) Add(location string, coords Coordinates) {
	if _, exists := c.entries[location]; !exists {
		c.keys = append(c.keys, location)
	}
	c.entries[location] = coords
}

// Get returns the coordinates stored under an exact key
func (c *Cache) Get(location string) (Coordinates, bool) {
	coords, ok := c.entries[location]
	return coords, ok
}

// Keys returns the cache keys in insertion order
func (c *Cache) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of cached locations
func (c *Cache) Len() int {
	return len(c.keys)
}

// DecodeStats describes what DecodeCache kept and skipped
type DecodeStats struct {
	Entries int
	Skipped int
}

// DecodeCache reads a JSON object of location → [lat, lon] pairs, keeping the
// document order of keys. Empty keys and values that are not a pair of
// numbers (the geocoding job writes [null, null] for misses) are skipped.
func DecodeCache(r io.Reader) (*Cache, DecodeStats, error) {
	var stats DecodeStats
	cache := NewCache()

	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, stats, fmt.Errorf("reading cache start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, stats, fmt.Errorf("geocode cache must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, stats, fmt.Errorf("reading cache key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, stats, fmt.Errorf("reading cache value for %q: %w", key, err)
		}

		// an empty key is contained in every location and would win every partial scan
		coords, ok := decodePair(raw)
		if key == "" || !ok {
			stats.Skipped++
			continue
		}

		cache.Add(key, coords)
	}

	if _, err := dec.Token(); err != nil {
		return nil, stats, fmt.Errorf("reading cache end: %w", err)
	}

	stats.Entries = cache.Len()
	return cache, stats, nil
}

func decodePair(raw json.RawMessage) (Coordinates, bool) {
	var pair []*float64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return Coordinates{}, false
	}
	if len(pair) != 2 || pair[0] == nil || pair[1] == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *pair[0], Lon: *pair[1]}, true
}
