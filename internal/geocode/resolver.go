package geocode

import (
	"io"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

type memoEntry struct {
	coords Coordinates
	found  bool
}

// Resolver looks up coordinates in a loaded cache.
// A nil *Resolver behaves as a resolver whose cache never loaded and
// resolves nothing. A Resolver is read-only after construction; reloading
// the cache means building a new Resolver.
type Resolver struct {
	cache *Cache
	memo  *gocache.Cache
}

// NewResolver wraps a decoded cache. A nil cache resolves nothing.
func NewResolver(cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		cache: cache,
		// no expiration and no janitor goroutine: entries live as long as the resolver
		memo: gocache.New(gocache.NoExpiration, 0),
	}
}

// Load decodes a cache document into a new Resolver. On failure the returned
// resolver is empty (every lookup misses) and the error describes why, so
// callers can log it and carry on.
func Load(r io.Reader) (*Resolver, DecodeStats, error) {
	cache, stats, err := DecodeCache(r)
	if err != nil {
		return NewResolver(nil), stats, err
	}
	return NewResolver(cache), stats, nil
}

// Len returns the number of cached locations
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return r.cache.Len()
}

// Resolve returns the coordinates for a location: an exact key match first,
// then the first key in cache order that contains the location or is
// contained by it.
func (r *Resolver) Resolve(location string) (Coordinates, bool) {
	if r == nil {
		return Coordinates{}, false
	}

	query := strings.TrimSpace(location)
	if query == "" {
		return Coordinates{}, false
	}

	if coords, ok := r.cache.Get(query); ok {
		return coords, true
	}

	if hit, ok := r.memo.Get(query); ok {
		entry := hit.(memoEntry)
		return entry.coords, entry.found
	}

	entry := r.scan(query)
	r.memo.Set(query, entry, gocache.NoExpiration)
	return entry.coords, entry.found
}

func (r *Resolver) scan(query string) memoEntry {
	for _, key := range r.cache.keys {
		if strings.Contains(query, key) || strings.Contains(key, query) {
			return memoEntry{coords: r.cache.entries[key], found: true}
		}
	}
	return memoEntry{}
}

// Apply fills in coordinates for an event that has none. Events already
// carrying coordinates are left alone. Reports whether the event is placed
// afterwards.
func (r *Resolver) Apply(evt *event.Event) bool {
	if evt.HasCoordinates() {
		return true
	}

	coords, ok := r.Resolve(evt.Location)
	if !ok {
		return false
	}

	evt.SetCoordinates(coords.Lat, coords.Lon)
	return true
}
