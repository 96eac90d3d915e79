package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/feed"
	"github.com/pfrederiksen/afisha-events/internal/geocode"
	"github.com/pfrederiksen/afisha-events/internal/logger"
)

// Drop reasons
const (
	ReasonNoTitle     = "missing title"
	ReasonInvalidDate = "invalid date"
)

// Dropped describes a record rejected at the boundary
type Dropped struct {
	Index  int    `json:"index" yaml:"index"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// Stats counts what Normalize did
type Stats struct {
	Records    int       `json:"records" yaml:"records"`
	Dropped    []Dropped `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Resolved   int       `json:"resolved" yaml:"resolved"`
	Unresolved int       `json:"unresolved" yaml:"unresolved"`
	NoLocation int       `json:"no_location" yaml:"no_location"`
}

// Normalizer turns feed records into canonical events
type Normalizer struct {
	suffix   *regexp.Regexp
	resolver *geocode.Resolver
	log      *logger.Logger
}

// NewNormalizer creates a Normalizer stripping city from locations and
// resolving coordinates with resolver. A nil resolver leaves events without
// feed coordinates unplaced.
func NewNormalizer(city string, resolver *geocode.Resolver, log *logger.Logger) *Normalizer {
	if city == "" {
		city = DefaultCity
	}
	if log == nil {
		log = logger.Default()
	}
	return &Normalizer{
		suffix:   suffixPattern(city),
		resolver: resolver,
		log:      log,
	}
}

// Normalize builds the canonical list from records: records without a
// title or with an unparseable date are dropped, locations are formatted,
// identities assigned and coordinates resolved. The result is stably sorted
// by date. Duplicate records are kept and share an ID.
func (n *Normalizer) Normalize(records []feed.Record) ([]*event.Event, Stats) {
	var stats Stats
	events := make([]*event.Event, 0, len(records))

	for i, rec := range records {
		if reason := rejectReason(rec); reason != "" {
			stats.Dropped = append(stats.Dropped, Dropped{Index: i, Title: rec.Title, Date: rec.Date, Reason: reason})
			n.log.Warn("dropping feed record", logger.Fields{
				"index":  i,
				"title":  rec.Title,
				"date":   rec.Date,
				"reason": reason,
			})
			continue
		}

		location := formatLocation(rec.Location, n.suffix)
		if location == "" {
			stats.NoLocation++
			n.log.Debug("feed record has no location", logger.Fields{"index": i, "title": rec.Title})
		}

		evt := event.NewEvent(rec.Title, location, rec.Date, rec.Text, rec.Lat, rec.Lon)
		if n.resolver.Apply(evt) {
			stats.Resolved++
		} else {
			stats.Unresolved++
		}

		events = append(events, evt)
	}

	SortByDate(events)
	stats.Records = len(events)
	return events, stats
}

func rejectReason(rec feed.Record) string {
	switch {
	case strings.TrimSpace(rec.Title) == "":
		return ReasonNoTitle
	case !event.IsValidDate(rec.Date):
		return ReasonInvalidDate
	}
	return ""
}

// SortByDate sorts events by ISO date, keeping feed order within a date
func SortByDate(events []*event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}
