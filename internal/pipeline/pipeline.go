package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/feed"
	"github.com/pfrederiksen/afisha-events/internal/geocode"
	"github.com/pfrederiksen/afisha-events/internal/logger"
)

// Options configures where a load reads from
type Options struct {
	FeedURL    string
	GeocodeURL string // empty disables coordinate resolution
	City       string
	Year       int // year for wall posts that carry only DD.MM
}

// Result is the outcome of one load
type Result struct {
	RunID    string
	LoadedAt time.Time
	Events   []*event.Event
	Stats    Stats
	Feed     feed.DecodeStats
	Cache    geocode.DecodeStats
	CacheErr error // non-fatal
	Duration time.Duration
}

// Pipeline loads and normalizes the feed
type Pipeline struct {
	source  *feed.Source
	opts    Options
	log     *logger.Logger
	metrics *logger.Metrics
	now     func() time.Time
}

// New creates a Pipeline. Nil log and metrics use the package defaults.
func New(source *feed.Source, opts Options, log *logger.Logger, metrics *logger.Metrics) *Pipeline {
	if source == nil {
		source = feed.NewSource(feed.Timeout)
	}
	if opts.City == "" {
		opts.City = DefaultCity
	}
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = logger.DefaultMetrics()
	}
	return &Pipeline{
		source:  source,
		opts:    opts,
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

// Load fetches the feed and the geocode cache concurrently, waits for both
// and returns the canonical list. When the feed fails the result holds an
// empty list and the error is returned; cache failures are logged and kept
// in Result.CacheErr.
func (p *Pipeline) Load(ctx context.Context) (*Result, error) {
	start := p.now()
	res := &Result{
		RunID:  uuid.New().String(),
		Events: []*event.Event{},
	}
	log := p.log.With(logger.Fields{"run_id": res.RunID})

	var (
		records  []feed.Record
		resolver *geocode.Resolver
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, stats, err := p.source.FetchRecords(gctx, p.opts.FeedURL, feed.PostOptions{
			Year: p.opts.Year,
			City: p.opts.City,
		})
		if err != nil {
			return fmt.Errorf("loading feed: %w", err)
		}
		records, res.Feed = recs, stats
		return nil
	})
	g.Go(func() error {
		resolver, res.Cache, res.CacheErr = p.loadCache(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		p.metrics.IncrCounter("feed.failures")
		log.Error("feed load failed", logger.Fields{"url": p.opts.FeedURL}, err)
		return res, err
	}

	if res.CacheErr != nil {
		log.Warn("geocode cache unavailable, events without coordinates stay unplaced", logger.Fields{
			"url":   p.opts.GeocodeURL,
			"error": res.CacheErr.Error(),
		})
	}

	events, stats := NewNormalizer(p.opts.City, resolver, log).Normalize(records)
	res.Events = events
	res.Stats = stats
	res.LoadedAt = p.now()
	res.Duration = res.LoadedAt.Sub(start)

	p.record(res)
	log.Info("feed loaded", logger.Fields{
		"records":     stats.Records,
		"dropped":     len(stats.Dropped),
		"posts":       res.Feed.Posts,
		"resolved":    stats.Resolved,
		"unresolved":  stats.Unresolved,
		"cache_size":  res.Cache.Entries,
		"duration_ms": res.Duration.Milliseconds(),
	})

	return res, nil
}

func (p *Pipeline) loadCache(ctx context.Context) (*geocode.Resolver, geocode.DecodeStats, error) {
	if p.opts.GeocodeURL == "" {
		return geocode.NewResolver(nil), geocode.DecodeStats{}, nil
	}

	body, err := p.source.Open(ctx, p.opts.GeocodeURL)
	if err != nil {
		return geocode.NewResolver(nil), geocode.DecodeStats{}, fmt.Errorf("loading geocode cache: %w", err)
	}
	defer body.Close()

	resolver, stats, err := geocode.Load(body)
	if err != nil {
		return resolver, stats, fmt.Errorf("decoding geocode cache: %w", err)
	}
	return resolver, stats, nil
}

func (p *Pipeline) record(res *Result) {
	p.metrics.AddCounter("feed.records", int64(res.Stats.Records))
	p.metrics.AddCounter("feed.dropped", int64(len(res.Stats.Dropped)))
	p.metrics.AddCounter("feed.posts_skipped", int64(res.Feed.Skipped))
	p.metrics.AddCounter("geocode.resolved", int64(res.Stats.Resolved))
	p.metrics.AddCounter("geocode.unresolved", int64(res.Stats.Unresolved))
	p.metrics.SetGauge("geocode.entries", float64(res.Cache.Entries))
	p.metrics.RecordTiming("pipeline.load", res.Duration)
}
