package cli

import (
	"bufio"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/logger"
	"github.com/pfrederiksen/afisha-events/internal/search"
	"github.com/pfrederiksen/afisha-events/internal/timeline"
	"github.com/pfrederiksen/afisha-events/internal/translit"
)

func newSearchCmd(a *app) *cobra.Command {
	var flagInteractive bool

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search titles and venues in Cyrillic or Latin spelling",
		Long: `Search event titles and venues. A query typed in Latin letters also
matches Cyrillic text, so "vecherinka" finds "Вечеринка". Without a query the
first few events are suggested.

With --interactive every line read from stdin is treated as the current
contents of a search box: queries run once input has been quiet for
search.debounce.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			engine := search.New(a.cfg.Search.Suggestions, a.cfg.Search.Limit)
			if flagInteractive {
				return a.interactiveSearch(cmd, engine, res.Events)
			}
			return a.write(cmd, a.runQuery(engine, res.Events, joinQuery(args)))
		},
	}

	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Read queries from stdin as they are typed")
	return cmd
}

func (a *app) runQuery(engine *search.Engine, events []*event.Event, query string) *SearchResult {
	start := time.Now()
	found := engine.Search(events, query)
	a.metrics.RecordTiming("search.query", time.Since(start))
	a.metrics.IncrCounter("search.queries")

	now := a.now()
	today := timeline.Today(now)
	result := &SearchResult{
		Query:      query,
		Events:     newEventViews(found, now, today, false),
		EventCount: len(found),
	}
	if q := search.Normalize(query); q != "" {
		result.Spellings = translit.Expand(q)
	}
	return result
}

// interactiveSearch feeds stdin lines through a debouncer. At end of input
// the latest query is shown if the debouncer had not run it yet.
func (a *app) interactiveSearch(cmd *cobra.Command, engine *search.Engine, events []*event.Event) error {
	var (
		mu      sync.Mutex
		closed  bool
		ran     bool
		lastRun string
	)

	// emit must be called with mu held
	emit := func(query string) {
		if ran && query == lastRun {
			return
		}
		ran, lastRun = true, query
		if err := a.write(cmd, a.runQuery(engine, events, query)); err != nil {
			a.log.Warn("search output failed", logger.Fields{"error": err.Error()})
		}
	}

	debouncer := search.NewDebouncer(a.cfg.Search.Debounce, func(query string) {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			emit(query)
		}
	})

	var (
		last      string
		submitted bool
	)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		last, submitted = scanner.Text(), true
		debouncer.Submit(last)
	}
	debouncer.Stop()

	mu.Lock()
	closed = true
	if submitted {
		emit(last)
	}
	mu.Unlock()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}
	return nil
}
