package pipeline

import (
	"context"
	"sync"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/logger"
)

// Watcher reloads the feed and reports what changed since the previous
// successful load. The first poll reports every event as new.
type Watcher struct {
	pipeline *Pipeline

	mu       sync.Mutex
	previous *event.Snapshot
}

// NewWatcher creates a Watcher over p
func NewWatcher(p *Pipeline) *Watcher {
	return &Watcher{pipeline: p}
}

// Poll runs one load. A failed load leaves the previous snapshot in place so
// the next successful poll diffs against the last good list.
func (w *Watcher) Poll(ctx context.Context) (*Result, *event.DiffResult, error) {
	res, err := w.pipeline.Load(ctx)
	if err != nil {
		return res, nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	diff := event.Diff(w.previous, res.Events)
	w.previous = event.CreateSnapshot(res.Events, res.LoadedAt)

	if diff.HasChanges() {
		w.pipeline.log.Info("feed changed", logger.Fields{
			"run_id":  res.RunID,
			"new":     len(diff.NewEvents),
			"removed": len(diff.RemovedEvents),
		})
	}

	return res, diff, nil
}

// Current returns the snapshot of the last successful poll, or nil
func (w *Watcher) Current() *event.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.previous
}
