package cli

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/logger"
	"github.com/pfrederiksen/afisha-events/internal/pipeline"
	"github.com/pfrederiksen/afisha-events/internal/timeline"
)

func newWatchCmd(a *app) *cobra.Command {
	var flagOnce bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the feed on a schedule and report new and removed events",
		Long: `Reload the feed on the watch.cron schedule and print the events added or
removed since the previous successful load. The first load reports every
event as new. A failed reload is logged and the next one compares against
the last good list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := pipeline.NewWatcher(a.pipeline())
			if flagOnce {
				return a.poll(cmd, w)
			}
			return a.watch(cmd.Context(), cmd, w)
		},
	}

	cmd.Flags().BoolVar(&flagOnce, "once", false, "Load once, print the report and exit")
	cmd.Flags().String("cron", "", "Reload schedule in cron syntax (default from watch.cron)")
	a.bind("watch.cron", cmd.Flags().Lookup("cron"))
	return cmd
}

// poll runs one reload and prints its report
func (a *app) poll(cmd *cobra.Command, w *pipeline.Watcher) error {
	res, diff, err := w.Poll(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	return a.write(cmd, a.watchReport(res, diff))
}

// watch polls immediately and then on every cron tick until ctx is done.
// Overlapping ticks are skipped.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, w *pipeline.Watcher) error {
	job := func() {
		if err := a.poll(cmd, w); err != nil {
			a.log.Error("reload failed", logger.Fields{"feed_url": a.cfg.FeedURL}, err)
		}
	}

	c := cron.New(
		cron.WithLocation(a.cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(a.cfg.Watch.Cron, job); err != nil {
		return fmt.Errorf("scheduling reloads: %w", err)
	}

	job()
	c.Start()
	a.log.Info("watching feed", logger.Fields{
		"feed_url": a.cfg.FeedURL,
		"schedule": a.cfg.Watch.Cron,
	})

	<-ctx.Done()
	<-c.Stop().Done()
	a.log.Info("watch stopped", nil)
	return nil
}

func (a *app) watchReport(res *pipeline.Result, diff *event.DiffResult) *WatchReport {
	now := a.now()
	today := timeline.Today(now)
	return &WatchReport{
		RunID:         res.RunID,
		LoadedAt:      res.LoadedAt.In(a.cfg.Location()),
		EventCount:    len(res.Events),
		NewEvents:     newEventViews(diff.NewEvents, now, today, false),
		RemovedEvents: newEventViews(diff.RemovedEvents, now, today, false),
	}
}
