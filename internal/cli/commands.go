package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/afisha-events/internal/calendar"
	"github.com/pfrederiksen/afisha-events/internal/event"
	"github.com/pfrederiksen/afisha-events/internal/filter"
	"github.com/pfrederiksen/afisha-events/internal/logger"
	"github.com/pfrederiksen/afisha-events/internal/timeline"
)

func newUpcomingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show upcoming events grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			now := a.now()
			today := timeline.Today(now)
			upcoming, _ := timeline.Partition(res.Events, now, today)

			result := &UpcomingResult{
				Now:        now,
				Sections:   make([]SectionView, 0),
				EventCount: len(upcoming),
			}
			for _, section := range timeline.Group(upcoming, today) {
				result.Sections = append(result.Sections, SectionView{
					Label:  section.Label,
					Events: newEventViews(section.Events, now, today, false),
				})
			}

			return a.write(cmd, result)
		},
	}
}

func newArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Show past events, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			now := a.now()
			today := timeline.Today(now)
			_, archived := timeline.Partition(res.Events, now, today)
			archived = timeline.Archive(archived)

			return a.write(cmd, &ListResult{
				Now:         now,
				Description: "Archive:",
				Events:      newEventViews(archived, now, today, true),
				EventCount:  len(archived),
			})
		},
	}
}

func newDayCmd(a *app) *cobra.Command {
	var flagDate string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the events of one day",
		Long: `Show the events of one day. Without --date, today is shown when the
feed has anything from today on, and the first feed date otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDate != "" && !event.IsValidDate(flagDate) {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", flagDate)
			}

			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			now := a.now()
			today := timeline.Today(now)
			date := flagDate
			if date == "" {
				date = timeline.DefaultDate(res.Events, today)
			}
			events := timeline.OnDate(res.Events, date)

			result := &ListResult{
				Now:         now,
				Description: dayHeading(date, today),
				Date:        date,
				Events:      newEventViews(events, now, today, true),
				EventCount:  len(events),
			}
			if first, last, ok := timeline.DateRange(res.Events); ok {
				result.Available = &DateSpan{First: first, Last: last}
			}

			return a.write(cmd, result)
		},
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "Day to show (YYYY-MM-DD)")
	return cmd
}

// dayHeading renders "Завтра, 09.03.2025:"
func dayHeading(date, today string) string {
	heading := displayDate(date)
	if label := timeline.DayLabel(date, today); label != "" {
		heading = label + ", " + heading
	}
	return heading + ":"
}

func displayDate(date string) string {
	t := event.ParseDate(date)
	if t.IsZero() {
		return date
	}
	return t.Format("02.01.2006")
}

// filterFlags are the selection flags shared by list and export-ics
type filterFlags struct {
	from     string
	to       string
	span     string
	weekends bool
	placed   bool
	venues   []string
	titles   []string
	preset   string
	upcoming bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.from, "from", "", "First day (YYYY-MM-DD)")
	flags.StringVar(&f.to, "to", "", "Last day (YYYY-MM-DD)")
	flags.StringVar(&f.span, "range", "", "Date range: 2025-03-01..2025-03-15, 2025-03-05, 2025-03 or a month name")
	flags.BoolVar(&f.weekends, "weekends", false, "Saturdays and Sundays only")
	flags.BoolVar(&f.placed, "placed", false, "Only events with coordinates")
	flags.StringSliceVar(&f.venues, "venue", nil, "Venue substring (repeatable)")
	flags.StringSliceVar(&f.titles, "title", nil, "Title substring (repeatable)")
	flags.StringVar(&f.preset, "preset", "", "Start from a filter preset of the config file")
	flags.BoolVar(&f.upcoming, "upcoming", false, "Skip events that are over")
}

// build combines the preset with the flags set on the command line
func (f *filterFlags) build(cmd *cobra.Command, a *app, today string) (*filter.Filter, error) {
	flt := filter.NewFilter()
	if f.preset != "" {
		preset, err := a.cfg.Preset(f.preset)
		if err != nil {
			return nil, err
		}
		flt = preset
	}

	flags := cmd.Flags()
	if f.span != "" {
		from, to, err := filter.ParseDateRange(f.span, today)
		if err != nil {
			return nil, err
		}
		flt.DateFrom, flt.DateTo = from, to
	}
	if flags.Changed("from") {
		flt.DateFrom = f.from
	}
	if flags.Changed("to") {
		flt.DateTo = f.to
	}
	if flags.Changed("weekends") {
		flt.WeekendsOnly = f.weekends
	}
	if flags.Changed("placed") {
		flt.PlacedOnly = f.placed
	}
	if len(f.venues) > 0 {
		flt.Venues = append(flt.Venues, f.venues...)
	}
	if len(f.titles) > 0 {
		flt.Titles = append(flt.Titles, f.titles...)
	}

	if err := flt.Validate(); err != nil {
		return nil, err
	}
	return flt, nil
}

// selectEvents loads the feed and applies the filter flags
func (f *filterFlags) selectEvents(cmd *cobra.Command, a *app) ([]*event.Event, *filter.Filter, error) {
	today := timeline.Today(a.now())
	flt, err := f.build(cmd, a, today)
	if err != nil {
		return nil, nil, err
	}

	res, err := a.load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	events := res.Events
	if f.upcoming {
		events, _ = timeline.Partition(events, a.now(), today)
	}
	events = flt.Apply(events)

	a.log.Debug("events selected", logger.Fields{
		"filter":   flt.String(),
		"total":    len(res.Events),
		"selected": len(events),
	})
	return events, flt, nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		ff       filterFlags
		flagSort string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events matching date, venue and title filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := ParseSortOrder(flagSort)
			if err != nil {
				return err
			}

			events, flt, err := ff.selectEvents(cmd, a)
			if err != nil {
				return err
			}

			selected := make([]*event.Event, len(events))
			copy(selected, events)
			sortEvents(selected, order)

			now := a.now()
			today := timeline.Today(now)
			return a.write(cmd, &ListResult{
				Now:         now,
				Description: flt.String(),
				Events:      newEventViews(selected, now, today, false),
				EventCount:  len(selected),
			})
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDate), "Sort order: date, title or location")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		ff         filterFlags
		flagOutput string
	)

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export events as an iCalendar file",
		Long: `Export the selected events as an iCalendar file. Writes to stdout unless
--output is given; an --output directory gets a file named after the dates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, _, err := ff.selectEvents(cmd, a)
			if err != nil {
				return err
			}

			ics := calendar.Generate(events, a.cfg.Location(), a.now())
			if flagOutput == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}

			path := flagOutput
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, calendar.Filename(events))
			}
			if err := os.WriteFile(path, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}

			a.log.Info("calendar exported", logger.Fields{
				"path":   path,
				"events": len(events),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(events), path)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file or directory")
	return cmd
}

// joinQuery turns the search arguments into one query
func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
