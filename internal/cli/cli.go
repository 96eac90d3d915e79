package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/afisha-events/internal/config"
	"github.com/pfrederiksen/afisha-events/internal/feed"
	"github.com/pfrederiksen/afisha-events/internal/logger"
	"github.com/pfrederiksen/afisha-events/internal/pipeline"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app holds the state of one invocation, shared by all subcommands
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	log     *logger.Logger
	metrics *logger.Metrics
	source  *feed.Source
	format  OutputFormat
	fixed   time.Time // --now

	flagConfig  string
	flagFormat  string
	flagNow     string
	flagVerbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "afisha-events",
		Short: "Browse the Kaliningrad events feed",
		Long: `A CLI tool for the Kaliningrad events feed.
Shows upcoming and past events, searches titles and venues in Cyrillic or
Latin spelling, exports iCalendar files and watches the feed for changes.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/afisha-events/config.yaml)")
	flags.String("feed", "", "Event feed URL or file path")
	flags.String("geocode", "", "Geocode cache URL or file path")
	flags.StringVar(&a.flagFormat, "format", "text", "Output format: text, json or yaml")
	flags.BoolVar(&a.flagVerbose, "verbose", false, "Enable verbose output and debug logging")
	flags.StringVar(&a.flagNow, "now", "", "Evaluate as of this time (RFC 3339 or 2006-01-02T15:04)")

	a.bind("feed_url", flags.Lookup("feed"))
	a.bind("geocode_url", flags.Lookup("geocode"))

	cmd.AddCommand(
		newUpcomingCmd(a),
		newArchiveCmd(a),
		newDayCmd(a),
		newSearchCmd(a),
		newListCmd(a),
		newExportCmd(a),
		newWatchCmd(a),
	)

	return cmd
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}

// bind ties a config key to a flag. The key name is fixed at build time so
// a failure here is a programming error.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// setup loads configuration and builds the shared services
func (a *app) setup(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(a.flagFormat)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.v, a.flagConfig)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.flagVerbose {
		level = logger.LevelDebug
	}
	a.log = logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(a.log)
	a.metrics = logger.NewMetrics()
	a.source = feed.NewSource(cfg.HTTP.Timeout)

	a.fixed, err = parseNow(a.flagNow, cfg.Location())
	if err != nil {
		return err
	}

	a.log.Debug("configuration loaded", logger.Fields{
		"feed_url":    cfg.FeedURL,
		"geocode_url": cfg.GeocodeURL,
		"timezone":    cfg.Timezone,
		"command":     cmd.Name(),
	})
	return nil
}

// now returns the evaluation clock in the configured time zone
func (a *app) now() time.Time {
	if !a.fixed.IsZero() {
		return a.fixed
	}
	return time.Now().In(a.cfg.Location())
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.New(a.source, pipeline.Options{
		FeedURL:    a.cfg.FeedURL,
		GeocodeURL: a.cfg.GeocodeURL,
		City:       a.cfg.City,
		Year:       a.cfg.DefaultYear,
	}, a.log, a.metrics)
}

// load runs the pipeline once
func (a *app) load(ctx context.Context) (*pipeline.Result, error) {
	res, err := a.pipeline().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return res, nil
}

func (a *app) write(cmd *cobra.Command, result interface{}) error {
	if err := WriteOutput(cmd.OutOrStdout(), result, a.format, a.flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// parseNow reads --now. An RFC 3339 value keeps its instant; a zoneless
// value is read in loc.
func parseNow(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --now %q (use RFC 3339 or 2006-01-02T15:04)", value)
}
