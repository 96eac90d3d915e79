// Package config loads afisha-events settings from a YAML file, AFISHA_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // Europe/Kaliningrad on hosts without a zoneinfo database

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/afisha-events/internal/filter"
	"github.com/pfrederiksen/afisha-events/internal/logger"
)

// EnvPrefix prefixes environment overrides: AFISHA_FEED_URL, AFISHA_SEARCH_LIMIT, ...
const EnvPrefix = "AFISHA"

// Config holds all settings
type Config struct {
	FeedURL     string `mapstructure:"feed_url" yaml:"feed_url"`
	GeocodeURL  string `mapstructure:"geocode_url" yaml:"geocode_url"`
	Timezone    string `mapstructure:"timezone" yaml:"timezone"`
	City        string `mapstructure:"city" yaml:"city"`
	DefaultYear int    `mapstructure:"default_year" yaml:"default_year"`

	Search SearchConfig `mapstructure:"search" yaml:"search"`
	Watch  WatchConfig  `mapstructure:"watch" yaml:"watch"`
	HTTP   HTTPConfig   `mapstructure:"http" yaml:"http"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`

	// Named filters usable with "list --preset"
	Presets map[string]filter.Filter `mapstructure:"presets" yaml:"presets,omitempty"`

	location *time.Location
}

// SearchConfig tunes search behavior
type SearchConfig struct {
	Debounce    time.Duration `mapstructure:"debounce" yaml:"debounce"`
	Suggestions int           `mapstructure:"suggestions" yaml:"suggestions"`
	Limit       int           `mapstructure:"limit" yaml:"limit"`
}

// WatchConfig schedules reloads in watch mode
type WatchConfig struct {
	Cron string `mapstructure:"cron" yaml:"cron"`
}

// HTTPConfig configures resource fetching
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultPath returns $XDG_CONFIG_HOME/afisha-events/config.yaml, or ""
// when no user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "afisha-events", "config.yaml")
}

// New creates a viper instance with defaults and environment bindings.
// Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or the default path when empty) into v and decodes the
// result. A missing default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case !explicit && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)):
				// defaults and environment only
			default:
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.FeedURL == "" {
		return errors.New("feed_url must be set")
	}
	if c.City == "" {
		return errors.New("city must be set")
	}
	if c.DefaultYear < 1970 || c.DefaultYear > 9999 {
		return fmt.Errorf("default_year %d out of range", c.DefaultYear)
	}
	if c.Search.Suggestions < 1 {
		return fmt.Errorf("search.suggestions must be positive, got %d", c.Search.Suggestions)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if _, err := cron.ParseStandard(c.Watch.Cron); err != nil {
		return fmt.Errorf("invalid watch.cron %q: %w", c.Watch.Cron, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	for name, preset := range c.Presets {
		if err := preset.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	return nil
}

// Location returns the configured time zone. Valid after Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Preset returns a copy of a named filter
func (c *Config) Preset(name string) (*filter.Filter, error) {
	preset, ok := c.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return preset.Clone(), nil
}
