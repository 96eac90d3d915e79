package config

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults registers default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("feed_url", "events.json")
	v.SetDefault("geocode_url", "geocode_cache.json")
	v.SetDefault("timezone", "Europe/Kaliningrad")
	v.SetDefault("city", "Калининград")
	v.SetDefault("default_year", time.Now().Year())

	v.SetDefault("search.debounce", 300*time.Millisecond)
	v.SetDefault("search.suggestions", 6)
	v.SetDefault("search.limit", 20)

	v.SetDefault("watch.cron", "*/30 * * * *")

	v.SetDefault("http.timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
}
