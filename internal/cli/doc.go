// Package cli implements the command-line interface for afisha-events.
//
// The cli package provides the Cobra-based CLI: the upcoming, archive and
// day views of the timeline, transliteration-aware search (optionally
// interactive with debounced input), filtered lists, iCalendar export and a
// cron-driven watch mode. Output is text, JSON or YAML. Settings come from
// the config package; every command loads the feed through the pipeline.
package cli
