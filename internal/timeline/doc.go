// Package timeline classifies events as upcoming or archived relative to a
// clock reading and builds the labelled views shown to readers: day
// sections, the archive list and per-event date labels.
//
// Every function re-evaluates from the event date and description on each
// call. Nothing here stores an archived flag, so the same event moves from
// upcoming to archived as the clock advances.
package timeline
