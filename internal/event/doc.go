// Package event provides the canonical event record and helpers for identifying,
// dating and comparing events across feed loads.
//
// Each event is assigned a deterministic content-derived ID built from its date,
// title and feed-supplied coordinates, so repeated feed entries resolve to the same
// logical event across reloads.
package event
