package event

import (
	"fmt"
	"strconv"
	"unicode/utf16"
)

const (
	idPrefix  = "e"
	hashSeed  = 5381
	keyJoiner = "|"
)

// IdentityKey builds the string the event ID is derived from.
// Absent coordinates render as empty strings.
func IdentityKey(e *Event) string {
	return e.Date + keyJoiner + e.Title + keyJoiner + formatCoord(e.Lat) + keyJoiner + formatCoord(e.Lon)
}

// AssignID derives the deterministic, non-cryptographic ID of an event.
// The key is hashed with a multiply-by-33 rolling hash over its UTF-16 code
// units with 32-bit wraparound, so identical keys always collide.
func AssignID(e *Event) string {
	return fmt.Sprintf("%s%08x", idPrefix, hashKey(IdentityKey(e)))
}

func hashKey(key string) uint32 {
	h := uint32(hashSeed)
	for _, unit := range utf16.Encode([]rune(key)) {
		h = h*33 + uint32(unit)
	}
	return h
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
