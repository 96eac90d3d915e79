package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultCity is the city suffix stripped from feed locations
const DefaultCity = "Калининград"

// suffixPattern matches ", <city>" at the end of a location
func suffixPattern(city string) *regexp.Regexp {
	return regexp.MustCompile(`(?i),?\s*` + regexp.QuoteMeta(city) + `\s*$`)
}

var defaultSuffix = suffixPattern(DefaultCity)

// FormatLocation strips a trailing city name (with an optional comma) and
// surrounding whitespace. Applying it twice gives the same result as once.
func FormatLocation(location, city string) string {
	pattern := defaultSuffix
	if city != "" && city != DefaultCity {
		pattern = suffixPattern(city)
	}
	return formatLocation(location, pattern)
}

func formatLocation(location string, suffix *regexp.Regexp) string {
	s := norm.NFC.String(location)
	for {
		stripped := strings.TrimSpace(suffix.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}
