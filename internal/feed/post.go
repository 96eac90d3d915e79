package feed

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoDate is returned for posts without a DD.MM date
	ErrNoDate = errors.New("post has no DD.MM date")
	// ErrEmptyLocation is returned for posts without a 📍 location line
	ErrEmptyLocation = errors.New("post has no location")
)

var (
	postDatePattern   = regexp.MustCompile(`\b(\d{2})\.(\d{2})\b`)
	postPinPattern    = regexp.MustCompile(`📍\s*(.+)`)
	titlePrefix       = regexp.MustCompile(`^\s*\d{2}\.\d{2}\s*\|\s*`)
	settlementPattern = regexp.MustCompile(`(?i)(калининград|гурьевск|светлогорск|янтарный|зеленоградск|пионерский|балтийск|поселок|пос\.|г\.)`)
)

// PostOptions configures wall post extraction
type PostOptions struct {
	Year int    // posts carry only day and month
	City string // appended to locations that name no settlement
}

// ExtractPost turns a wall post into a record.
//
// The first DD.MM in the text is the date. The location is the rest of the
// line after 📍, cut at ➡️; when it names no known settlement the city is
// appended. The title is the first line without its "DD.MM |" prefix.
func ExtractPost(text string, opts PostOptions) (Record, error) {
	m := postDatePattern.FindStringSubmatch(text)
	if m == nil {
		return Record{}, ErrNoDate
	}

	pin := postPinPattern.FindStringSubmatch(text)
	if pin == nil {
		return Record{}, ErrEmptyLocation
	}

	location := pin[1]
	if i := strings.Index(location, "➡"); i >= 0 {
		location = location[:i]
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return Record{}, ErrEmptyLocation
	}
	if opts.City != "" && !namesSettlement(location, opts.City) {
		location += ", " + opts.City
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	title := strings.TrimSpace(titlePrefix.ReplaceAllString(firstLine, ""))

	return Record{
		Title:    title,
		Location: location,
		Date:     fmt.Sprintf("%04d-%s-%s", opts.Year, m[2], m[1]),
		Text:     text,
	}, nil
}

func namesSettlement(location, city string) bool {
	if settlementPattern.MatchString(location) {
		return true
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(city))
}
