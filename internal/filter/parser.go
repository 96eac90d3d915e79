package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/afisha-events/internal/event"
)

var (
	isoRangePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*\.\.\s*(\d{4}-\d{2}-\d{2})$`)
	isoDayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoMonthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// ParseDateRange parses a date range into inclusive ISO bounds.
//
// Supported formats:
//   - "2025-03-01..2025-03-15" - explicit range
//   - "2025-03-05" - a single day
//   - "2025-03" - an entire month
//   - "март", "марта", "March", "Mar" - an entire month; the year is the one
//     of today, or the next one when the month has already passed
func ParseDateRange(input, today string) (from, to string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", fmt.Errorf("date range cannot be empty")
	}

	if m := isoRangePattern.FindStringSubmatch(input); m != nil {
		from, to = m[1], m[2]
		if !event.IsValidDate(from) || !event.IsValidDate(to) {
			return "", "", fmt.Errorf("invalid date in range %q", input)
		}
		if from > to {
			return "", "", fmt.Errorf("start date must be before end date")
		}
		return from, to, nil
	}

	if isoDayPattern.MatchString(input) {
		if !event.IsValidDate(input) {
			return "", "", fmt.Errorf("invalid date %q", input)
		}
		return input, input, nil
	}

	if m := isoMonthPattern.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return "", "", fmt.Errorf("invalid month: %s", m[2])
		}
		from, to = monthBounds(year, time.Month(month))
		return from, to, nil
	}

	if month := parseMonth(input); month != 0 {
		ref := event.ParseDate(today)
		if ref.IsZero() {
			ref = time.Now()
		}
		year := ref.Year()
		if month < ref.Month() {
			year++
		}
		from, to = monthBounds(year, month)
		return from, to, nil
	}

	return "", "", fmt.Errorf("invalid date range format. Use '2025-03-01..2025-03-15', '2025-03-05', '2025-03' or 'март'")
}

func monthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first.Format(event.DateLayout), last.Format(event.DateLayout)
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January, "янв": time.January, "январь": time.January, "января": time.January,
	"feb": time.February, "february": time.February, "фев": time.February, "февраль": time.February, "февраля": time.February,
	"mar": time.March, "march": time.March, "мар": time.March, "март": time.March, "марта": time.March,
	"apr": time.April, "april": time.April, "апр": time.April, "апрель": time.April, "апреля": time.April,
	"may": time.May, "май": time.May, "мая": time.May,
	"jun": time.June, "june": time.June, "июн": time.June, "июнь": time.June, "июня": time.June,
	"jul": time.July, "july": time.July, "июл": time.July, "июль": time.July, "июля": time.July,
	"aug": time.August, "august": time.August, "авг": time.August, "август": time.August, "августа": time.August,
	"sep": time.September, "september": time.September, "сен": time.September, "сентябрь": time.September, "сентября": time.September,
	"oct": time.October, "october": time.October, "окт": time.October, "октябрь": time.October, "октября": time.October,
	"nov": time.November, "november": time.November, "ноя": time.November, "ноябрь": time.November, "ноября": time.November,
	"dec": time.December, "december": time.December, "дек": time.December, "декабрь": time.December, "декабря": time.December,
}

// parseMonth converts an English or Russian month name to time.Month
func parseMonth(name string) time.Month {
	return monthNames[strings.ToLower(strings.TrimSpace(name))]
}
