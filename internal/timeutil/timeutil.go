package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CombineDateTime applies an HH:MM[:SS] time-of-day string onto a calendar
// date, producing an absolute timestamp in loc (time.Local when nil).
// The date may be a plain YYYY-MM-DD or a full RFC3339 timestamp; the
// time-of-day may be empty or partially malformed, in which case the missing
// components default to midnight. The function never fails: an unparseable
// date yields the zero date combined with whatever time-of-day was given.
func CombineDateTime(date, timeOfDay string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	base, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		if parsed, rfcErr := time.Parse(time.RFC3339, date); rfcErr == nil {
			base = parsed.In(loc)
		}
	}

	hour, minute := parseTimeOfDay(timeOfDay)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc)
}

// parseTimeOfDay splits HH:MM[:SS], treating missing or malformed components
// as zero. Seconds are ignored.
func parseTimeOfDay(value string) (hour, minute int) {
	if value == "" {
		return 0, 0
	}
	parts := strings.Split(value, ":")
	hour = clampComponent(numberOrZero(parts[0]), 23)
	if len(parts) > 1 {
		minute = clampComponent(numberOrZero(parts[1]), 59)
	}
	return hour, minute
}

func numberOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func clampComponent(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
