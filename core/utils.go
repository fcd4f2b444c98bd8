package core

import (
	"strings"
	"time"
)

// DateFormat is the wire format for calendar dates (due dates, birth
// dates, joining dates). Matches the `datetime` validation tags.
const DateFormat = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate parses a DateFormat string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
