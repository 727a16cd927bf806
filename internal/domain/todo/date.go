package todo

import (
	"errors"
	"math"
	"strings"
	"time"
)

var errInvalidDate = errors.New("invalid date")

// maxEpochMillis is the largest timestamp magnitude a client clock can
// express: 1e8 days either side of the Unix epoch.
const maxEpochMillis = 8.64e15

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006/01/02",
	"2006/01/02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
}

// ParseDate parses a client-supplied date or date-time string.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errInvalidDate
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return inRange(ts.UTC())
		}
	}
	return time.Time{}, errInvalidDate
}

// FromEpochMillis converts a millisecond Unix timestamp to UTC time.
// Fractions of a millisecond are dropped.
func FromEpochMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, errInvalidDate
	}
	return inRange(time.UnixMilli(int64(ms)).UTC())
}

// inRange rejects instants that cannot be stored or rendered as a four-digit
// ISO-8601 year, and the zero time, which stores read back as unset.
func inRange(ts time.Time) (time.Time, error) {
	if ts.IsZero() || ts.Year() < 0 || ts.Year() > 9999 {
		return time.Time{}, errInvalidDate
	}
	return ts, nil
}
