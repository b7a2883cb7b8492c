package normalization

import (
	"fmt"
	"strings"
	"time"

	"github.com/projectdesert/backend/internal/apierr"
)

// Layouts accepted for externally supplied dates. A bare date and RFC3339
// cover both frontend forms ("2026-01-05" and "2026-01-05T00:00:00Z").
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDay parses an ISO-8601 date or date-time string and truncates it to
// the day, anchored at UTC midnight. Two inputs differing only in
// time-of-day or UTC suffix map to the same day.
func ParseDay(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, apierr.InvalidDateFormat(fmt.Errorf("empty date"))
	}
	for _, layout := range dayLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		utc := parsed.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apierr.InvalidDateFormat(fmt.Errorf("invalid date format: %q", raw))
}

// ParseCompactDay parses the YYYYMMDD form used by the Universalis readings
// endpoint.
func ParseCompactDay(raw string) (time.Time, error) {
	parsed, err := time.Parse("20060102", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apierr.InvalidDateFormat(fmt.Errorf("invalid date format: %q", raw))
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
