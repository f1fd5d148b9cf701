package transform

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// errEmptyTimestamp is returned for blank input; callers treat it as absent.
var errEmptyTimestamp = errors.New("empty timestamp")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp parses an upstream ISO-8601 timestamp. A trailing Z or a
// numeric offset is honoured; naive values are taken as UTC. The result is in
// UTC, truncated to microsecond precision.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errEmptyTimestamp
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// FormatTimestamp renders a normalized timestamp the way it is stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05.000000")
}

// parseOptional parses a possibly-absent timestamp. Absent input yields
// (nil, nil); malformed input yields (nil, err).
func parseOptional(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*raw)
	if errors.Is(err, errEmptyTimestamp) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
