package models

import (
	"fmt"
	"slices"
	"time"
)

// AllLocations matches any requested location.
const AllLocations = "ALL"

// Banner is a loaded banner definition. It is never mutated after loading.
type Banner struct {
	ID          string
	Title       string
	Description string
	ActiveFrom  time.Time
	ActiveUntil time.Time
	Locations   []string
	Condition   Condition
}

// DefaultBanner is returned when nothing matches or the matched asset is missing.
var DefaultBanner = Banner{ //nolint:gochecknoglobals
	ID:          "default",
	Title:       "Default Banner",
	Description: "This is a default banner.",
	ActiveFrom:  time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	ActiveUntil: time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC),
	Locations:   []string{AllLocations},
}

// ActiveAt reports whether t lies in [ActiveFrom, ActiveUntil].
// An inverted window never matches.
func (b Banner) ActiveAt(t time.Time) bool {
	return !t.Before(b.ActiveFrom) && !t.After(b.ActiveUntil)
}

func (b Banner) ServesLocation(location string) bool {
	return slices.Contains(b.Locations, location) || slices.Contains(b.Locations, AllLocations)
}

func (b Banner) String() string {
	return fmt.Sprintf("Banner(id=%s, title=%s, active_from=%s, active_until=%s)",
		b.ID, b.Title, b.ActiveFrom.Format(time.RFC3339), b.ActiveUntil.Format(time.RFC3339))
}

// timeLayouts are the accepted ISO 8601 date-time forms, tried in order.
// Every form requires a Z suffix or an explicit offset.
var timeLayouts = []string{ //nolint:gochecknoglobals
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// ParseTime parses an ISO 8601 date-time with a T or space separator and
// minute or finer precision. The result is normalized to UTC.
// Date-only, offset-less and padded values are rejected.
func ParseTime(s string) (time.Time, error) {
	var firstErr error

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, fmt.Errorf("parse time %q error: %w", s, firstErr)
}
