package model

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted from the backends. Date-times without a zone are wall
// clock times.
const (
	zonedLayout    = time.RFC3339Nano
	dateOnlyLayout = "2006-01-02"
)

var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LocalDateTimeLayout is the form input layout for start/end times
const LocalDateTimeLayout = "2006-01-02T15:04"

// ParseTimestamp parses a backend timestamp, reading zone-less date-times
// in time.Local. Unparseable or empty values become the zero time; the
// client tolerates sloppy backend data.
func ParseTimestamp(s string) time.Time {
	return ParseTimestampIn(s, time.Local)
}

// ParseTimestampIn is ParseTimestamp with zone-less date-times read in loc.
// A bare date is midnight UTC.
func ParseTimestampIn(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(zonedLayout, s); err == nil {
		return t
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

// FormatTimestamp renders a timestamp the way the backends expect (UTC, second precision)
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ParseLocalDateTime converts a form value like "2025-11-20T18:00" in loc to UTC
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(LocalDateTimeLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DDTHH:MM, got %q", s)
	}
	return t.UTC(), nil
}

// Day is a calendar day without a time zone
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay parses "YYYY-MM-DD"
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return DayOf(t), nil
}

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Contains reports whether t falls on this day as seen from loc
func (d Day) Contains(t time.Time, loc *time.Location) bool {
	if t.IsZero() {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	return DayOf(t.In(loc)) == d
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
