// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour = 60
	DaysInAWeek     = 7
)

// DayLayout is the key format used for per-day aggregates.
const DayLayout = "2006-01-02"

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// WeekStart returns Monday 00:00 of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % DaysInAWeek

	return RoundToStart(t).AddDate(0, 0, -offset)
}

// WeekRange returns the half-open interval [Monday 00:00, next Monday 00:00)
// containing t.
func WeekRange(t time.Time) (start, end time.Time) {
	start = WeekStart(t)
	end = start.AddDate(0, 0, DaysInAWeek)

	return start, end
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// DayKey formats the calendar date of t.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// HourOf expresses the clock time of t as hours past midnight, so 14:30
// becomes 14.5.
func HourOf(t time.Time) float64 {
	return float64(t.Hour()) +
		float64(t.Minute())/minutesInAnHour +
		float64(t.Second())/(minutesInAnHour*minutesInAnHour)
}

// AtHour returns the time on the date of day at the given whole hour.
func AtHour(day time.Time, hour int) time.Time {
	return RoundToStart(day).Add(time.Duration(hour) * time.Hour)
}

// FromStr parses natural language and absolute date strings such as
// "tomorrow 9am", "last monday" or "2026-03-02 14:00" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q as a date: %w", s, err)
	}

	return dt.Time, nil
}
