package schedule

import (
	"errors"
	"time"
)

// DateLayout is the citizen-facing date format.
const DateLayout = "02/01/2006"

// ErrInvalidFormat marks a date string that is not a real "DD/MM/YYYY" date.
var ErrInvalidFormat = errors.New("invalid date format, expected DD/MM/YYYY")

// ParseDate parses a strict "DD/MM/YYYY" date. Any other shape, a non-numeric
// component, or a calendrically impossible date (e.g. 31/02/2025) fails.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return t, nil
}

// IsFutureOrToday reports whether the date is on or after now's calendar day.
// Only the calendar date matters; time-of-day is ignored.
func IsFutureOrToday(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// IsWeekend reports whether the date string falls on Saturday or Sunday.
// An unparsable date is treated as not a weekend; the date check elsewhere
// is responsible for rejecting it.
func IsWeekend(s string) bool {
	t, err := ParseDate(s)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// TimeZone is the fixed office zone; appointments never shift with DST.
var TimeZone = time.FixedZone("MYT", 8*60*60)

// SlotStart combines a "DD/MM/YYYY" date and an "HH:MM" slot label into the
// wall-clock start instant of that appointment in the office zone.
func SlotStart(dateStr, timeStr string) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, TimeZone), nil
}

// IsValidDate reports whether s is a real "DD/MM/YYYY" date that is today or
// later relative to now.
func IsValidDate(s string, now time.Time) bool {
	t, err := ParseDate(s)
	if err != nil {
		return false
	}
	return IsFutureOrToday(t, now)
}
