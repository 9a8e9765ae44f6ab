// Package dateutil provides the pure date and wall-clock primitives the
// recurrence and conflict engines are built on. Dates are naive local values
// carried as midnight-UTC time.Time; clock values are "HH:MM" strings at
// minute resolution. No timezone conversion happens anywhere in this package.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// ISODate is the layout used for calendar dates throughout the scheduler.
const ISODate = "2006-01-02"

// ErrInvalidClock indicates a wall-clock value that is not of the form "HH:MM".
var ErrInvalidClock = errors.New("dateutil: invalid clock value")

// ErrInvalidDate indicates a calendar date that is not of the form "YYYY-MM-DD".
var ErrInvalidDate = errors.New("dateutil: invalid date value")

// Date constructs the canonical midnight-UTC representation of a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO "YYYY-MM-DD" value into its canonical representation.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(ISODate, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// FormatDate renders a date in ISO "YYYY-MM-DD" form.
func FormatDate(date time.Time) string {
	return date.Format(ISODate)
}

// Truncate drops any time-of-day component, returning the midnight-UTC date.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DayOfWeek reports the weekday of a calendar date.
func DayOfWeek(date time.Time) time.Weekday {
	return date.Weekday()
}

// DaysInMonth reports the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NthWeekdayOfMonth returns the date of the n-th occurrence of weekday within
// the given month, or None when the month has fewer than n such weekdays
// (there is no 5th Friday in most months). n is 1-based.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) mo.Option[time.Time] {
	if n < 1 {
		return mo.None[time.Time]()
	}

	first := Date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	if day > DaysInMonth(year, month) {
		return mo.None[time.Time]()
	}
	return mo.Some(Date(year, month, day))
}

// MinutesOfDay converts an "HH:MM" wall-clock value to minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	return hour*60 + minute, nil
}

// CombineDateClock attaches an "HH:MM" wall-clock value to a calendar date,
// producing the occurrence's start or end instant.
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	minutes, err := MinutesOfDay(clock)
	if err != nil {
		return time.Time{}, err
	}
	return Truncate(date).Add(time.Duration(minutes) * time.Minute), nil
}

// TimeRangesOverlap reports whether two "HH:MM" ranges overlap under half-open
// semantics: a range ending at 10:00 does not overlap one starting at 10:00.
// Malformed values report no overlap.
func TimeRangesOverlap(startA, endA, startB, endB string) bool {
	sa, err := MinutesOfDay(startA)
	if err != nil {
		return false
	}
	ea, err := MinutesOfDay(endA)
	if err != nil {
		return false
	}
	sb, err := MinutesOfDay(startB)
	if err != nil {
		return false
	}
	eb, err := MinutesOfDay(endB)
	if err != nil {
		return false
	}

	return sa < eb && ea > sb
}
