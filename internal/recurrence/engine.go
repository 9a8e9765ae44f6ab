// Package recurrence expands a series rule into the concrete dates of its
// occurrences. Expansion is pure: the same rule and bounds always produce the
// same sorted, de-duplicated date list.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

// Kind identifies a supported recurrence pattern.
type Kind string

const (
	// KindNone marks a one-off session with no recurrence.
	KindNone Kind = "none"
	// KindWeekly repeats every 7 days from the anchor date.
	KindWeekly Kind = "weekly"
	// KindMonthlyFixedDate repeats on the anchor's day-of-month, clamped to
	// shorter months.
	KindMonthlyFixedDate Kind = "monthly_fixed_date"
	// KindMonthlyNthWeekday repeats on the n-th weekday of each month, skipping
	// months without that occurrence.
	KindMonthlyNthWeekday Kind = "monthly_nth_weekday"
)

// ErrInvalidKind indicates an unsupported recurrence kind.
var ErrInvalidKind = errors.New("recurrence: invalid kind")

// ParseKind validates a wire-level kind value. The empty string maps to KindNone.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindNone, "":
		return KindNone, nil
	case KindWeekly:
		return KindWeekly, nil
	case KindMonthlyFixedDate:
		return KindMonthlyFixedDate, nil
	case KindMonthlyNthWeekday:
		return KindMonthlyNthWeekday, nil
	}
	return KindNone, fmt.Errorf("%w: %q", ErrInvalidKind, value)
}

// Rule carries the generating parameters of one series. Weekday and NthWeek
// are derived from the anchor date at submission time and never change; only
// EndsOn may be adjusted after creation.
type Rule struct {
	ID       string
	Kind     Kind
	Weekday  time.Weekday
	NthWeek  int
	AnchorOn time.Time
	EndsOn   time.Time
}

// DeriveWeekday reports the weekday recurrence parameter implied by an anchor date.
func DeriveWeekday(anchor time.Time) time.Weekday {
	return dateutil.DayOfWeek(anchor)
}

// DeriveNthWeek reports which occurrence of its weekday the anchor date is
// within its month: ceil(day / 7), clamped to 5.
func DeriveNthWeek(anchor time.Time) int {
	nth := (anchor.Day() + 6) / 7
	if nth > 5 {
		nth = 5
	}
	return nth
}

// Expand produces the ordered occurrence dates of a rule between its anchor
// and end date, both inclusive where they satisfy the pattern.
//
// When the anchor lies after the end date the expansion degenerates to the
// anchor alone. That fallback mirrors long-standing behavior and is kept as an
// explicit branch so the intent is visible at the call site.
func Expand(kind Kind, anchor, end time.Time, weekday time.Weekday, nthWeek int) ([]time.Time, error) {
	switch kind {
	case KindWeekly, KindMonthlyFixedDate, KindMonthlyNthWeekday:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	anchor = dateutil.Truncate(anchor)
	end = dateutil.Truncate(end)

	if anchor.After(end) {
		return degenerateSingleOccurrence(anchor), nil
	}

	var dates []time.Time
	switch kind {
	case KindWeekly:
		for d := anchor; !d.After(end); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}

	case KindMonthlyFixedDate:
		day := anchor.Day()
		forEachMonth(anchor, end, func(year int, month time.Month) {
			dom := day
			if last := dateutil.DaysInMonth(year, month); dom > last {
				dom = last
			}
			candidate := dateutil.Date(year, month, dom)
			// Clamping can pull the first candidate before the anchor.
			if candidate.Before(anchor) || candidate.After(end) {
				return
			}
			dates = append(dates, candidate)
		})

	case KindMonthlyNthWeekday:
		forEachMonth(anchor, end, func(year int, month time.Month) {
			candidate, ok := dateutil.NthWeekdayOfMonth(year, month, weekday, nthWeek).Get()
			if !ok {
				// A month without an n-th occurrence contributes nothing.
				return
			}
			if candidate.Before(anchor) || candidate.After(end) {
				return
			}
			dates = append(dates, candidate)
		})
	}

	return sortedUnique(dates), nil
}

// ExpandRule is a convenience wrapper over Expand for a materialized rule.
func ExpandRule(rule Rule) ([]time.Time, error) {
	return Expand(rule.Kind, rule.AnchorOn, rule.EndsOn, rule.Weekday, rule.NthWeek)
}

func degenerateSingleOccurrence(anchor time.Time) []time.Time {
	return []time.Time{anchor}
}

// forEachMonth visits every (year, month) pair from the month of from to the
// month of to, inclusive, iterating year-then-month.
func forEachMonth(from, to time.Time, visit func(year int, month time.Month)) {
	year, month := from.Year(), from.Month()
	for year < to.Year() || (year == to.Year() && month <= to.Month()) {
		visit(year, month)
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
}

func sortedUnique(dates []time.Time) []time.Time {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := dates[:0]
	for i, d := range dates {
		if i > 0 && d.Equal(dates[i-1]) {
			continue
		}
		out = append(out, d)
	}
	return out
}
