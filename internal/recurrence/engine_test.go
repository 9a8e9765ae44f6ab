package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

func date(year int, month time.Month, day int) time.Time {
	return dateutil.Date(year, month, day)
}

func expandOrFail(t *testing.T, kind Kind, anchor, end time.Time, weekday time.Weekday, nthWeek int) []time.Time {
	t.Helper()
	dates, err := Expand(kind, anchor, end, weekday, nthWeek)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	return dates
}

func assertDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expansion produced %d dates, want %d: got %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date[%d] = %s, want %s", i, dateutil.FormatDate(got[i]), dateutil.FormatDate(want[i]))
		}
	}
}

func TestExpand_Weekly(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.January, 1)
	got := expandOrFail(t, KindWeekly, anchor, date(2024, time.January, 29), anchor.Weekday(), DeriveNthWeek(anchor))

	assertDates(t, got,
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
		date(2024, time.January, 29),
	)
}

func TestExpand_WeeklyStopsBeforeEnd(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.January, 1)
	got := expandOrFail(t, KindWeekly, anchor, date(2024, time.January, 28), anchor.Weekday(), 1)

	if len(got) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(got))
	}
	if last := got[len(got)-1]; !last.Equal(date(2024, time.January, 22)) {
		t.Errorf("last occurrence = %s, want 2024-01-22", dateutil.FormatDate(last))
	}
}

func TestExpand_MonthlyFixedDateClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.January, 31)
	got := expandOrFail(t, KindMonthlyFixedDate, anchor, date(2024, time.April, 30), anchor.Weekday(), DeriveNthWeek(anchor))

	assertDates(t, got,
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	)
}

func TestExpand_MonthlyFixedDateClampsThroughShorterMonths(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.May, 31)
	got := expandOrFail(t, KindMonthlyFixedDate, anchor, date(2024, time.July, 31), anchor.Weekday(), 5)

	assertDates(t, got,
		date(2024, time.May, 31),
		date(2024, time.June, 30),
		date(2024, time.July, 31),
	)
}

func TestExpand_MonthlyNthWeekdaySkipsMonthsWithoutOccurrence(t *testing.T) {
	t.Parallel()

	// 2024-01-29 is a 5th Monday; February and March 2024 have no 5th Monday.
	anchor := date(2024, time.January, 29)
	got := expandOrFail(t, KindMonthlyNthWeekday, anchor, date(2024, time.March, 31), time.Monday, 5)

	assertDates(t, got, date(2024, time.January, 29))
}

func TestExpand_MonthlyNthWeekdayAcrossYearBoundary(t *testing.T) {
	t.Parallel()

	// Second Tuesday, November 2024 through February 2025.
	anchor := date(2024, time.November, 12)
	got := expandOrFail(t, KindMonthlyNthWeekday, anchor, date(2025, time.February, 28), time.Tuesday, 2)

	assertDates(t, got,
		date(2024, time.November, 12),
		date(2024, time.December, 10),
		date(2025, time.January, 14),
		date(2025, time.February, 11),
	)

	for i := 1; i < len(got); i++ {
		if !got[i-1].Before(got[i]) {
			t.Errorf("expansion is not sorted ascending at index %d", i)
		}
	}
}

func TestExpand_AnchorAfterEndDegeneratesToAnchor(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.June, 10)
	got := expandOrFail(t, KindWeekly, anchor, date(2024, time.June, 3), anchor.Weekday(), 1)

	assertDates(t, got, anchor)
}

func TestExpand_InvalidKind(t *testing.T) {
	t.Parallel()

	if _, err := Expand(KindNone, date(2024, time.June, 10), date(2024, time.July, 10), time.Monday, 1); err == nil {
		t.Error("expected error expanding KindNone")
	}
	if _, err := Expand(Kind("yearly"), date(2024, time.June, 10), date(2024, time.July, 10), time.Monday, 1); err == nil {
		t.Error("expected error expanding an unknown kind")
	}
}

func TestExpand_InvalidKindWithReversedRange(t *testing.T) {
	t.Parallel()

	// Kind validation wins over the degenerate anchor-after-end fallback.
	got, err := Expand(Kind("yearly"), date(2024, time.June, 10), date(2024, time.June, 3), time.Monday, 1)
	if !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no dates for an invalid kind, got %v", got)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value   string
		want    Kind
		wantErr bool
	}{
		{"", KindNone, false},
		{"none", KindNone, false},
		{"weekly", KindWeekly, false},
		{"monthly_fixed_date", KindMonthlyFixedDate, false},
		{"monthly_nth_weekday", KindMonthlyNthWeekday, false},
		{"daily", KindNone, true},
		{"WEEKLY", KindNone, true},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) succeeded, want error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) returned error: %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestDeriveNthWeek(t *testing.T) {
	t.Parallel()

	cases := []struct {
		day  int
		want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {28, 4}, {29, 5}, {31, 5},
	}

	for _, tc := range cases {
		anchor := date(2024, time.January, tc.day)
		if got := DeriveNthWeek(anchor); got != tc.want {
			t.Errorf("DeriveNthWeek(day %d) = %d, want %d", tc.day, got, tc.want)
		}
	}
}
