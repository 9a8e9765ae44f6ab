package dateutil

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	t.Parallel()

	t.Run("returns the expected dates", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			year    int
			month   time.Month
			weekday time.Weekday
			n       int
			wantDay int
		}{
			{2024, time.January, time.Monday, 1, 1},
			{2024, time.January, time.Monday, 5, 29},
			{2024, time.February, time.Thursday, 4, 22},
			{2024, time.March, time.Friday, 5, 29},
			{2024, time.June, time.Saturday, 1, 1},
		}

		for _, tc := range cases {
			got, ok := NthWeekdayOfMonth(tc.year, tc.month, tc.weekday, tc.n).Get()
			if !ok {
				t.Errorf("NthWeekdayOfMonth(%d, %s, %s, %d) = None, want day %d", tc.year, tc.month, tc.weekday, tc.n, tc.wantDay)
				continue
			}
			if got.Day() != tc.wantDay {
				t.Errorf("NthWeekdayOfMonth(%d, %s, %s, %d) = day %d, want %d", tc.year, tc.month, tc.weekday, tc.n, got.Day(), tc.wantDay)
			}
		}
	})

	t.Run("reports None when the month runs out of weekdays", func(t *testing.T) {
		t.Parallel()

		// February 2024 has exactly four Mondays.
		if _, ok := NthWeekdayOfMonth(2024, time.February, time.Monday, 5).Get(); ok {
			t.Error("expected None for the 5th Monday of February 2024")
		}
		if _, ok := NthWeekdayOfMonth(2024, time.January, time.Friday, 0).Get(); ok {
			t.Error("expected None for n = 0")
		}
	})

	t.Run("result always lands on the requested weekday", func(t *testing.T) {
		t.Parallel()

		for month := time.January; month <= time.December; month++ {
			for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
				for n := 1; n <= 5; n++ {
					date, ok := NthWeekdayOfMonth(2024, month, weekday, n).Get()
					if !ok {
						continue
					}
					if date.Weekday() != weekday {
						t.Fatalf("NthWeekdayOfMonth(2024, %s, %s, %d) landed on %s", month, weekday, n, date.Weekday())
					}
					if date.Month() != month {
						t.Fatalf("NthWeekdayOfMonth(2024, %s, %s, %d) landed in %s", month, weekday, n, date.Month())
					}
					if want := n; (date.Day()+6)/7 != want {
						t.Fatalf("NthWeekdayOfMonth(2024, %s, %s, %d) = day %d, not the %d-th occurrence", month, weekday, n, date.Day(), n)
					}
				}
			}
		}
	})
}

func TestMinutesOfDay(t *testing.T) {
	t.Parallel()

	valid := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
		{" 14:00 ", 840},
	}
	for _, tc := range valid {
		got, err := MinutesOfDay(tc.clock)
		if err != nil {
			t.Errorf("MinutesOfDay(%q) returned error: %v", tc.clock, err)
			continue
		}
		if got != tc.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", tc.clock, got, tc.want)
		}
	}

	invalid := []string{"", "24:00", "12:60", "12", "ab:cd", "-1:00"}
	for _, clock := range invalid {
		if _, err := MinutesOfDay(clock); err == nil {
			t.Errorf("MinutesOfDay(%q) succeeded, want error", clock)
		}
	}
}

func TestTimeRangesOverlap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                           string
		startA, endA, startB, endB     string
		want                           bool
	}{
		{"partial overlap", "14:00", "16:00", "15:00", "17:00", true},
		{"containment", "09:00", "18:00", "10:00", "11:00", true},
		{"identical", "10:00", "12:00", "10:00", "12:00", true},
		{"touching boundary", "08:00", "10:00", "10:00", "12:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"malformed input", "08:00", "oops", "10:00", "11:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := TimeRangesOverlap(tc.startA, tc.endA, tc.startB, tc.endB)
			if got != tc.want {
				t.Errorf("TimeRangesOverlap(%q, %q, %q, %q) = %v, want %v", tc.startA, tc.endA, tc.startB, tc.endB, got, tc.want)
			}

			// Overlap is symmetric in its two ranges.
			mirrored := TimeRangesOverlap(tc.startB, tc.endB, tc.startA, tc.endA)
			if got != mirrored {
				t.Errorf("overlap is not symmetric for %q-%q vs %q-%q", tc.startA, tc.endA, tc.startB, tc.endB)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	date, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if want := Date(2024, time.February, 29); !date.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", date, want)
	}

	for _, value := range []string{"", "2024-13-01", "2023-02-29", "02/10/2024"} {
		if _, err := ParseDate(value); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", value)
		}
	}
}

func TestCombineDateClock(t *testing.T) {
	t.Parallel()

	date := Date(2024, time.February, 10)
	got, err := CombineDateClock(date, "14:30")
	if err != nil {
		t.Fatalf("CombineDateClock returned error: %v", err)
	}
	want := time.Date(2024, time.February, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateClock = %v, want %v", got, want)
	}

	if _, err := CombineDateClock(date, "25:00"); err == nil {
		t.Error("CombineDateClock accepted an invalid clock value")
	}
}
