package calendarview

import (
	"testing"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

func TestMonthLayout_GridIsAlwaysSixBySeven(t *testing.T) {
	t.Parallel()

	for year := 2023; year <= 2026; year++ {
		for month0 := 0; month0 < 12; month0++ {
			grid, err := MonthLayout(year, month0, nil)
			if err != nil {
				t.Fatalf("MonthLayout(%d, %d) returned error: %v", year, month0, err)
			}

			seen := make(map[int]int)
			for _, week := range grid.Weeks {
				for _, cell := range week {
					if cell == nil {
						continue
					}
					seen[cell.Day]++
				}
			}

			total := dateutil.DaysInMonth(year, time.Month(month0+1))
			if len(seen) != total {
				t.Errorf("%d-%02d: grid holds %d distinct days, want %d", year, month0+1, len(seen), total)
			}
			for day, count := range seen {
				if count != 1 {
					t.Errorf("%d-%02d: day %d appears %d times", year, month0+1, day, count)
				}
			}
		}
	}
}

func TestMonthLayout_MondayFirstPadding(t *testing.T) {
	t.Parallel()

	// June 2024 starts on a Saturday: five leading nil cells.
	grid, err := MonthLayout(2024, 5, nil)
	if err != nil {
		t.Fatalf("MonthLayout returned error: %v", err)
	}

	for col := 0; col < 5; col++ {
		if grid.Weeks[0][col] != nil {
			t.Errorf("expected leading padding at column %d", col)
		}
	}
	cell := grid.Weeks[0][5]
	if cell == nil || cell.Day != 1 {
		t.Fatalf("expected June 1st in column 5, got %+v", cell)
	}
	if cell.Date.Weekday() != time.Saturday {
		t.Errorf("June 1st 2024 should be a Saturday, got %s", cell.Date.Weekday())
	}

	// June 2024 spans five calendar weeks; the sixth row is all padding.
	for col, cell := range grid.Weeks[5] {
		if cell != nil {
			t.Errorf("expected trailing all-nil week, found day %d at column %d", cell.Day, col)
		}
	}
}

func TestMonthLayout_BucketsEventsByDate(t *testing.T) {
	t.Parallel()

	events := []Event{
		{ID: "a", Start: time.Date(2024, time.February, 10, 14, 0, 0, 0, time.UTC), End: time.Date(2024, time.February, 10, 16, 0, 0, 0, time.UTC)},
		{ID: "b", Start: time.Date(2024, time.February, 10, 18, 0, 0, 0, time.UTC), End: time.Date(2024, time.February, 10, 19, 0, 0, 0, time.UTC)},
		{ID: "outside", Start: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)},
	}

	grid, err := MonthLayout(2024, 1, events)
	if err != nil {
		t.Fatalf("MonthLayout returned error: %v", err)
	}

	var day10 *MonthCell
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell != nil && cell.Day == 10 {
				day10 = cell
			} else if cell != nil && len(cell.Events) != 0 {
				t.Errorf("day %d unexpectedly holds %d events", cell.Day, len(cell.Events))
			}
		}
	}

	if day10 == nil {
		t.Fatal("day 10 missing from grid")
	}
	if len(day10.Events) != 2 {
		t.Fatalf("day 10 holds %d events, want 2", len(day10.Events))
	}
}

func TestMonthLayout_RejectsBadMonthIndex(t *testing.T) {
	t.Parallel()

	for _, month0 := range []int{-1, 12, 99} {
		if _, err := MonthLayout(2024, month0, nil); err == nil {
			t.Errorf("MonthLayout accepted month index %d", month0)
		}
	}
}
