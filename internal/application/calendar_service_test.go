package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/practice-scheduler/internal/calendarview"
	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
	"github.com/example/practice-scheduler/internal/testfixtures"
)

func newCalendarService(t *testing.T) (*CalendarService, *SeriesService, *testfixtures.MemoryStore) {
	t.Helper()
	store := testfixtures.NewMemoryStore()
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("cal")
	views := NewViewCache(time.Minute, 16, clock.NowFunc())
	calendar := NewCalendarService(store, store, views, calendarview.DefaultWindow(), clock.NowFunc(), nil)
	series := NewSeriesService(store, store, views, ids.NextFunc(), clock.NowFunc(), nil)
	return calendar, series, store
}

func TestMonthView(t *testing.T) {
	calendar, series, _ := newCalendarService(t)
	ctx := context.Background()

	if _, err := series.CreateSeries(ctx, weeklyInput()); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}

	grid, err := calendar.MonthView(ctx, 2026, time.February)
	if err != nil {
		t.Fatalf("MonthView failed: %v", err)
	}
	if grid.Year != 2026 || grid.Month0 != 1 {
		t.Errorf("Expected February 2026, got year %d month0 %d", grid.Year, grid.Month0)
	}

	// Four February occurrences land on Mondays 2, 9, 16, 23.
	var eventDays []int
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell != nil && len(cell.Events) > 0 {
				eventDays = append(eventDays, cell.Day)
			}
		}
	}
	if len(eventDays) != 4 {
		t.Fatalf("Expected events on 4 days, got %v", eventDays)
	}
	for i, day := range []int{2, 9, 16, 23} {
		if eventDays[i] != day {
			t.Errorf("Expected event on day %d, got %d", day, eventDays[i])
		}
	}
}

func TestMonthView_RejectsBadMonth(t *testing.T) {
	calendar, _, _ := newCalendarService(t)

	_, err := calendar.MonthView(context.Background(), 2026, time.Month(13))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestMonthView_CachedUntilInvalidated(t *testing.T) {
	calendar, series, store := newCalendarService(t)
	ctx := context.Background()

	if _, err := series.CreateSeries(ctx, weeklyInput()); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}
	first, err := calendar.MonthView(ctx, 2026, time.February)
	if err != nil {
		t.Fatalf("MonthView failed: %v", err)
	}

	// A direct store write bypasses the service and must not show up while
	// the cached view lives.
	extra := testfixtures.NewSessionFixture(
		testfixtures.WithSessionDate(dateutil.Date(2026, time.February, 5)),
	)
	store.Seed(nil, []persistence.Session{extra})

	cached, err := calendar.MonthView(ctx, 2026, time.February)
	if err != nil {
		t.Fatalf("MonthView failed: %v", err)
	}
	if countGridEvents(cached) != countGridEvents(first) {
		t.Error("Expected the cached view to be served unchanged")
	}

	// A service write invalidates the cache; the next read sees the session.
	oneOff := weeklyInput()
	oneOff.Recurrence = nil
	oneOff.Date = "2026-02-05"
	oneOff.StartTime = "08:00"
	oneOff.EndTime = "09:00"
	if _, err := series.CreateSeries(ctx, oneOff); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}

	fresh, err := calendar.MonthView(ctx, 2026, time.February)
	if err != nil {
		t.Fatalf("MonthView failed: %v", err)
	}
	if countGridEvents(fresh) <= countGridEvents(first) {
		t.Errorf("Expected the refreshed view to include new sessions, got %d events", countGridEvents(fresh))
	}
}

func TestWeekView_SnapsToMonday(t *testing.T) {
	calendar, series, _ := newCalendarService(t)
	ctx := context.Background()

	if _, err := series.CreateSeries(ctx, weeklyInput()); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}

	// Thursday February 5 belongs to the week starting Monday February 2.
	weekStart, placed, err := calendar.WeekView(ctx, dateutil.Date(2026, time.February, 5))
	if err != nil {
		t.Fatalf("WeekView failed: %v", err)
	}
	if dateutil.FormatDate(weekStart) != "2026-02-02" {
		t.Errorf("Expected week start 2026-02-02, got %s", dateutil.FormatDate(weekStart))
	}
	if len(placed) != 1 {
		t.Fatalf("Expected 1 placed event, got %d", len(placed))
	}
	if placed[0].DayIndex != 0 {
		t.Errorf("Expected the Monday column, got day index %d", placed[0].DayIndex)
	}
	// 18:00 in a 06:00 window with 30 minute slots is slot 24, spanning 3 slots.
	if placed[0].SlotIndex != 24 || placed[0].DurationSlots != 3 {
		t.Errorf("Expected slot 24 spanning 3, got slot %d spanning %d",
			placed[0].SlotIndex, placed[0].DurationSlots)
	}
}

func TestFeed(t *testing.T) {
	calendar, series, _ := newCalendarService(t)
	ctx := context.Background()

	if _, err := series.CreateSeries(ctx, weeklyInput()); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}
	oneOff := weeklyInput()
	oneOff.Recurrence = nil
	oneOff.Date = "2026-02-04"
	oneOff.StartTime = "10:00"
	oneOff.EndTime = "11:00"
	oneOff.Title = "Sectional"
	if _, err := series.CreateSeries(ctx, oneOff); err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}

	feed, err := calendar.Feed(ctx)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}

	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("Expected an iCalendar document")
	}
	if !strings.Contains(feed, "FREQ=WEEKLY") || !strings.Contains(feed, "BYDAY=MO") {
		t.Errorf("Expected the weekly series as an RRULE, got:\n%s", feed)
	}
	if !strings.Contains(feed, "Sectional") {
		t.Error("Expected the one-off session in the feed")
	}
	// The intact series collapses into one recurring VEVENT next to the
	// one-off, so exactly two events appear.
	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 VEVENTs, got %d", got)
	}
}

func countGridEvents(grid calendarview.MonthGrid) int {
	count := 0
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell != nil {
				count += len(cell.Events)
			}
		}
	}
	return count
}
