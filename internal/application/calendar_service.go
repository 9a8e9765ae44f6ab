package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/practice-scheduler/internal/calendarview"
	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/ics"
	"github.com/example/practice-scheduler/internal/persistence"
)

// CalendarService renders stored sessions as month grids, week layouts, and
// an iCalendar feed. Rendered views are cached until the next write.
type CalendarService struct {
	sessions SessionStore
	rules    RuleStore
	views    *ViewCache
	window   calendarview.Window
	logger   *slog.Logger
	now      func() time.Time
}

// NewCalendarService wires dependencies for calendar reads. An invalid window
// falls back to the default 06:00-22:00 grid with 30 minute slots.
func NewCalendarService(sessions SessionStore, rules RuleStore, views *ViewCache, window calendarview.Window, now func() time.Time, logger *slog.Logger) *CalendarService {
	if window.Validate() != nil {
		window = calendarview.DefaultWindow()
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarService{
		sessions: sessions,
		rules:    rules,
		views:    views,
		window:   window,
		logger:   defaultLogger(logger),
		now:      now,
	}
}

// Window exposes the configured week view window.
func (c *CalendarService) Window() calendarview.Window {
	return c.window
}

// MonthView lays out one calendar month. month is 1 through 12.
func (c *CalendarService) MonthView(ctx context.Context, year int, month time.Month) (calendarview.MonthGrid, error) {
	if c == nil {
		return calendarview.MonthGrid{}, fmt.Errorf("CalendarService is nil")
	}
	if month < time.January || month > time.December {
		vErr := &ValidationError{}
		vErr.add("month", "month must be between 1 and 12")
		return calendarview.MonthGrid{}, vErr
	}

	key := fmt.Sprintf("month|%04d-%02d", year, month)
	if cached, ok := c.views.Get(key); ok {
		if grid, ok := cached.(calendarview.MonthGrid); ok {
			return grid, nil
		}
	}

	from := dateutil.Date(year, month, 1)
	to := dateutil.Date(year, month, dateutil.DaysInMonth(year, month))
	stored, err := c.sessions.ListSessions(ctx, persistence.SessionFilter{From: &from, To: &to})
	if err != nil {
		return calendarview.MonthGrid{}, wrapPersistence(err)
	}

	grid, err := calendarview.MonthLayout(year, int(month)-1, toCalendarEvents(stored))
	if err != nil {
		return calendarview.MonthGrid{}, err
	}

	c.views.Store(key, grid)
	return grid, nil
}

// WeekView lays out the Monday-start week containing the given date.
func (c *CalendarService) WeekView(ctx context.Context, reference time.Time) (time.Time, []calendarview.PlacedEvent, error) {
	if c == nil {
		return time.Time{}, nil, fmt.Errorf("CalendarService is nil")
	}

	weekStart := mondayOf(reference)
	key := "week|" + dateutil.FormatDate(weekStart)
	if cached, ok := c.views.Get(key); ok {
		if placed, ok := cached.([]calendarview.PlacedEvent); ok {
			return weekStart, placed, nil
		}
	}

	from := weekStart
	to := weekStart.AddDate(0, 0, 6)
	stored, err := c.sessions.ListSessions(ctx, persistence.SessionFilter{From: &from, To: &to})
	if err != nil {
		return time.Time{}, nil, wrapPersistence(err)
	}

	placed, err := calendarview.WeekLayout(weekStart, c.window, toCalendarEvents(stored))
	if err != nil {
		return time.Time{}, nil, err
	}

	c.views.Store(key, placed)
	return weekStart, placed, nil
}

// Feed renders every stored session as an iCalendar document.
func (c *CalendarService) Feed(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("CalendarService is nil")
	}

	const key = "feed"
	if cached, ok := c.views.Get(key); ok {
		if feed, ok := cached.(string); ok {
			return feed, nil
		}
	}

	stored, err := c.sessions.ListSessions(ctx, persistence.SessionFilter{})
	if err != nil {
		return "", wrapPersistence(err)
	}

	rules := make(map[string]persistence.RecurrenceRule)
	for _, session := range stored {
		if session.RecurrenceRuleID == nil {
			continue
		}
		id := *session.RecurrenceRuleID
		if _, ok := rules[id]; ok {
			continue
		}
		rule, err := c.rules.GetRecurrenceRule(ctx, id)
		if err != nil {
			return "", mapStoreError(err)
		}
		rules[id] = rule
	}

	feed, err := ics.BuildFeed(rules, stored)
	if err != nil {
		return "", err
	}

	c.views.Store(key, feed)
	return feed, nil
}

// toCalendarEvents converts stored sessions into layout events, dropping any
// row whose clock values fail to parse.
func toCalendarEvents(sessions []persistence.Session) []calendarview.Event {
	events := make([]calendarview.Event, 0, len(sessions))
	for _, session := range sessions {
		start, err := dateutil.CombineDateClock(session.Date, session.StartTime)
		if err != nil {
			continue
		}
		end, err := dateutil.CombineDateClock(session.Date, session.EndTime)
		if err != nil {
			continue
		}
		events = append(events, calendarview.Event{
			ID:       session.ID,
			Title:    session.Title,
			Location: session.Location,
			Start:    start,
			End:      end,
		})
	}
	return events
}

func mondayOf(reference time.Time) time.Time {
	day := dateutil.Truncate(reference)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
