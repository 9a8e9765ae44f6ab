package calendarview

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

// ErrInvalidWindow indicates a week window whose bounds or slot size are unusable.
var ErrInvalidWindow = errors.New("calendarview: invalid week window")

// Window bounds the visible portion of a week grid.
type Window struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// DefaultWindow is the 06:00-22:00 grid in 30-minute slots used when no
// window is configured.
func DefaultWindow() Window {
	return Window{StartHour: 6, EndHour: 22, SlotMinutes: 30}
}

// Validate reports whether the window describes a usable grid.
func (w Window) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: hours %d-%d", ErrInvalidWindow, w.StartHour, w.EndHour)
	}
	if w.SlotMinutes <= 0 {
		return fmt.Errorf("%w: slot minutes %d", ErrInvalidWindow, w.SlotMinutes)
	}
	return nil
}

// PlacedEvent carries the grid coordinates computed for one event.
type PlacedEvent struct {
	Event Event
	// DayIndex is the event's day column, 0 (Monday) through 6 (Sunday).
	DayIndex int
	// SlotIndex is the event's starting time row within the window.
	SlotIndex int
	// DurationSlots is the number of rows the event spans, never less than 1.
	DurationSlots int
}

// WeekLayout computes grid coordinates for events within the 7-day window
// beginning at weekStart (a Monday). Events outside the 7 days, or whose
// start falls outside [StartHour, EndHour), are excluded from the result;
// they are not lost, merely not rendered in this window. The result is
// ordered by day then slot.
func WeekLayout(weekStart time.Time, window Window, events []Event) ([]PlacedEvent, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	weekStart = dateutil.Truncate(weekStart)
	windowStart := window.StartHour * 60
	windowEnd := window.EndHour * 60

	placed := make([]PlacedEvent, 0, len(events))
	for _, event := range events {
		day := daysBetween(weekStart, dateutil.Truncate(event.Start))
		if day < 0 || day > 6 {
			continue
		}

		startMinutes := event.Start.Hour()*60 + event.Start.Minute()
		if startMinutes < windowStart || startMinutes >= windowEnd {
			continue
		}

		durationMinutes := event.End.Sub(event.Start).Minutes()
		slots := int(math.Round(durationMinutes / float64(window.SlotMinutes)))
		if slots < 1 {
			slots = 1
		}

		placed = append(placed, PlacedEvent{
			Event:         event,
			DayIndex:      day,
			SlotIndex:     (startMinutes - windowStart) / window.SlotMinutes,
			DurationSlots: slots,
		})
	}

	sort.SliceStable(placed, func(i, j int) bool {
		if placed[i].DayIndex != placed[j].DayIndex {
			return placed[i].DayIndex < placed[j].DayIndex
		}
		return placed[i].SlotIndex < placed[j].SlotIndex
	})

	return placed, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
