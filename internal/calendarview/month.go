// Package calendarview projects time-bounded events onto 2-D rendering grids.
// Both layouts are pure: they perform no I/O and never mutate their inputs,
// so any renderer can consume the coordinates they emit.
package calendarview

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

// Event is the input contract shared by the month and week layouts.
type Event struct {
	ID       string
	Title    string
	Location string
	Start    time.Time
	End      time.Time
}

// ErrInvalidMonth indicates a 0-based month index outside 0..11.
var ErrInvalidMonth = errors.New("calendarview: month index out of range")

const (
	monthRows = 6
	weekDays  = 7
)

// MonthCell is one day slot in the month grid. Cells outside the month are
// represented as nil in the grid.
type MonthCell struct {
	Day    int
	Date   time.Time
	Events []Event
}

// MonthGrid is the fixed 6x7, Monday-first layout of one calendar month.
// Every month renders exactly 6 rows; months spanning fewer calendar weeks
// are padded with trailing nil cells so consumers never branch on row count.
type MonthGrid struct {
	Year   int
	Month0 int
	Weeks  [monthRows][weekDays]*MonthCell
}

// MonthLayout buckets events into the day cells of the given month. month0 is
// 0-based (0 = January). Events whose start date falls outside the month are
// ignored; a cell may hold zero or many events.
func MonthLayout(year, month0 int, events []Event) (MonthGrid, error) {
	if month0 < 0 || month0 > 11 {
		return MonthGrid{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month0)
	}

	month := time.Month(month0 + 1)
	grid := MonthGrid{Year: year, Month0: month0}

	first := dateutil.Date(year, month, 1)
	leading := mondayFirstIndex(first.Weekday())
	total := dateutil.DaysInMonth(year, month)

	byDay := make(map[int][]Event)
	for _, event := range events {
		start := event.Start
		if start.Year() != year || start.Month() != month {
			continue
		}
		byDay[start.Day()] = append(byDay[start.Day()], event)
	}

	for day := 1; day <= total; day++ {
		index := leading + day - 1
		row, col := index/weekDays, index%weekDays
		grid.Weeks[row][col] = &MonthCell{
			Day:    day,
			Date:   dateutil.Date(year, month, day),
			Events: byDay[day],
		}
	}

	return grid, nil
}

// mondayFirstIndex maps a weekday to its column in a Monday-first week.
func mondayFirstIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
