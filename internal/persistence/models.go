package persistence

import "time"

// Session is one concrete, bookable practice occurrence. Date is a calendar
// date at midnight UTC; StartTime and EndTime are "HH:MM" wall-clock values.
type Session struct {
	ID               string
	OrganizerID      string
	GroupLabel       string
	Date             time.Time
	StartTime        string
	EndTime          string
	Location         string
	Capacity         int
	Title            string
	Description      *string
	RecurrenceRuleID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RecurrenceRule is the generating function of a series. It is immutable
// except for EndsOn.
type RecurrenceRule struct {
	ID          string
	OrganizerID string
	GroupLabel  string
	Kind        string
	Weekday     time.Weekday
	NthWeek     int
	AnchorOn    time.Time
	EndsOn      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
