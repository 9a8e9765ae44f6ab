package application

import "time"

// SeriesInput captures a practice session submission. Dates arrive as
// "YYYY-MM-DD" and clock values as "HH:MM"; when Recurrence is nil the
// submission is a one-off session on Date.
type SeriesInput struct {
	OrganizerID string
	GroupLabel  string
	Title       string
	Description *string
	Location    string
	Capacity    int
	Date        string
	StartTime   string
	EndTime     string
	Recurrence  *RecurrenceInput
}

// RecurrenceInput selects a repetition pattern ending on EndDate. The
// weekday and week-of-month parameters are derived from the anchor date.
type RecurrenceInput struct {
	Kind    string
	EndDate string
}

// Session is a persisted practice occurrence as exposed to callers.
type Session struct {
	ID               string
	OrganizerID      string
	GroupLabel       string
	Date             string
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

// SeriesResult reports a successful submission. RuleID is empty for
// one-off sessions.
type SeriesResult struct {
	RuleID   string
	Sessions []Session
}

// ConflictRecord describes one clash with an already stored session.
type ConflictRecord struct {
	Date       string
	StartTime  string
	EndTime    string
	Location   string
	GroupLabel string
}

// UpdateScope selects how far an edit or deletion reaches into a series.
type UpdateScope string

const (
	// ScopeSingle touches only the addressed occurrence.
	ScopeSingle UpdateScope = "single"
	// ScopeWholeSeries touches every occurrence generated by the same rule.
	ScopeWholeSeries UpdateScope = "series"
)

// ParseUpdateScope maps a query value to a scope; empty means single.
func ParseUpdateScope(value string) (UpdateScope, bool) {
	switch UpdateScope(value) {
	case "", ScopeSingle:
		return ScopeSingle, true
	case ScopeWholeSeries:
		return ScopeWholeSeries, true
	}
	return "", false
}

// SessionUpdateInput carries the editable session fields. Date may only be
// set for single-occurrence edits; a whole-series edit keeps each
// occurrence on its own date.
type SessionUpdateInput struct {
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Capacity    int
	Title       string
	Description *string
}

// UpdateSessionParams wraps the data required to edit a session.
type UpdateSessionParams struct {
	SessionID string
	Scope     UpdateScope
	Input     SessionUpdateInput
}

// DeleteSessionParams wraps the data required to delete a session.
type DeleteSessionParams struct {
	SessionID string
	Scope     UpdateScope
}

// ChangeEndDateParams wraps the data required to move a series end date.
type ChangeEndDateParams struct {
	RuleID  string
	EndDate string
}

// ListSessionsParams narrows session listings. From and To are inclusive
// "YYYY-MM-DD" bounds; empty strings leave the bound open.
type ListSessionsParams struct {
	OrganizerID string
	GroupLabel  string
	RuleID      string
	From        string
	To          string
}
