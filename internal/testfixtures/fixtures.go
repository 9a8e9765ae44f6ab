// Package testfixtures supplies deterministic clocks, identifiers, fixture
// records, and an in-memory store for tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
)

var (
	sessionCounter uint64
	ruleCounter    uint64
)

var referenceTime = time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// Fixture dates land in the weeks after it, so submissions built from them
// are neither in the past nor beyond the scheduling horizon.
func ReferenceTime() time.Time {
	return referenceTime
}

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session record with optional
// overrides. Successive calls step the date forward one day at a time.
func NewSessionFixture(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	session := persistence.Session{
		ID:          fmt.Sprintf("session-%03d", idx),
		OrganizerID: "organizer-001",
		GroupLabel:  "ensemble-a",
		Date:        dateutil.Date(2026, time.February, 2).AddDate(0, 0, int(idx%28)),
		StartTime:   "18:00",
		EndTime:     "19:30",
		Location:    "Studio 1",
		Capacity:    10,
		Title:       fmt.Sprintf("Practice %03d", idx),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *persistence.Session) { s.ID = id }
}

// WithSessionDate overrides the generated session date.
func WithSessionDate(date time.Time) SessionOption {
	return func(s *persistence.Session) { s.Date = dateutil.Truncate(date) }
}

// WithSessionTimes overrides the generated clock values.
func WithSessionTimes(start, end string) SessionOption {
	return func(s *persistence.Session) {
		s.StartTime = start
		s.EndTime = end
	}
}

// WithSessionGroup overrides the organizer and group the session belongs to.
func WithSessionGroup(organizerID, groupLabel string) SessionOption {
	return func(s *persistence.Session) {
		s.OrganizerID = organizerID
		s.GroupLabel = groupLabel
	}
}

// WithSessionRule attaches the session to a recurrence rule.
func WithSessionRule(ruleID string) SessionOption {
	return func(s *persistence.Session) { s.RecurrenceRuleID = &ruleID }
}

// RuleOption configures a generated recurrence rule fixture.
type RuleOption func(*persistence.RecurrenceRule)

// NewRuleFixture returns a deterministic weekly rule with optional overrides.
func NewRuleFixture(opts ...RuleOption) persistence.RecurrenceRule {
	idx := atomic.AddUint64(&ruleCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	anchor := dateutil.Date(2026, time.February, 2)
	rule := persistence.RecurrenceRule{
		ID:          fmt.Sprintf("rule-%03d", idx),
		OrganizerID: "organizer-001",
		GroupLabel:  "ensemble-a",
		Kind:        "weekly",
		Weekday:     anchor.Weekday(),
		NthWeek:     1,
		AnchorOn:    anchor,
		EndsOn:      anchor.AddDate(0, 2, 0),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&rule)
	}
	return rule
}

// WithRuleID overrides the generated rule ID.
func WithRuleID(id string) RuleOption {
	return func(r *persistence.RecurrenceRule) { r.ID = id }
}

// WithRuleKind overrides the recurrence kind.
func WithRuleKind(kind string) RuleOption {
	return func(r *persistence.RecurrenceRule) { r.Kind = kind }
}

// WithRuleRange overrides the anchor and end dates and re-derives the
// weekday parameter from the anchor.
func WithRuleRange(anchor, endsOn time.Time) RuleOption {
	return func(r *persistence.RecurrenceRule) {
		r.AnchorOn = dateutil.Truncate(anchor)
		r.EndsOn = dateutil.Truncate(endsOn)
		r.Weekday = r.AnchorOn.Weekday()
		nth := (r.AnchorOn.Day() + 6) / 7
		if nth > 5 {
			nth = 5
		}
		r.NthWeek = nth
	}
}
