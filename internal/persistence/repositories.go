package persistence

import (
	"context"
	"time"
)

// SessionFilter narrows session queries.
type SessionFilter struct {
	OrganizerID string
	GroupLabel  string
	RuleID      *string
	// From and To bound the session date, both inclusive.
	From *time.Time
	To   *time.Time
}

// SessionRepository stores practice session occurrences.
type SessionRepository interface {
	// InsertSessions writes a submission batch as one logical unit: either
	// every session is stored or none is.
	InsertSessions(ctx context.Context, sessions []Session) error
	// FindSessions returns the organizer+group's sessions whose date is in
	// the given set, the pre-filtered input the conflict detector expects.
	FindSessions(ctx context.Context, organizerID, groupLabel string, dates []time.Time) ([]Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	UpdateSession(ctx context.Context, session Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	ListSessionsForRule(ctx context.Context, ruleID string) ([]Session, error)
	// DeleteSessionsForRule removes a rule's occurrences; when after is set,
	// only occurrences dated strictly later are removed.
	DeleteSessionsForRule(ctx context.Context, ruleID string, after *time.Time) error
	// DeleteSessionsBefore removes occurrences dated strictly before cutoff
	// and reports how many were removed. Used by the retention job.
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RecurrenceRuleRepository stores series generating rules.
type RecurrenceRuleRepository interface {
	InsertRecurrenceRule(ctx context.Context, rule RecurrenceRule) error
	GetRecurrenceRule(ctx context.Context, id string) (RecurrenceRule, error)
	// UpdateRecurrenceRuleEndDate is the only permitted rule mutation.
	UpdateRecurrenceRuleEndDate(ctx context.Context, id string, endsOn, updatedAt time.Time) error
	DeleteRecurrenceRule(ctx context.Context, id string) error
}
