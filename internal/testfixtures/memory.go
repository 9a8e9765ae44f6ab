package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
)

// MemoryStore is an in-memory implementation of the session and recurrence
// rule repositories with the same constraint behavior as the SQLite storage.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]persistence.Session
	rules    map[string]persistence.RecurrenceRule
	failNext error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]persistence.Session),
		rules:    make(map[string]persistence.RecurrenceRule),
	}
}

// FailNext makes the next store operation return err, simulating a storage
// outage.
func (m *MemoryStore) FailNext(err error) {
	m.mu.Lock()
	m.failNext = err
	m.mu.Unlock()
}

// Seed loads fixture records without constraint checks.
func (m *MemoryStore) Seed(rules []persistence.RecurrenceRule, sessions []persistence.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rule := range rules {
		m.rules[rule.ID] = rule
	}
	for _, session := range sessions {
		m.sessions[session.ID] = session
	}
}

// SessionCount reports the number of stored sessions.
func (m *MemoryStore) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

// InsertSessions stores a batch all-or-nothing.
func (m *MemoryStore) InsertSessions(_ context.Context, sessions []persistence.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}

	for _, session := range sessions {
		if _, exists := m.sessions[session.ID]; exists {
			return fmt.Errorf("%w: session %s", persistence.ErrDuplicate, session.ID)
		}
		if session.Capacity <= 0 || session.StartTime >= session.EndTime {
			return fmt.Errorf("%w: session %s", persistence.ErrConstraintViolation, session.ID)
		}
		if session.RecurrenceRuleID != nil {
			if _, ok := m.rules[*session.RecurrenceRuleID]; !ok {
				return fmt.Errorf("%w: session %s", persistence.ErrForeignKeyViolation, session.ID)
			}
		}
	}
	for _, session := range sessions {
		m.sessions[session.ID] = session
	}
	return nil
}

// FindSessions returns the organizer+group's sessions on the given dates.
func (m *MemoryStore) FindSessions(_ context.Context, organizerID, groupLabel string, dates []time.Time) ([]persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		wanted[dateutil.FormatDate(date)] = struct{}{}
	}

	var found []persistence.Session
	for _, session := range m.sessions {
		if session.OrganizerID != organizerID || session.GroupLabel != groupLabel {
			continue
		}
		if _, ok := wanted[dateutil.FormatDate(session.Date)]; ok {
			found = append(found, session)
		}
	}
	sortSessions(found)
	return found, nil
}

// GetSession retrieves one session by ID.
func (m *MemoryStore) GetSession(_ context.Context, id string) (persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return persistence.Session{}, err
	}
	session, ok := m.sessions[id]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

// UpdateSession rewrites a stored session.
func (m *MemoryStore) UpdateSession(_ context.Context, session persistence.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.sessions[session.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.sessions[session.ID] = session
	return nil
}

// DeleteSession removes one session.
func (m *MemoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.sessions[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// ListSessions returns sessions matching the filter in date order.
func (m *MemoryStore) ListSessions(_ context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	var found []persistence.Session
	for _, session := range m.sessions {
		if filter.OrganizerID != "" && session.OrganizerID != filter.OrganizerID {
			continue
		}
		if filter.GroupLabel != "" && session.GroupLabel != filter.GroupLabel {
			continue
		}
		if filter.RuleID != nil {
			if session.RecurrenceRuleID == nil || *session.RecurrenceRuleID != *filter.RuleID {
				continue
			}
		}
		if filter.From != nil && session.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && session.Date.After(*filter.To) {
			continue
		}
		found = append(found, session)
	}
	sortSessions(found)
	return found, nil
}

// ListSessionsForRule returns a series' occurrences in date order.
func (m *MemoryStore) ListSessionsForRule(_ context.Context, ruleID string) ([]persistence.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	var found []persistence.Session
	for _, session := range m.sessions {
		if session.RecurrenceRuleID != nil && *session.RecurrenceRuleID == ruleID {
			found = append(found, session)
		}
	}
	sortSessions(found)
	return found, nil
}

// DeleteSessionsForRule removes a series' occurrences, optionally only those
// after the given date.
func (m *MemoryStore) DeleteSessionsForRule(_ context.Context, ruleID string, after *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	for id, session := range m.sessions {
		if session.RecurrenceRuleID == nil || *session.RecurrenceRuleID != ruleID {
			continue
		}
		if after != nil && !session.Date.After(*after) {
			continue
		}
		delete(m.sessions, id)
	}
	return nil
}

// DeleteSessionsBefore removes sessions dated strictly before cutoff.
func (m *MemoryStore) DeleteSessionsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	var removed int64
	for id, session := range m.sessions {
		if session.Date.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// InsertRecurrenceRule stores a rule.
func (m *MemoryStore) InsertRecurrenceRule(_ context.Context, rule persistence.RecurrenceRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, exists := m.rules[rule.ID]; exists {
		return fmt.Errorf("%w: rule %s", persistence.ErrDuplicate, rule.ID)
	}
	m.rules[rule.ID] = rule
	return nil
}

// GetRecurrenceRule retrieves one rule by ID.
func (m *MemoryStore) GetRecurrenceRule(_ context.Context, id string) (persistence.RecurrenceRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return persistence.RecurrenceRule{}, err
	}
	rule, ok := m.rules[id]
	if !ok {
		return persistence.RecurrenceRule{}, persistence.ErrNotFound
	}
	return rule, nil
}

// UpdateRecurrenceRuleEndDate moves a rule's end date.
func (m *MemoryStore) UpdateRecurrenceRuleEndDate(_ context.Context, id string, endsOn, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	rule, ok := m.rules[id]
	if !ok {
		return persistence.ErrNotFound
	}
	rule.EndsOn = endsOn
	rule.UpdatedAt = updatedAt
	m.rules[id] = rule
	return nil
}

// DeleteRecurrenceRule removes a rule and cascades its occurrences.
func (m *MemoryStore) DeleteRecurrenceRule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.rules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.rules, id)
	for sessionID, session := range m.sessions {
		if session.RecurrenceRuleID != nil && *session.RecurrenceRuleID == id {
			delete(m.sessions, sessionID)
		}
	}
	return nil
}

func sortSessions(sessions []persistence.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		if sessions[i].StartTime != sessions[j].StartTime {
			return sessions[i].StartTime < sessions[j].StartTime
		}
		return sessions[i].ID < sessions[j].ID
	})
}
