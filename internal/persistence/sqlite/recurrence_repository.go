package sqlite

import (
	"context"
	"time"

	"github.com/example/practice-scheduler/internal/persistence"
)

const ruleColumns = `id, organizer_id, group_label, kind, weekday, nth_week,
	anchor_on, ends_on, created_at, updated_at`

// InsertRecurrenceRule stores a new series rule.
func (s *Storage) InsertRecurrenceRule(ctx context.Context, rule persistence.RecurrenceRule) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO recurrence_rules (`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.OrganizerID,
		rule.GroupLabel,
		rule.Kind,
		int(rule.Weekday),
		rule.NthWeek,
		formatDate(rule.AnchorOn),
		formatDate(rule.EndsOn),
		formatTimestamp(rule.CreatedAt),
		formatTimestamp(rule.UpdatedAt),
	)
	return mapError(err)
}

// GetRecurrenceRule retrieves one rule by ID.
func (s *Storage) GetRecurrenceRule(ctx context.Context, id string) (persistence.RecurrenceRule, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM recurrence_rules WHERE id = ?`, id)

	var (
		rule      persistence.RecurrenceRule
		weekday   int
		anchorOn  string
		endsOn    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&rule.ID,
		&rule.OrganizerID,
		&rule.GroupLabel,
		&rule.Kind,
		&weekday,
		&rule.NthWeek,
		&anchorOn,
		&endsOn,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.RecurrenceRule{}, mapError(err)
	}

	rule.Weekday = time.Weekday(weekday)

	var err error
	if rule.AnchorOn, err = parseDate(anchorOn); err != nil {
		return persistence.RecurrenceRule{}, err
	}
	if rule.EndsOn, err = parseDate(endsOn); err != nil {
		return persistence.RecurrenceRule{}, err
	}
	if rule.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.RecurrenceRule{}, err
	}
	if rule.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.RecurrenceRule{}, err
	}

	return rule, nil
}

// UpdateRecurrenceRuleEndDate moves a rule's end date, the only mutation a
// rule permits after creation.
func (s *Storage) UpdateRecurrenceRuleEndDate(ctx context.Context, id string, endsOn, updatedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE recurrence_rules SET ends_on = ?, updated_at = ? WHERE id = ?`,
		formatDate(endsOn), formatTimestamp(updatedAt), id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// DeleteRecurrenceRule removes a rule; its sessions cascade at the schema level.
func (s *Storage) DeleteRecurrenceRule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recurrence_rules WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}
