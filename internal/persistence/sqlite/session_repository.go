package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/practice-scheduler/internal/persistence"
)

const sessionColumns = `id, organizer_id, group_label, session_date, start_time, end_time,
	location, capacity, title, description, recurrence_rule_id, created_at, updated_at`

// InsertSessions writes a submission batch inside a single transaction so a
// recurring series is stored all-or-nothing.
func (s *Storage) InsertSessions(ctx context.Context, sessions []persistence.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO sessions (`+sessionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return mapError(err)
		}
		defer stmt.Close()

		for _, session := range sessions {
			var description sql.NullString
			if session.Description != nil {
				description = sql.NullString{String: *session.Description, Valid: true}
			}
			var ruleID sql.NullString
			if session.RecurrenceRuleID != nil {
				ruleID = sql.NullString{String: *session.RecurrenceRuleID, Valid: true}
			}

			if _, err := stmt.ExecContext(ctx,
				session.ID,
				session.OrganizerID,
				session.GroupLabel,
				formatDate(session.Date),
				session.StartTime,
				session.EndTime,
				session.Location,
				session.Capacity,
				session.Title,
				description,
				ruleID,
				formatTimestamp(session.CreatedAt),
				formatTimestamp(session.UpdatedAt),
			); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

// FindSessions returns the organizer+group's sessions on the given dates,
// ordered by date then start time.
func (s *Storage) FindSessions(ctx context.Context, organizerID, groupLabel string, dates []time.Time) ([]persistence.Session, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(dates))
	args := make([]any, 0, len(dates)+2)
	args = append(args, organizerID, groupLabel)
	for i, date := range dates {
		placeholders[i] = "?"
		args = append(args, formatDate(date))
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE organizer_id = ? AND group_label = ?
		AND session_date IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY session_date, start_time, id`

	return s.querySessions(ctx, query, args...)
}

// GetSession retrieves one session by ID.
func (s *Storage) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row.Scan)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// UpdateSession rewrites a session's mutable fields.
func (s *Storage) UpdateSession(ctx context.Context, session persistence.Session) error {
	var description sql.NullString
	if session.Description != nil {
		description = sql.NullString{String: *session.Description, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `UPDATE sessions SET
			session_date = ?, start_time = ?, end_time = ?, location = ?,
			capacity = ?, title = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		formatDate(session.Date),
		session.StartTime,
		session.EndTime,
		session.Location,
		session.Capacity,
		session.Title,
		description,
		formatTimestamp(session.UpdatedAt),
		session.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// DeleteSession removes one session by ID.
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// ListSessions returns sessions matching the filter, ordered by date then
// start time.
func (s *Storage) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	var clauses []string
	var args []any

	if filter.OrganizerID != "" {
		clauses = append(clauses, "organizer_id = ?")
		args = append(args, filter.OrganizerID)
	}
	if filter.GroupLabel != "" {
		clauses = append(clauses, "group_label = ?")
		args = append(args, filter.GroupLabel)
	}
	if filter.RuleID != nil {
		clauses = append(clauses, "recurrence_rule_id = ?")
		args = append(args, *filter.RuleID)
	}
	if filter.From != nil {
		clauses = append(clauses, "session_date >= ?")
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		clauses = append(clauses, "session_date <= ?")
		args = append(args, formatDate(*filter.To))
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY session_date, start_time, id"

	return s.querySessions(ctx, query, args...)
}

// ListSessionsForRule returns every occurrence of a series ordered by date.
func (s *Storage) ListSessionsForRule(ctx context.Context, ruleID string) ([]persistence.Session, error) {
	return s.querySessions(ctx, `SELECT `+sessionColumns+` FROM sessions
		WHERE recurrence_rule_id = ? ORDER BY session_date, start_time, id`, ruleID)
}

// DeleteSessionsForRule removes a series' occurrences, optionally only those
// dated strictly after the given date.
func (s *Storage) DeleteSessionsForRule(ctx context.Context, ruleID string, after *time.Time) error {
	if after != nil {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM sessions WHERE recurrence_rule_id = ? AND session_date > ?`,
			ruleID, formatDate(*after))
		return mapError(err)
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE recurrence_rule_id = ?`, ruleID)
	return mapError(err)
}

// DeleteSessionsBefore removes sessions dated strictly before cutoff.
func (s *Storage) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_date < ?`, formatDate(cutoff))
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

func (s *Storage) querySessions(ctx context.Context, query string, args ...any) ([]persistence.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sessions []persistence.Session
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, mapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return sessions, nil
}

func scanSession(scan func(...any) error) (persistence.Session, error) {
	var (
		session     persistence.Session
		date        string
		description sql.NullString
		ruleID      sql.NullString
		createdAt   string
		updatedAt   string
	)

	if err := scan(
		&session.ID,
		&session.OrganizerID,
		&session.GroupLabel,
		&date,
		&session.StartTime,
		&session.EndTime,
		&session.Location,
		&session.Capacity,
		&session.Title,
		&description,
		&ruleID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Session{}, err
	}

	parsed, err := parseDate(date)
	if err != nil {
		return persistence.Session{}, err
	}
	session.Date = parsed

	if description.Valid {
		value := description.String
		session.Description = &value
	}
	if ruleID.Valid {
		value := ruleID.String
		session.RecurrenceRuleID = &value
	}

	if session.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if session.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Session{}, err
	}

	return session, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
