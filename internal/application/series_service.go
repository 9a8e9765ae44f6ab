package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
	"github.com/example/practice-scheduler/internal/recurrence"
	"github.com/example/practice-scheduler/internal/scheduler"
)

// SessionStore captures the persistence interactions needed by the services.
type SessionStore interface {
	InsertSessions(ctx context.Context, sessions []persistence.Session) error
	FindSessions(ctx context.Context, organizerID, groupLabel string, dates []time.Time) ([]persistence.Session, error)
	GetSession(ctx context.Context, id string) (persistence.Session, error)
	UpdateSession(ctx context.Context, session persistence.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error)
	ListSessionsForRule(ctx context.Context, ruleID string) ([]persistence.Session, error)
	DeleteSessionsForRule(ctx context.Context, ruleID string, after *time.Time) error
}

// RuleStore captures the recurrence rule persistence interactions.
type RuleStore interface {
	InsertRecurrenceRule(ctx context.Context, rule persistence.RecurrenceRule) error
	GetRecurrenceRule(ctx context.Context, id string) (persistence.RecurrenceRule, error)
	UpdateRecurrenceRuleEndDate(ctx context.Context, id string, endsOn, updatedAt time.Time) error
	DeleteRecurrenceRule(ctx context.Context, id string) error
}

// buildState names the stages a submission passes through. The progression is
// validating -> expanding -> checking -> (conflict | persisting) -> done.
type buildState string

const (
	stateValidating buildState = "validating"
	stateExpanding  buildState = "expanding"
	stateChecking   buildState = "checking"
	stateConflict   buildState = "conflict"
	statePersisting buildState = "persisting"
	stateDone       buildState = "done"
)

// SeriesService orchestrates submission, expansion, conflict detection and
// persistence for practice sessions.
type SeriesService struct {
	sessions    SessionStore
	rules       RuleStore
	views       *ViewCache
	logger      *slog.Logger
	idGenerator func() string
	now         func() time.Time
}

// NewSeriesService wires dependencies for session operations. views may be
// nil when no calendar cache is in play.
func NewSeriesService(sessions SessionStore, rules RuleStore, views *ViewCache, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SeriesService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SeriesService{
		sessions:    sessions,
		rules:       rules,
		views:       views,
		logger:      defaultLogger(logger),
		idGenerator: idGenerator,
		now:         now,
	}
}

// CreateSeries validates a submission, expands its recurrence into concrete
// dates, checks every date against stored sessions, and persists the whole
// batch atomically. Any conflict or failure leaves the store untouched.
func (s *SeriesService) CreateSeries(ctx context.Context, input SeriesInput) (SeriesResult, error) {
	if s == nil {
		return SeriesResult{}, fmt.Errorf("SeriesService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "series", "create",
		"organizer_id", input.OrganizerID, "group_label", input.GroupLabel)
	logger.Debug("submission received", "state", stateValidating)

	parsed, err := s.validateSeriesInput(input)
	if err != nil {
		logger.Info("submission rejected", "state", stateValidating, "error_kind", ErrorKind(err))
		return SeriesResult{}, err
	}

	logger.Debug("expanding recurrence", "state", stateExpanding, "kind", string(parsed.kind))
	dates, err := s.expandDates(parsed)
	if err != nil {
		logger.Info("submission rejected", "state", stateExpanding, "error_kind", ErrorKind(err))
		return SeriesResult{}, err
	}

	logger.Debug("checking conflicts", "state", stateChecking, "candidate_count", len(dates))
	conflicts, err := s.detectConflicts(ctx, input.OrganizerID, input.GroupLabel, dates, input.StartTime, input.EndTime, nil)
	if err != nil {
		return SeriesResult{}, err
	}
	if len(conflicts) > 0 {
		logger.Info("submission rejected", "state", stateConflict, "conflict_count", len(conflicts))
		return SeriesResult{}, &ConflictError{Conflicts: conflicts}
	}

	logger.Debug("persisting batch", "state", statePersisting, "session_count", len(dates))
	result, err := s.persistBatch(ctx, input, parsed, dates)
	if err != nil {
		logger.Error("persistence failed", "state", statePersisting, "error", err)
		return SeriesResult{}, err
	}

	s.views.Invalidate()
	logger.Info("series created", "state", stateDone,
		"rule_id", result.RuleID, "session_count", len(result.Sessions))
	return result, nil
}

// parsedSeries holds the decoded form of a validated submission.
type parsedSeries struct {
	anchor  time.Time
	endsOn  time.Time
	kind    recurrence.Kind
	weekday time.Weekday
	nthWeek int
}

func (s *SeriesService) validateSeriesInput(input SeriesInput) (parsedSeries, error) {
	vErr := &ValidationError{}
	var parsed parsedSeries

	if strings.TrimSpace(input.OrganizerID) == "" {
		vErr.add("organizer_id", "organizer is required")
	}
	if strings.TrimSpace(input.GroupLabel) == "" {
		vErr.add("group_label", "group label is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}

	anchor, err := dateutil.ParseDate(input.Date)
	if err != nil {
		vErr.add("date", "must be a valid YYYY-MM-DD date")
	} else {
		parsed.anchor = anchor
	}

	startMinutes, startErr := dateutil.MinutesOfDay(input.StartTime)
	if startErr != nil {
		vErr.add("start_time", "must be a valid HH:MM time")
	}
	endMinutes, endErr := dateutil.MinutesOfDay(input.EndTime)
	if endErr != nil {
		vErr.add("end_time", "must be a valid HH:MM time")
	}
	if startErr == nil && endErr == nil && startMinutes >= endMinutes {
		vErr.add("time", "start time must be before end time")
	}

	parsed.kind = recurrence.KindNone
	if input.Recurrence != nil {
		kind, err := recurrence.ParseKind(input.Recurrence.Kind)
		if err != nil || kind == recurrence.KindNone {
			vErr.add("recurrence.kind", "unsupported recurrence kind")
		} else {
			parsed.kind = kind
		}

		endsOn, err := dateutil.ParseDate(input.Recurrence.EndDate)
		if err != nil {
			vErr.add("recurrence.end_date", "must be a valid YYYY-MM-DD date")
		} else {
			parsed.endsOn = endsOn
		}
	}

	if vErr.HasErrors() {
		return parsedSeries{}, vErr
	}

	parsed.weekday = recurrence.DeriveWeekday(parsed.anchor)
	parsed.nthWeek = recurrence.DeriveNthWeek(parsed.anchor)

	if startsInPast(parsed.anchor, input.StartTime, s.now()) {
		return parsedSeries{}, ErrPastDatetime
	}

	horizon := dateutil.Date(s.now().Year(), time.December, 31)
	if parsed.anchor.After(horizon) {
		return parsedSeries{}, ErrPolicyCapExceeded
	}
	if parsed.kind != recurrence.KindNone && parsed.endsOn.After(horizon) {
		return parsedSeries{}, ErrPolicyCapExceeded
	}

	return parsed, nil
}

func (s *SeriesService) expandDates(parsed parsedSeries) ([]time.Time, error) {
	if parsed.kind == recurrence.KindNone {
		return []time.Time{parsed.anchor}, nil
	}

	dates, err := recurrence.Expand(parsed.kind, parsed.anchor, parsed.endsOn, parsed.weekday, parsed.nthWeek)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoEligibleDates
	}
	return dates, nil
}

// detectConflicts loads the organizer+group's stored sessions on the given
// dates and runs the overlap check. Session IDs in exclude are skipped, which
// lets edits ignore the occurrences being replaced.
func (s *SeriesService) detectConflicts(ctx context.Context, organizerID, groupLabel string, dates []time.Time, startTime, endTime string, exclude map[string]struct{}) ([]ConflictRecord, error) {
	stored, err := s.sessions.FindSessions(ctx, organizerID, groupLabel, dates)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	existing := make([]scheduler.Booked, 0, len(stored))
	for _, session := range stored {
		if _, skip := exclude[session.ID]; skip {
			continue
		}
		existing = append(existing, scheduler.Booked{
			SessionID:  session.ID,
			GroupLabel: session.GroupLabel,
			Date:       session.Date,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
			Location:   session.Location,
		})
	}

	candidates := make([]scheduler.Candidate, 0, len(dates))
	for _, date := range dates {
		candidates = append(candidates, scheduler.Candidate{
			Date:      date,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	return toConflictRecords(scheduler.DetectConflicts(existing, candidates)), nil
}

func (s *SeriesService) persistBatch(ctx context.Context, input SeriesInput, parsed parsedSeries, dates []time.Time) (SeriesResult, error) {
	createdAt := s.now()

	var ruleID string
	if parsed.kind != recurrence.KindNone {
		ruleID = s.idGenerator()
		rule := persistence.RecurrenceRule{
			ID:          ruleID,
			OrganizerID: input.OrganizerID,
			GroupLabel:  input.GroupLabel,
			Kind:        string(parsed.kind),
			Weekday:     parsed.weekday,
			NthWeek:     parsed.nthWeek,
			AnchorOn:    parsed.anchor,
			EndsOn:      parsed.endsOn,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
		if err := s.rules.InsertRecurrenceRule(ctx, rule); err != nil {
			return SeriesResult{}, wrapPersistence(err)
		}
	}

	sessions := make([]persistence.Session, 0, len(dates))
	for _, date := range dates {
		session := persistence.Session{
			ID:          s.idGenerator(),
			OrganizerID: input.OrganizerID,
			GroupLabel:  input.GroupLabel,
			Date:        date,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Location:    input.Location,
			Capacity:    input.Capacity,
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
		if ruleID != "" {
			id := ruleID
			session.RecurrenceRuleID = &id
		}
		sessions = append(sessions, session)
	}

	if err := s.sessions.InsertSessions(ctx, sessions); err != nil {
		if ruleID != "" {
			// The session batch rolled back; remove the orphaned rule.
			_ = s.rules.DeleteRecurrenceRule(ctx, ruleID)
		}
		return SeriesResult{}, wrapPersistence(err)
	}

	result := SeriesResult{RuleID: ruleID, Sessions: make([]Session, 0, len(sessions))}
	for _, session := range sessions {
		result.Sessions = append(result.Sessions, toSessionDTO(session))
	}
	return result, nil
}

// GetSession retrieves one stored session.
func (s *SeriesService) GetSession(ctx context.Context, id string) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("SeriesService is nil")
	}
	stored, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return Session{}, mapStoreError(err)
	}
	return toSessionDTO(stored), nil
}

// ListSessions enumerates stored sessions matching the given bounds, ordered
// by date then start time.
func (s *SeriesService) ListSessions(ctx context.Context, params ListSessionsParams) ([]Session, error) {
	if s == nil {
		return nil, fmt.Errorf("SeriesService is nil")
	}

	filter := persistence.SessionFilter{
		OrganizerID: params.OrganizerID,
		GroupLabel:  params.GroupLabel,
	}
	if params.RuleID != "" {
		ruleID := params.RuleID
		filter.RuleID = &ruleID
	}

	vErr := &ValidationError{}
	if params.From != "" {
		from, err := dateutil.ParseDate(params.From)
		if err != nil {
			vErr.add("from", "must be a valid YYYY-MM-DD date")
		} else {
			filter.From = &from
		}
	}
	if params.To != "" {
		to, err := dateutil.ParseDate(params.To)
		if err != nil {
			vErr.add("to", "must be a valid YYYY-MM-DD date")
		} else {
			filter.To = &to
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	stored, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	sessions := make([]Session, 0, len(stored))
	for _, session := range stored {
		sessions = append(sessions, toSessionDTO(session))
	}
	return sessions, nil
}

// UpdateSession edits one occurrence or, with ScopeWholeSeries, every
// occurrence of the session's series. Edits are conflict-checked against all
// other stored sessions before anything is written.
func (s *SeriesService) UpdateSession(ctx context.Context, params UpdateSessionParams) ([]Session, error) {
	if s == nil {
		return nil, fmt.Errorf("SeriesService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "series", "update_session",
		"session_id", params.SessionID, "scope", string(params.Scope))

	existing, err := s.sessions.GetSession(ctx, params.SessionID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	updated, err := s.updateSessions(ctx, existing, params)
	if err != nil {
		logger.Info("update rejected", "error_kind", ErrorKind(err))
		return nil, err
	}

	s.views.Invalidate()
	logger.Info("session updated", "updated_count", len(updated))
	return updated, nil
}

func (s *SeriesService) updateSessions(ctx context.Context, existing persistence.Session, params UpdateSessionParams) ([]Session, error) {
	input := params.Input
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}

	startMinutes, startErr := dateutil.MinutesOfDay(input.StartTime)
	if startErr != nil {
		vErr.add("start_time", "must be a valid HH:MM time")
	}
	endMinutes, endErr := dateutil.MinutesOfDay(input.EndTime)
	if endErr != nil {
		vErr.add("end_time", "must be a valid HH:MM time")
	}
	if startErr == nil && endErr == nil && startMinutes >= endMinutes {
		vErr.add("time", "start time must be before end time")
	}

	date := existing.Date
	switch params.Scope {
	case ScopeWholeSeries:
		if input.Date != "" {
			vErr.add("date", "date cannot change for a whole-series edit")
		}
		if existing.RecurrenceRuleID == nil {
			vErr.add("scope", "session is not part of a series")
		}
	default:
		if input.Date != "" {
			parsed, err := dateutil.ParseDate(input.Date)
			if err != nil {
				vErr.add("date", "must be a valid YYYY-MM-DD date")
			} else {
				date = parsed
			}
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	if params.Scope != ScopeWholeSeries {
		return s.updateSingle(ctx, existing, input, date)
	}
	return s.updateWholeSeries(ctx, existing, input)
}

func (s *SeriesService) updateSingle(ctx context.Context, existing persistence.Session, input SessionUpdateInput, date time.Time) ([]Session, error) {
	if startsInPast(date, input.StartTime, s.now()) {
		return nil, ErrPastDatetime
	}
	horizon := dateutil.Date(s.now().Year(), time.December, 31)
	if date.After(horizon) {
		return nil, ErrPolicyCapExceeded
	}

	exclude := map[string]struct{}{existing.ID: {}}
	conflicts, err := s.detectConflicts(ctx, existing.OrganizerID, existing.GroupLabel,
		[]time.Time{date}, input.StartTime, input.EndTime, exclude)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	updated := applySessionInput(existing, input, s.now())
	updated.Date = date
	if err := s.sessions.UpdateSession(ctx, updated); err != nil {
		return nil, mapStoreError(err)
	}
	return []Session{toSessionDTO(updated)}, nil
}

func (s *SeriesService) updateWholeSeries(ctx context.Context, existing persistence.Session, input SessionUpdateInput) ([]Session, error) {
	occurrences, err := s.sessions.ListSessionsForRule(ctx, *existing.RecurrenceRuleID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if len(occurrences) == 0 {
		return nil, ErrNotFound
	}

	dates := make([]time.Time, 0, len(occurrences))
	exclude := make(map[string]struct{}, len(occurrences))
	for _, occurrence := range occurrences {
		dates = append(dates, occurrence.Date)
		exclude[occurrence.ID] = struct{}{}
	}

	conflicts, err := s.detectConflicts(ctx, existing.OrganizerID, existing.GroupLabel,
		dates, input.StartTime, input.EndTime, exclude)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	updatedAt := s.now()
	updated := make([]Session, 0, len(occurrences))
	for _, occurrence := range occurrences {
		next := applySessionInput(occurrence, input, updatedAt)
		if err := s.sessions.UpdateSession(ctx, next); err != nil {
			return nil, mapStoreError(err)
		}
		updated = append(updated, toSessionDTO(next))
	}
	return updated, nil
}

// DeleteSession removes one occurrence or, with ScopeWholeSeries, the whole
// series including its rule.
func (s *SeriesService) DeleteSession(ctx context.Context, params DeleteSessionParams) error {
	if s == nil {
		return fmt.Errorf("SeriesService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "series", "delete_session",
		"session_id", params.SessionID, "scope", string(params.Scope))

	existing, err := s.sessions.GetSession(ctx, params.SessionID)
	if err != nil {
		return mapStoreError(err)
	}

	if params.Scope == ScopeWholeSeries && existing.RecurrenceRuleID != nil {
		// Occurrences cascade with their rule.
		if err := s.rules.DeleteRecurrenceRule(ctx, *existing.RecurrenceRuleID); err != nil {
			return mapStoreError(err)
		}
	} else {
		if err := s.sessions.DeleteSession(ctx, params.SessionID); err != nil {
			return mapStoreError(err)
		}
	}

	s.views.Invalidate()
	logger.Info("session deleted")
	return nil
}

// ChangeEndDate moves a series end date. Shortening removes occurrences past
// the new end; extending expands the rule again and stores the added
// occurrences after conflict-checking them, all or nothing.
func (s *SeriesService) ChangeEndDate(ctx context.Context, params ChangeEndDateParams) ([]Session, error) {
	if s == nil {
		return nil, fmt.Errorf("SeriesService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "series", "change_end_date", "rule_id", params.RuleID)

	rule, err := s.rules.GetRecurrenceRule(ctx, params.RuleID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	endsOn, err := dateutil.ParseDate(params.EndDate)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("end_date", "must be a valid YYYY-MM-DD date")
		return nil, vErr
	}
	horizon := dateutil.Date(s.now().Year(), time.December, 31)
	if endsOn.After(horizon) {
		return nil, ErrPolicyCapExceeded
	}
	if endsOn.Before(rule.AnchorOn) {
		vErr := &ValidationError{}
		vErr.add("end_date", "end date cannot precede the series start")
		return nil, vErr
	}

	if endsOn.Equal(rule.EndsOn) {
		return nil, nil
	}

	var added []Session
	if endsOn.Before(rule.EndsOn) {
		if err := s.sessions.DeleteSessionsForRule(ctx, rule.ID, &endsOn); err != nil {
			return nil, wrapPersistence(err)
		}
	} else {
		added, err = s.extendSeries(ctx, rule, endsOn)
		if err != nil {
			logger.Info("extension rejected", "error_kind", ErrorKind(err))
			return nil, err
		}
	}

	if err := s.rules.UpdateRecurrenceRuleEndDate(ctx, rule.ID, endsOn, s.now()); err != nil {
		return nil, mapStoreError(err)
	}

	s.views.Invalidate()
	logger.Info("end date changed", "ends_on", dateutil.FormatDate(endsOn), "added_count", len(added))
	return added, nil
}

func (s *SeriesService) extendSeries(ctx context.Context, rule persistence.RecurrenceRule, endsOn time.Time) ([]Session, error) {
	kind, err := recurrence.ParseKind(rule.Kind)
	if err != nil {
		return nil, err
	}

	dates, err := recurrence.Expand(kind, rule.AnchorOn, endsOn, rule.Weekday, rule.NthWeek)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.sessions.ListSessionsForRule(ctx, rule.ID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if len(occurrences) == 0 {
		vErr := &ValidationError{}
		vErr.add("end_date", "series has no remaining occurrences to extend")
		return nil, vErr
	}
	// The latest stored occurrence carries the times and details new
	// occurrences inherit.
	template := occurrences[len(occurrences)-1]

	held := make(map[string]struct{}, len(occurrences))
	for _, occurrence := range occurrences {
		held[dateutil.FormatDate(occurrence.Date)] = struct{}{}
	}

	// Only dates beyond the previous end are new. Occurrences the organizer
	// removed mid-series stay removed.
	var addedDates []time.Time
	for _, date := range dates {
		if !date.After(rule.EndsOn) {
			continue
		}
		if _, ok := held[dateutil.FormatDate(date)]; ok {
			continue
		}
		addedDates = append(addedDates, date)
	}
	if len(addedDates) == 0 {
		return nil, nil
	}

	for _, date := range addedDates {
		if startsInPast(date, template.StartTime, s.now()) {
			return nil, ErrPastDatetime
		}
	}

	conflicts, err := s.detectConflicts(ctx, rule.OrganizerID, rule.GroupLabel,
		addedDates, template.StartTime, template.EndTime, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	createdAt := s.now()
	batch := make([]persistence.Session, 0, len(addedDates))
	for _, date := range addedDates {
		session := template
		session.ID = s.idGenerator()
		session.Date = date
		session.CreatedAt = createdAt
		session.UpdatedAt = createdAt
		batch = append(batch, session)
	}
	if err := s.sessions.InsertSessions(ctx, batch); err != nil {
		return nil, wrapPersistence(err)
	}

	added := make([]Session, 0, len(batch))
	for _, session := range batch {
		added = append(added, toSessionDTO(session))
	}
	return added, nil
}

func startsInPast(date time.Time, clock string, now time.Time) bool {
	start, err := dateutil.CombineDateClock(date, clock)
	if err != nil {
		return false
	}
	return start.Before(now)
}

func applySessionInput(session persistence.Session, input SessionUpdateInput, updatedAt time.Time) persistence.Session {
	session.StartTime = input.StartTime
	session.EndTime = input.EndTime
	session.Location = input.Location
	session.Capacity = input.Capacity
	session.Title = strings.TrimSpace(input.Title)
	session.Description = input.Description
	session.UpdatedAt = updatedAt
	return session
}

func toSessionDTO(session persistence.Session) Session {
	return Session{
		ID:               session.ID,
		OrganizerID:      session.OrganizerID,
		GroupLabel:       session.GroupLabel,
		Date:             dateutil.FormatDate(session.Date),
		StartTime:        session.StartTime,
		EndTime:          session.EndTime,
		Location:         session.Location,
		Capacity:         session.Capacity,
		Title:            session.Title,
		Description:      session.Description,
		RecurrenceRuleID: session.RecurrenceRuleID,
		CreatedAt:        session.CreatedAt,
		UpdatedAt:        session.UpdatedAt,
	}
}

func toConflictRecords(conflicts []scheduler.Conflict) []ConflictRecord {
	if len(conflicts) == 0 {
		return nil
	}
	records := make([]ConflictRecord, 0, len(conflicts))
	for _, conflict := range conflicts {
		records = append(records, ConflictRecord{
			Date:       dateutil.FormatDate(conflict.Date),
			StartTime:  conflict.StartTime,
			EndTime:    conflict.EndTime,
			Location:   conflict.Location,
			GroupLabel: conflict.GroupLabel,
		})
	}
	return records
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return wrapPersistence(err)
}

func wrapPersistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
