package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/practice-scheduler/internal/application"
)

var (
	errBadRequestBody   = errors.New("request body is not valid JSON")
	errInvalidSessionID = errors.New("invalid session ID")
	errInvalidRuleID    = errors.New("invalid recurrence rule ID")
	errInvalidScope     = errors.New("scope must be \"single\" or \"series\"")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps application errors onto the HTTP surface.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "VALIDATION_FAILED",
			Message:   "the submission contains invalid fields",
			Errors:    vErr.FieldErrors,
		})
		return
	}

	var cErr *application.ConflictError
	if errors.As(err, &cErr) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "SCHEDULING_CONFLICT",
			Message:   "the submission overlaps existing sessions",
			Conflicts: toConflictDTOs(cErr.Conflicts),
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "the requested resource does not exist"})
	case errors.Is(err, application.ErrPastDatetime):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "PAST_DATETIME",
			Message:   "sessions cannot be scheduled in the past",
		})
	case errors.Is(err, application.ErrPolicyCapExceeded):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "POLICY_CAP_EXCEEDED",
			Message:   "series cannot extend beyond December 31 of the current year",
		})
	case errors.Is(err, application.ErrNoEligibleDates):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "NO_ELIGIBLE_DATES",
			Message:   "the recurrence pattern produces no dates",
		})
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "internal error", "error", err, "error_kind", application.ErrorKind(err))
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Conflicts []conflictDTO     `json:"conflicts,omitempty"`
}

type conflictDTO struct {
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Location   string `json:"location,omitempty"`
	GroupLabel string `json:"group_label"`
}

func toConflictDTOs(records []application.ConflictRecord) []conflictDTO {
	if len(records) == 0 {
		return nil
	}
	out := make([]conflictDTO, 0, len(records))
	for _, record := range records {
		out = append(out, conflictDTO{
			Date:       record.Date,
			StartTime:  record.StartTime,
			EndTime:    record.EndTime,
			Location:   record.Location,
			GroupLabel: record.GroupLabel,
		})
	}
	return out
}
