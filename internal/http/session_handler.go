package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/practice-scheduler/internal/application"
)

type sessionService interface {
	GetSession(ctx context.Context, id string) (application.Session, error)
	ListSessions(ctx context.Context, params application.ListSessionsParams) ([]application.Session, error)
	UpdateSession(ctx context.Context, params application.UpdateSessionParams) ([]application.Session, error)
	DeleteSession(ctx context.Context, params application.DeleteSessionParams) error
}

// SessionHandler serves reads, edits, and deletions of stored sessions.
type SessionHandler struct {
	service   sessionService
	responder responder
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	sessions, err := h.service.ListSessions(r.Context(), application.ListSessionsParams{
		OrganizerID: strings.TrimSpace(query.Get("organizer_id")),
		GroupLabel:  strings.TrimSpace(query.Get("group_label")),
		RuleID:      strings.TrimSpace(query.Get("rule_id")),
		From:        strings.TrimSpace(query.Get("from")),
		To:          strings.TrimSpace(query.Get("to")),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{
		Sessions: toSessionDTOs(sessions),
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	scope, ok := application.ParseUpdateScope(strings.TrimSpace(r.URL.Query().Get("scope")))
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScope)
		return
	}

	var req sessionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "VALIDATION_FAILED",
			Message:   "the submission contains invalid fields",
			Errors:    structuralErrors(err),
		})
		return
	}

	updated, err := h.service.UpdateSession(r.Context(), application.UpdateSessionParams{
		SessionID: sessionID,
		Scope:     scope,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{
		Sessions: toSessionDTOs(updated),
	})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	scope, ok := application.ParseUpdateScope(strings.TrimSpace(r.URL.Query().Get("scope")))
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScope)
		return
	}

	if err := h.service.DeleteSession(r.Context(), application.DeleteSessionParams{
		SessionID: sessionID,
		Scope:     scope,
	}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type sessionUpdateRequest struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Location    string  `json:"location"`
	Capacity    int     `json:"capacity" validate:"gt=0"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

func (r sessionUpdateRequest) toInput() application.SessionUpdateInput {
	return application.SessionUpdateInput{
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		EndTime:     strings.TrimSpace(r.EndTime),
		Location:    strings.TrimSpace(r.Location),
		Capacity:    r.Capacity,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
	}
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}

type sessionDTO struct {
	ID               string  `json:"id"`
	OrganizerID      string  `json:"organizer_id"`
	GroupLabel       string  `json:"group_label"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Location         string  `json:"location,omitempty"`
	Capacity         int     `json:"capacity"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	RecurrenceRuleID *string `json:"recurrence_rule_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func toSessionDTO(session application.Session) sessionDTO {
	return sessionDTO{
		ID:               session.ID,
		OrganizerID:      session.OrganizerID,
		GroupLabel:       session.GroupLabel,
		Date:             session.Date,
		StartTime:        session.StartTime,
		EndTime:          session.EndTime,
		Location:         session.Location,
		Capacity:         session.Capacity,
		Title:            session.Title,
		Description:      session.Description,
		RecurrenceRuleID: session.RecurrenceRuleID,
		CreatedAt:        session.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        session.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSessionDTOs(sessions []application.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}
