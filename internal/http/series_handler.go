package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/practice-scheduler/internal/application"
)

// validate performs structural request checks before the services see the
// payload. Field names in reported errors come from the json tags.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// structuralErrors flattens validator failures into a field error map.
func structuralErrors(err error) map[string]string {
	fields := make(map[string]string)
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		fields["body"] = "request body is invalid"
		return fields
	}
	for _, fe := range vErrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "this field is required"
		case "gt":
			fields[fe.Field()] = "must be greater than " + fe.Param()
		case "oneof":
			fields[fe.Field()] = "must be one of: " + fe.Param()
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return fields
}

type seriesService interface {
	CreateSeries(ctx context.Context, input application.SeriesInput) (application.SeriesResult, error)
	ChangeEndDate(ctx context.Context, params application.ChangeEndDateParams) ([]application.Session, error)
}

// SeriesHandler serves series submission and series end date changes.
type SeriesHandler struct {
	service   seriesService
	responder responder
}

func NewSeriesHandler(service seriesService, logger *slog.Logger) *SeriesHandler {
	return &SeriesHandler{service: service, responder: newResponder(logger)}
}

func (h *SeriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req seriesRequest
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

	result, err := h.service.CreateSeries(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, seriesResponse{
		RuleID:   result.RuleID,
		Sessions: toSessionDTOs(result.Sessions),
	})
}

// ChangeEndDate moves a series end date, trimming or extending its
// occurrences.
func (h *SeriesHandler) ChangeEndDate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ruleID, ok := RuleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(ruleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRuleID)
		return
	}

	var req endDateRequest
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

	added, err := h.service.ChangeEndDate(r.Context(), application.ChangeEndDateParams{
		RuleID:  ruleID,
		EndDate: req.EndDate,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, endDateResponse{
		RuleID:        ruleID,
		EndDate:       req.EndDate,
		AddedSessions: toSessionDTOs(added),
	})
}

type seriesRequest struct {
	OrganizerID string             `json:"organizer_id" validate:"required"`
	GroupLabel  string             `json:"group_label" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	Description *string            `json:"description"`
	Location    string             `json:"location"`
	Capacity    int                `json:"capacity" validate:"gt=0"`
	Date        string             `json:"date" validate:"required"`
	StartTime   string             `json:"start_time" validate:"required"`
	EndTime     string             `json:"end_time" validate:"required"`
	Recurrence  *recurrenceRequest `json:"recurrence"`
}

type recurrenceRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=weekly monthly_fixed_date monthly_nth_weekday"`
	EndDate string `json:"end_date" validate:"required"`
}

func (r seriesRequest) toInput() application.SeriesInput {
	input := application.SeriesInput{
		OrganizerID: strings.TrimSpace(r.OrganizerID),
		GroupLabel:  strings.TrimSpace(r.GroupLabel),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Location:    strings.TrimSpace(r.Location),
		Capacity:    r.Capacity,
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		EndTime:     strings.TrimSpace(r.EndTime),
	}
	if r.Recurrence != nil {
		input.Recurrence = &application.RecurrenceInput{
			Kind:    strings.TrimSpace(r.Recurrence.Kind),
			EndDate: strings.TrimSpace(r.Recurrence.EndDate),
		}
	}
	return input
}

type endDateRequest struct {
	EndDate string `json:"end_date" validate:"required"`
}

type seriesResponse struct {
	RuleID   string       `json:"rule_id,omitempty"`
	Sessions []sessionDTO `json:"sessions"`
}

type endDateResponse struct {
	RuleID        string       `json:"rule_id"`
	EndDate       string       `json:"end_date"`
	AddedSessions []sessionDTO `json:"added_sessions,omitempty"`
}
