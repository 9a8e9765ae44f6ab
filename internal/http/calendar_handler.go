package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/practice-scheduler/internal/calendarview"
	"github.com/example/practice-scheduler/internal/dateutil"
)

var (
	errInvalidYear = errors.New("year must be a four digit number")
	errInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

type calendarService interface {
	MonthView(ctx context.Context, year int, month time.Month) (calendarview.MonthGrid, error)
	WeekView(ctx context.Context, reference time.Time) (time.Time, []calendarview.PlacedEvent, error)
	Feed(ctx context.Context) (string, error)
	Window() calendarview.Window
}

// CalendarHandler serves the month grid, the week layout, and the iCalendar
// feed.
type CalendarHandler struct {
	service   calendarService
	responder responder
	now       func() time.Time
}

func NewCalendarHandler(service calendarService, now func() time.Time, logger *slog.Logger) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{service: service, responder: newResponder(logger), now: now}
}

// Month serves GET /calendar/month?year=YYYY&month=M. Both parameters default
// to the current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	now := h.now()
	year := now.Year()
	month := now.Month()

	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1000 || parsed > 9999 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidYear)
			return
		}
		year = parsed
	}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errors.New("month must be a number between 1 and 12"))
			return
		}
		month = time.Month(parsed)
	}

	grid, err := h.service.MonthView(r.Context(), year, month)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMonthResponse(grid))
}

// Week serves GET /calendar/week?date=YYYY-MM-DD. The week containing the
// given date is rendered; the date defaults to today.
func (h *CalendarHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reference := h.now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := dateutil.ParseDate(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		reference = parsed
	}

	weekStart, placed, err := h.service.WeekView(r.Context(), reference)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWeekResponse(weekStart, h.service.Window(), placed))
}

// Feed serves GET /calendar.ics.
func (h *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	feed, err := h.service.Feed(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write feed", "error", err)
	}
}

type monthResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Weeks [][]*monthCellDTO `json:"weeks"`
}

type monthCellDTO struct {
	Day    int        `json:"day"`
	Date   string     `json:"date"`
	Events []eventDTO `json:"events,omitempty"`
}

type eventDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toMonthResponse(grid calendarview.MonthGrid) monthResponse {
	response := monthResponse{
		Year:  grid.Year,
		Month: grid.Month0 + 1,
		Weeks: make([][]*monthCellDTO, 0, len(grid.Weeks)),
	}
	for _, week := range grid.Weeks {
		row := make([]*monthCellDTO, len(week))
		for i, cell := range week {
			if cell == nil {
				continue
			}
			row[i] = &monthCellDTO{
				Day:    cell.Day,
				Date:   dateutil.FormatDate(cell.Date),
				Events: toEventDTOs(cell.Events),
			}
		}
		response.Weeks = append(response.Weeks, row)
	}
	return response
}

type weekResponse struct {
	WeekStart   string           `json:"week_start"`
	StartHour   int              `json:"start_hour"`
	EndHour     int              `json:"end_hour"`
	SlotMinutes int              `json:"slot_minutes"`
	Events      []placedEventDTO `json:"events"`
}

type placedEventDTO struct {
	eventDTO
	Date          string `json:"date"`
	DayIndex      int    `json:"day_index"`
	SlotIndex     int    `json:"slot_index"`
	DurationSlots int    `json:"duration_slots"`
}

func toWeekResponse(weekStart time.Time, window calendarview.Window, placed []calendarview.PlacedEvent) weekResponse {
	events := make([]placedEventDTO, 0, len(placed))
	for _, p := range placed {
		events = append(events, placedEventDTO{
			eventDTO:      toEventDTO(p.Event),
			Date:          dateutil.FormatDate(p.Event.Start),
			DayIndex:      p.DayIndex,
			SlotIndex:     p.SlotIndex,
			DurationSlots: p.DurationSlots,
		})
	}
	return weekResponse{
		WeekStart:   dateutil.FormatDate(weekStart),
		StartHour:   window.StartHour,
		EndHour:     window.EndHour,
		SlotMinutes: window.SlotMinutes,
		Events:      events,
	}
}

func toEventDTO(event calendarview.Event) eventDTO {
	return eventDTO{
		ID:        event.ID,
		Title:     event.Title,
		Location:  event.Location,
		StartTime: event.Start.Format("15:04"),
		EndTime:   event.End.Format("15:04"),
	}
}

func toEventDTOs(events []calendarview.Event) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

// Pinger reports storage availability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes, reporting 503 when storage is
// unreachable.
type HealthHandler struct {
	pinger    Pinger
	responder responder
}

func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, responder: newResponder(logger)}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "health check failed", "error", err)
			h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
