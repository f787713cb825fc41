// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/service"
)

// EventHandler holds all HTTP handlers for the events catalog API.
type EventHandler struct {
	search *service.SearchService
	events *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(search *service.SearchService, events *service.EventService) *EventHandler {
	return &EventHandler{search: search, events: events}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service errors to status codes. Anything that is
// neither a validation error nor a missing event is logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	default:
		slog.ErrorContext(r.Context(), action, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// ─── Search ───────────────────────────────────────────────────────────────────

// Search handles GET /api/v1/public/events/search
// Runs an advanced search; query parameters mirror FilterCriteria.
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}

	page, err := h.search.Search(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// SearchSimple handles GET /api/v1/public/events/search/simple?q=
func (h *EventHandler) SearchSimple(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	text := q.str("q")
	page, size := q.integer("page"), q.integer("size")
	view := model.ParseViewMode(q.str("view"))
	if err := q.Err(); err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}

	result, err := h.search.SearchByKeywords(r.Context(), text, page, size, view)
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SearchByLocation handles GET /api/v1/public/events/by-location?q=
func (h *EventHandler) SearchByLocation(w http.ResponseWriter, r *http.Request) {
	events, err := h.search.SearchByLocation(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// SearchByDate handles GET /api/v1/public/events/by-date?date=YYYY-MM-DD
func (h *EventHandler) SearchByDate(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	date := q.date("date")
	if err := q.Err(); err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}

	events, err := h.search.SearchByDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// SearchByDateRange handles GET /api/v1/public/events/by-range?from=&to=
func (h *EventHandler) SearchByDateRange(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	from, to := q.date("from"), q.date("to")
	if err := q.Err(); err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}

	events, err := h.search.SearchByDateRange(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err, "search events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Upcoming handles GET /api/v1/public/events/upcoming?days=
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	days := q.integer("days")
	page, size := q.integer("page"), q.integer("size")
	view := model.ParseViewMode(q.str("view"))
	if err := q.Err(); err != nil {
		writeServiceError(w, r, err, "list upcoming events")
		return
	}

	n := 0
	if days != nil {
		n = *days
	}
	result, err := h.search.UpcomingEvents(r.Context(), n, page, size, view)
	if err != nil {
		writeServiceError(w, r, err, "list upcoming events")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Featured handles GET /api/v1/public/events/featured
func (h *EventHandler) Featured(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r.URL.Query())
	page, size := q.integer("page"), q.integer("size")
	if err := q.Err(); err != nil {
		writeServiceError(w, r, err, "list featured events")
		return
	}

	result, err := h.search.FeaturedEvents(r.Context(), page, size)
	if err != nil {
		writeServiceError(w, r, err, "list featured events")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Carousel handles GET /api/v1/public/events/carousel
func (h *EventHandler) Carousel(w http.ResponseWriter, r *http.Request) {
	events, err := h.search.FeaturedCarousel(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "load carousel")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "create event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/v1/public/events/{id}
// Returns the public detail of a single event.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	detail, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "get event")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
