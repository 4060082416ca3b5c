package api

import (
	"net/http"
	"strconv"

	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const flightNotFound = "Flight not found"

var allowedBuckets = map[int]bool{1: true, 3: true, 7: true}

// FlightHandler handles flight lookup and per-flight statistics requests
type FlightHandler struct {
	stats  *usecase.FlightStats
	logger logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(stats *usecase.FlightStats, log logger.Logger) *FlightHandler {
	return &FlightHandler{
		stats:  stats,
		logger: log.With("handler", "flights"),
	}
}

// RegisterRoutes registers all flight routes
func (h *FlightHandler) RegisterRoutes(r chi.Router) {
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", h.HandleSearch)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Get("/observations", h.HandleObservations)
			r.Get("/stats/weekday", h.HandleWeekdayStats)
			r.Get("/stats/booking-date", h.HandleBookingDateStats)
			r.Get("/stats/days-to-departure", h.HandleDaysToDepartureStats)
		})
	})
}

// HandleSearch handles GET /api/flights
func (h *FlightHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	departure, ok := parseDateParam(r, "departure_date")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid departure_date format. Use YYYY-MM-DD.")
		return
	}

	q := r.URL.Query()
	flights, err := h.stats.Search(r.Context(), repository.FlightFilter{
		Origin:        q.Get("origin"),
		Destination:   q.Get("destination"),
		FlightNumber:  q.Get("flight_number"),
		DepartureDate: departure,
	})
	if err != nil {
		h.internalError(w, "Failed to search flights", err)
		return
	}

	writeJSON(w, http.StatusOK, flights)
}

// HandleGet handles GET /api/flights/{id}
func (h *FlightHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flight, err := h.stats.GetFlight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.internalError(w, "Failed to get flight", err)
		return
	}
	if flight == nil {
		writeError(w, http.StatusNotFound, flightNotFound)
		return
	}

	writeJSON(w, http.StatusOK, flight)
}

// HandleObservations handles GET /api/flights/{id}/observations
func (h *FlightHandler) HandleObservations(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseDayRange(w, r)
	if !ok {
		return
	}

	list, err := h.stats.Observations(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		h.internalError(w, "Failed to list observations", err)
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, flightNotFound)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleWeekdayStats handles GET /api/flights/{id}/stats/weekday
func (h *FlightHandler) HandleWeekdayStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.stats.WeekdayStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.internalError(w, "Failed to compute weekday stats", err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, flightNotFound)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleBookingDateStats handles GET /api/flights/{id}/stats/booking-date
func (h *FlightHandler) HandleBookingDateStats(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseDayRange(w, r)
	if !ok {
		return
	}

	result, err := h.stats.BookingDateStats(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		h.internalError(w, "Failed to compute booking date stats", err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, flightNotFound)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDaysToDepartureStats handles GET /api/flights/{id}/stats/days-to-departure
func (h *FlightHandler) HandleDaysToDepartureStats(w http.ResponseWriter, r *http.Request) {
	bucket := 1
	if raw := r.URL.Query().Get("bucket"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !allowedBuckets[n] {
			writeError(w, http.StatusBadRequest, "bucket must be one of 1, 3, 7")
			return
		}
		bucket = n
	}

	result, err := h.stats.DaysToDepartureStats(r.Context(), chi.URLParam(r, "id"), bucket)
	if err != nil {
		h.internalError(w, "Failed to compute days to departure stats", err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, flightNotFound)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *FlightHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
