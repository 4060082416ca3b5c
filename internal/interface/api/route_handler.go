package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// RouteHandler handles route-level statistics requests
type RouteHandler struct {
	ranker      *usecase.FlexWindowRanker
	maxFlexDays int
	logger      logger.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(ranker *usecase.FlexWindowRanker, maxFlexDays int, log logger.Logger) *RouteHandler {
	return &RouteHandler{
		ranker:      ranker,
		maxFlexDays: maxFlexDays,
		logger:      log.With("handler", "routes"),
	}
}

// RegisterRoutes registers all route statistics routes
func (h *RouteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/routes/{origin}/{destination}/stats/flex", h.HandleFlexStats)
}

// HandleFlexStats handles GET /api/routes/{origin}/{destination}/stats/flex
func (h *RouteHandler) HandleFlexStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rawTarget := q.Get("target_date")
	if strings.TrimSpace(rawTarget) == "" {
		writeError(w, http.StatusBadRequest, "target_date is required")
		return
	}
	targetDate, err := localtime.ParseDate(rawTarget)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target_date format. Use YYYY-MM-DD.")
		return
	}

	flexDays := 0
	if raw := q.Get("flex_days"); raw != "" {
		flexDays, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "flex_days must be an integer")
			return
		}
	}
	if flexDays < 0 {
		writeError(w, http.StatusBadRequest, "flex_days must be non-negative")
		return
	}
	if h.maxFlexDays > 0 && flexDays > h.maxFlexDays {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("flex_days must not exceed %d", h.maxFlexDays))
		return
	}

	result, err := h.ranker.Rank(r.Context(), usecase.FlexWindowQuery{
		Origin:      chi.URLParam(r, "origin"),
		Destination: chi.URLParam(r, "destination"),
		TargetDate:  targetDate,
		FlexDays:    flexDays,
	})
	if err != nil {
		h.logger.Error("Failed to rank flex window", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
