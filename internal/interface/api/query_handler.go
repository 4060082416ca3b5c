package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// QueryHandler handles saved route query requests
type QueryHandler struct {
	queries *usecase.RouteQueries
	logger  logger.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queries *usecase.RouteQueries, log logger.Logger) *QueryHandler {
	return &QueryHandler{
		queries: queries,
		logger:  log.With("handler", "queries"),
	}
}

// CreateQueryRequest is the body of POST /api/queries
type CreateQueryRequest struct {
	OriginIata      string `json:"originIata"`
	DestinationIata string `json:"destinationIata"`
	AnchorDate      string `json:"anchorDate"`
	FlexibilityDays int    `json:"flexibilityDays"`
}

// QueryResponse is a saved route query on the wire
type QueryResponse struct {
	ID              uint   `json:"id"`
	OriginIata      string `json:"originIata"`
	DestinationIata string `json:"destinationIata"`
	AnchorDate      string `json:"anchorDate"`
	FlexibilityDays int    `json:"flexibilityDays"`
}

// RegisterRoutes registers all query routes
func (h *QueryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/queries", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}/stats/flex", h.HandleFlexStats)
	})
}

// HandleList handles GET /api/queries
func (h *QueryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	queries, err := h.queries.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list route queries", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]QueryResponse, 0, len(queries))
	for _, q := range queries {
		response = append(response, toQueryResponse(q))
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleCreate handles POST /api/queries
func (h *QueryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	anchor, err := localtime.ParseDate(req.AnchorDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid anchorDate format. Use YYYY-MM-DD.")
		return
	}

	query, err := h.queries.Create(r.Context(), req.OriginIata, req.DestinationIata, anchor, req.FlexibilityDays)
	if errors.Is(err, usecase.ErrInvalidRouteQuery) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Failed to create route query", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toQueryResponse(query))
}

// HandleFlexStats handles GET /api/queries/{id}/stats/flex
func (h *QueryHandler) HandleFlexStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Query not found")
		return
	}

	result, err := h.queries.FlexStats(r.Context(), uint(id))
	if err != nil {
		h.logger.Error("Failed to evaluate route query", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "Query not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func toQueryResponse(q *entity.RouteQuery) QueryResponse {
	return QueryResponse{
		ID:              q.ID,
		OriginIata:      q.OriginIata,
		DestinationIata: q.DestinationIata,
		AnchorDate:      localtime.FormatDate(q.AnchorDate),
		FlexibilityDays: q.FlexibilityDays,
	}
}
