package api

import (
	"net/http"

	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// DevHandler exposes development helpers. Only mounted when enabled in config.
type DevHandler struct {
	seeder *usecase.DataSeeder
	logger logger.Logger
}

// NewDevHandler creates a new dev handler
func NewDevHandler(seeder *usecase.DataSeeder, log logger.Logger) *DevHandler {
	return &DevHandler{
		seeder: seeder,
		logger: log.With("handler", "dev"),
	}
}

// RegisterRoutes registers all dev routes
func (h *DevHandler) RegisterRoutes(r chi.Router) {
	r.Post("/dev/seed", h.HandleSeed)
}

// HandleSeed handles POST /api/dev/seed
func (h *DevHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seeder.Seed(r.Context(), usecase.SampleData())
	if err != nil {
		h.logger.Error("Failed to seed sample data", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sample data seeded successfully",
		"result":  result,
	})
}
