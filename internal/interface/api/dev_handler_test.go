package api

import (
	"net/http"
	"testing"

	"flighttracker-service/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSeed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/dev/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string             `json:"message"`
		Result  usecase.SeedResult `json:"result"`
	}
	decode(t, rec, &body)

	// All three sample flights already exist, and nine of their sample
	// observations are already stored.
	assert.Equal(t, "Sample data seeded successfully", body.Message)
	assert.Equal(t, usecase.SeedResult{
		FlightsExisting:      3,
		ObservationsInserted: 11,
		ObservationsSkipped:  9,
	}, body.Result)
	assert.Len(t, s.observations.All(), 20)
}

func TestInstrument_LabelsByRoutePattern(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/flights/"+lx1070ID, "")
	s.do(t, http.MethodGet, "/api/flights/"+lx1071ID, "")
	s.do(t, http.MethodGet, "/api/flights/"+unknownID, "")

	// One series per status, not one per flight id.
	assert.Equal(t, 2, testutil.CollectAndCount(s.metrics.RequestsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(s.metrics.RequestDuration))
}
