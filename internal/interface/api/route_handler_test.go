package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleFlexStats(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/routes/ZRH/BCN/stats/flex?target_date=2026-02-14&flex_days=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)

	assert.Equal(t, "ZRH", body["origin"])
	assert.Equal(t, "BCN", body["destination"])
	assert.Equal(t, "2026-02-14", body["targetDate"])
	assert.Equal(t, float64(2), body["flexDays"])
	assert.Equal(t, "Europe/Zurich", body["timezone"])

	series, ok := body["series"].([]interface{})
	require.True(t, ok)
	require.Len(t, series, 1)
	entry := series[0].(map[string]interface{})
	assert.Equal(t, "2026-02-15", entry["departureDate"])
	assert.Equal(t, lx1071ID, entry["flightId"])
	assert.Equal(t, float64(139), entry["medianPriceChf"])

	best, ok := body["best"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, entry, best)
}

func TestHandleFlexStats_NoDataHasNullBest(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/routes/ZRH/LHR/stats/flex?target_date=2026-02-14", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, float64(0), body["flexDays"])
	assert.Equal(t, []interface{}{}, body["series"])
	assert.Contains(t, body, "best")
	assert.Nil(t, body["best"])
}

func TestHandleFlexStats_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{name: "missing target", query: "?flex_days=2", message: "target_date is required"},
		{name: "bad target", query: "?target_date=2026/02/14", message: "Invalid target_date format. Use YYYY-MM-DD."},
		{name: "negative flex", query: "?target_date=2026-02-14&flex_days=-1", message: "flex_days must be non-negative"},
		{name: "non-numeric flex", query: "?target_date=2026-02-14&flex_days=two", message: "flex_days must be an integer"},
		{name: "flex above limit", query: "?target_date=2026-02-14&flex_days=31", message: "flex_days must not exceed 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/routes/ZRH/BCN/stats/flex"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}
}
