package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flighttracker-service/internal/domain/entity"
	fixtures "flighttracker-service/internal/testing"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"
	"flighttracker-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	lx1070ID  = "65a000000000000000000001"
	lx1071ID  = "65a000000000000000000003"
	unknownID = "65a0000000000000000000aa"
)

type testServer struct {
	handler      http.Handler
	flights      *fixtures.MockFlightRepository
	observations *fixtures.MockObservationRepository
	queries      *fixtures.MockRouteQueryRepository
	metrics      *metrics.Metrics
}

func seededRepositories() (*fixtures.MockFlightRepository, *fixtures.MockObservationRepository) {
	lx1070 := fixtures.NewFlightWithID(lx1070ID, "LX1070", "2026-02-15", "ZRH", "BCN")
	lx1071 := fixtures.NewFlightWithID(lx1071ID, "LX1071", "2026-02-15", "ZRH", "BCN")
	lx8080 := fixtures.NewFlightWithID("65a000000000000000000002", "LX8080", "2026-02-20", "ZRH", "JFK")

	observations := []*entity.Observation{
		fixtures.NewObservation(lx1070, "2026-01-10T09:00:00Z", "150"),
		fixtures.NewObservation(lx1070, "2026-01-10T14:00:00Z", "155"),
		fixtures.NewObservation(lx1070, "2026-01-11T10:00:00Z", "145"),
		fixtures.NewObservation(lx1070, "2026-01-12T11:00:00Z", "160"),
		fixtures.NewObservation(lx1070, "2026-02-10T09:00:00Z", "250"),
		fixtures.NewObservation(lx1071, "2026-01-10T10:00:00Z", "140"),
		fixtures.NewObservation(lx1071, "2026-01-12T09:00:00Z", "135"),
		fixtures.NewObservation(lx1071, "2026-01-15T14:00:00Z", "138"),
		fixtures.NewObservation(lx1071, "2026-01-20T11:00:00Z", "142"),
	}

	return fixtures.NewMockFlightRepository(lx1070, lx1071, lx8080), fixtures.NewMockObservationRepository(observations...)
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	mapper, err := localtime.NewMapper(localtime.DefaultZone)
	require.NoError(t, err)

	log := logger.NewNop()
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	flights, observations := seededRepositories()
	queries := fixtures.NewMockRouteQueryRepository()

	calculator := usecase.NewStatsCalculator(mapper)
	flightStats := usecase.NewFlightStats(flights, observations, calculator, m, log)
	ranker := usecase.NewFlexWindowRanker(flights, observations, mapper.Zone(), 2, m, log)
	routeQueries := usecase.NewRouteQueries(queries, ranker, 30, log)
	seeder := usecase.NewDataSeeder(flights, observations, log)

	r := chi.NewRouter()
	r.Use(Instrument(m, log))
	r.Route("/api", func(r chi.Router) {
		NewFlightHandler(flightStats, log).RegisterRoutes(r)
		NewRouteHandler(ranker, 30, log).RegisterRoutes(r)
		NewQueryHandler(routeQueries, log).RegisterRoutes(r)
		NewDevHandler(seeder, log).RegisterRoutes(r)
	})

	return testServer{
		handler:      r,
		flights:      flights,
		observations: observations,
		queries:      queries,
		metrics:      m,
	}
}

func (s testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	decode(t, rec, &resp)
	return resp.Error
}
