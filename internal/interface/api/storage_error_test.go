package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	fixtures "flighttracker-service/internal/testing"
	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"
	"flighttracker-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFlightRepository struct {
	mock.Mock
}

func (m *mockFlightRepository) GetByID(ctx context.Context, id string) (*entity.Flight, error) {
	args := m.Called(ctx, id)
	flight, _ := args.Get(0).(*entity.Flight)
	return flight, args.Error(1)
}

func (m *mockFlightRepository) Query(ctx context.Context, filter repository.FlightFilter) ([]*entity.Flight, error) {
	args := m.Called(ctx, filter)
	flights, _ := args.Get(0).([]*entity.Flight)
	return flights, args.Error(1)
}

func (m *mockFlightRepository) FindUnique(ctx context.Context, flightNumber string, departureDate time.Time, origin, destination string) (*entity.Flight, error) {
	args := m.Called(ctx, flightNumber, departureDate, origin, destination)
	flight, _ := args.Get(0).(*entity.Flight)
	return flight, args.Error(1)
}

func (m *mockFlightRepository) Insert(ctx context.Context, flight *entity.Flight) error {
	return m.Called(ctx, flight).Error(0)
}

func newMockedFlightServer(t *testing.T, flights *mockFlightRepository) http.Handler {
	t.Helper()
	mapper, err := localtime.NewMapper(localtime.DefaultZone)
	require.NoError(t, err)

	log := logger.NewNop()
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	observations := fixtures.NewMockObservationRepository()

	flightStats := usecase.NewFlightStats(flights, observations, usecase.NewStatsCalculator(mapper), m, log)
	ranker := usecase.NewFlexWindowRanker(flights, observations, mapper.Zone(), 1, m, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewFlightHandler(flightStats, log).RegisterRoutes(r)
		NewRouteHandler(ranker, 30, log).RegisterRoutes(r)
	})
	return r
}

func TestHandleSearch_PassesFilterToRepository(t *testing.T) {
	flights := new(mockFlightRepository)
	departure := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	flights.On("Query", mock.Anything, repository.FlightFilter{
		Origin:        "ZRH",
		Destination:   "BCN",
		FlightNumber:  "LX1070",
		DepartureDate: &departure,
	}).Return([]*entity.Flight{}, nil).Once()

	rec := httptest.NewRecorder()
	newMockedFlightServer(t, flights).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/flights?origin=ZRH&destination=BCN&flight_number=LX1070&departure_date=2026-02-15", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	flights.AssertExpectations(t)
}

func TestStorageErrorsBecomeInternalServerError(t *testing.T) {
	storageErr := errors.New("server selection timeout")

	tests := []struct {
		name   string
		target string
		setup  func(*mockFlightRepository)
	}{
		{
			name:   "get flight",
			target: "/api/flights/65a000000000000000000001",
			setup: func(m *mockFlightRepository) {
				m.On("GetByID", mock.Anything, "65a000000000000000000001").Return(nil, storageErr)
			},
		},
		{
			name:   "weekday stats",
			target: "/api/flights/65a000000000000000000001/stats/weekday",
			setup: func(m *mockFlightRepository) {
				m.On("GetByID", mock.Anything, "65a000000000000000000001").Return(nil, storageErr)
			},
		},
		{
			name:   "flex window",
			target: "/api/routes/ZRH/BCN/stats/flex?target_date=2026-02-15&flex_days=1",
			setup: func(m *mockFlightRepository) {
				m.On("Query", mock.Anything, mock.AnythingOfType("repository.FlightFilter")).Return(nil, storageErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights := new(mockFlightRepository)
			tt.setup(flights)

			rec := httptest.NewRecorder()
			newMockedFlightServer(t, flights).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Internal server error", errorMessage(t, rec))
			assert.NotContains(t, rec.Body.String(), storageErr.Error())
		})
	}
}
