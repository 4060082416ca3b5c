package usecase

import (
	"context"
	"errors"
	"testing"

	fixtures "flighttracker-service/internal/testing"
	"flighttracker-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteQueries(repo *fixtures.MockRouteQueryRepository) *RouteQueries {
	flight, observations := lx1070()
	ranker := newRanker(
		fixtures.NewMockFlightRepository(flight),
		fixtures.NewMockObservationRepository(observations...),
	)
	return NewRouteQueries(repo, ranker, 30, logger.NewNop())
}

func TestRouteQueries_CreateNormalizes(t *testing.T) {
	repo := fixtures.NewMockRouteQueryRepository()
	u := newRouteQueries(repo)

	query, err := u.Create(context.Background(), " zrh", "bcn ", target("2026-02-15"), 3)
	require.NoError(t, err)

	assert.Equal(t, uint(1), query.ID)
	assert.Equal(t, "ZRH", query.OriginIata)
	assert.Equal(t, "BCN", query.DestinationIata)
	assert.Equal(t, target("2026-02-15"), query.AnchorDate)
	assert.Equal(t, 3, query.FlexibilityDays)
}

func TestRouteQueries_CreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		destination string
		flexDays    int
	}{
		{name: "short origin", origin: "ZR", destination: "BCN", flexDays: 1},
		{name: "blank destination", origin: "ZRH", destination: "  ", flexDays: 1},
		{name: "negative flex", origin: "ZRH", destination: "BCN", flexDays: -1},
		{name: "flex above limit", origin: "ZRH", destination: "BCN", flexDays: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtures.NewMockRouteQueryRepository()
			u := newRouteQueries(repo)

			query, err := u.Create(context.Background(), tt.origin, tt.destination, target("2026-02-15"), tt.flexDays)
			assert.Nil(t, query)
			assert.ErrorIs(t, err, ErrInvalidRouteQuery)

			stored, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestRouteQueries_ListNewestFirst(t *testing.T) {
	repo := fixtures.NewMockRouteQueryRepository()
	u := newRouteQueries(repo)
	ctx := context.Background()

	_, err := u.Create(ctx, "ZRH", "BCN", target("2026-02-15"), 1)
	require.NoError(t, err)
	_, err = u.Create(ctx, "ZRH", "JFK", target("2026-02-20"), 2)
	require.NoError(t, err)

	queries, err := u.List(ctx)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "JFK", queries[0].DestinationIata)
	assert.Equal(t, "BCN", queries[1].DestinationIata)
}

func TestRouteQueries_FlexStats(t *testing.T) {
	repo := fixtures.NewMockRouteQueryRepository()
	u := newRouteQueries(repo)
	ctx := context.Background()

	query, err := u.Create(ctx, "ZRH", "BCN", target("2026-02-14"), 2)
	require.NoError(t, err)

	result, err := u.FlexStats(ctx, query.ID)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "2026-02-14", result.TargetDate)
	require.Len(t, result.Series, 1)
	assert.Equal(t, "2026-02-15", result.Series[0].DepartureDate)
	requireDecimal(t, "160", &result.Series[0].MedianPriceChf)
}

func TestRouteQueries_FlexStatsUnknownQuery(t *testing.T) {
	u := newRouteQueries(fixtures.NewMockRouteQueryRepository())

	result, err := u.FlexStats(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestRouteQueries_FlexStatsStorageError(t *testing.T) {
	repo := fixtures.NewMockRouteQueryRepository()
	storageErr := errors.New("postgres down")
	repo.SetError(storageErr)
	u := newRouteQueries(repo)

	result, err := u.FlexStats(context.Background(), 1)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, storageErr)
}
