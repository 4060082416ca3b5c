package repository

import (
	"testing"
	"time"

	"flighttracker-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildObservationFilter_NoBounds(t *testing.T) {
	flightID := primitive.NewObjectID()

	filter := buildObservationFilter(flightID, nil, nil)

	assert.Equal(t, bson.M{"flightId": flightID}, filter)
}

func TestBuildObservationFilter_HalfOpenRange(t *testing.T) {
	flightID := primitive.NewObjectID()
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)

	filter := buildObservationFilter(flightID, &from, &to)

	observedAt, ok := filter["observedAtUtc"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, from, observedAt["$gte"])
	assert.Equal(t, to, observedAt["$lt"])
	assert.Len(t, observedAt, 2)
}

func TestBuildObservationFilter_SingleBound(t *testing.T) {
	flightID := primitive.NewObjectID()
	to := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)

	filter := buildObservationFilter(flightID, nil, &to)

	assert.Equal(t, bson.M{"$lt": to}, filter["observedAtUtc"])
}

func TestObservationDocument_KeepsDecimalPrecision(t *testing.T) {
	observation := &entity.Observation{
		ID:            primitive.NewObjectID(),
		FlightID:      primitive.NewObjectID(),
		ObservedAtUTC: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		PriceChf:      decimal.RequireFromString("199.95"),
	}

	doc, err := toObservationDocument(observation)
	require.NoError(t, err)
	assert.Equal(t, "199.95", doc.PriceChf.String())

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.True(t, observation.PriceChf.Equal(back.PriceChf))
	assert.Equal(t, observation.FlightID, back.FlightID)
	assert.True(t, observation.ObservedAtUTC.Equal(back.ObservedAtUTC))
}
