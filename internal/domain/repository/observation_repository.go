package repository

import (
	"context"
	"time"

	"flighttracker-service/internal/domain/entity"
)

// ObservationRepository defines the interface for price observation storage
type ObservationRepository interface {
	// GetByFlightID returns all observations of a flight ordered by observation time.
	GetByFlightID(ctx context.Context, flightID string) ([]*entity.Observation, error)
	// GetByFlightIDInRange restricts GetByFlightID to [from, to). Either bound may be nil.
	GetByFlightIDInRange(ctx context.Context, flightID string, from, to *time.Time) ([]*entity.Observation, error)
	InsertMany(ctx context.Context, observations []*entity.Observation) error
}
