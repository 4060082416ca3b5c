package repository

import (
	"context"
	"time"

	"flighttracker-service/internal/domain/entity"
)

// FlightFilter narrows a flight query. Blank strings and a nil date do not constrain.
// DepartureDate matches the whole calendar day [day, day+1).
type FlightFilter struct {
	Origin        string
	Destination   string
	FlightNumber  string
	DepartureDate *time.Time
}

// FlightRepository defines the interface for flight lookups
type FlightRepository interface {
	// GetByID returns nil, nil when the flight does not exist or id is malformed.
	GetByID(ctx context.Context, id string) (*entity.Flight, error)
	Query(ctx context.Context, filter FlightFilter) ([]*entity.Flight, error)
	FindUnique(ctx context.Context, flightNumber string, departureDate time.Time, origin, destination string) (*entity.Flight, error)
	Insert(ctx context.Context, flight *entity.Flight) error
}
