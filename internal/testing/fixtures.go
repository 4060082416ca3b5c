package testing

import (
	"time"

	"flighttracker-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewFlight returns a flight departing on date (YYYY-MM-DD) with a fresh id
func NewFlight(flightNumber, date, origin, destination string) *entity.Flight {
	departure, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &entity.Flight{
		ID:              primitive.NewObjectID(),
		FlightNumber:    flightNumber,
		DepartureDate:   departure,
		OriginIata:      origin,
		DestinationIata: destination,
	}
}

// NewFlightWithID is NewFlight with a fixed hex id
func NewFlightWithID(id, flightNumber, date, origin, destination string) *entity.Flight {
	f := NewFlight(flightNumber, date, origin, destination)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		panic(err)
	}
	f.ID = oid
	return f
}

// NewObservation returns an observation of flight at an RFC 3339 instant
func NewObservation(flight *entity.Flight, observedAt, price string) *entity.Observation {
	at, err := time.Parse(time.RFC3339, observedAt)
	if err != nil {
		panic(err)
	}
	return &entity.Observation{
		ID:            primitive.NewObjectID(),
		FlightID:      flight.ID,
		ObservedAtUTC: at.UTC(),
		PriceChf:      decimal.RequireFromString(price),
	}
}
