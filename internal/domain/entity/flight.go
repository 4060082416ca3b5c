package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flight is one scheduled departure whose prices are tracked.
// FlightNumber may be composite for connections, e.g. "LX1070/LX8080".
type Flight struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FlightNumber    string             `bson:"flightNumber"`
	DepartureDate   time.Time          `bson:"departureDate"`
	OriginIata      string             `bson:"originIata"`
	DestinationIata string             `bson:"destinationIata"`
}

// ParseFlightID parses a hex flight id. Malformed ids report false instead of an error.
func ParseFlightID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
