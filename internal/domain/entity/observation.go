package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Observation is a single price seen for a flight at a point in time. Prices are CHF.
type Observation struct {
	ID            primitive.ObjectID
	FlightID      primitive.ObjectID
	ObservedAtUTC time.Time
	PriceChf      decimal.Decimal
}

// Prices extracts the price of every observation in order.
func Prices(observations []*Observation) []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(observations))
	for _, o := range observations {
		prices = append(prices, o.PriceChf)
	}
	return prices
}
