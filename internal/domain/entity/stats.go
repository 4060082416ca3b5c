package entity

import (
	"time"

	"flighttracker-service/pkg/stats"

	"github.com/shopspring/decimal"
)

// FlightSummary is the flight as echoed in every stats response.
type FlightSummary struct {
	ID              string `json:"id"`
	FlightNumber    string `json:"flightNumber"`
	DepartureDate   string `json:"departureDate"`
	OriginIata      string `json:"originIata"`
	DestinationIata string `json:"destinationIata"`
}

// ObservationView is an observation with its instant rendered in UTC and local time.
type ObservationView struct {
	ID              string          `json:"id"`
	ObservedAtUTC   time.Time       `json:"observedAtUtc"`
	ObservedAtLocal string          `json:"observedAtLocal"`
	PriceChf        decimal.Decimal `json:"priceChf"`
}

type ObservationList struct {
	FlightID     string            `json:"flightId"`
	Flight       FlightSummary     `json:"flight"`
	Timezone     string            `json:"timezone"`
	Observations []ObservationView `json:"observations"`
}

type WeekdayBucket struct {
	Weekday int    `json:"weekday"`
	Label   string `json:"label"`
	stats.Aggregate
}

type BookingDateBucket struct {
	Date string `json:"date"`
	stats.Aggregate
}

// DaysToDepartureBucket covers days to departure in [DaysFrom, DaysTo).
type DaysToDepartureBucket struct {
	DaysFrom int `json:"daysFrom"`
	DaysTo   int `json:"daysTo"`
	stats.Aggregate
}

type WeekdayStats struct {
	FlightID string          `json:"flightId"`
	Flight   FlightSummary   `json:"flight"`
	Timezone string          `json:"timezone"`
	Series   []WeekdayBucket `json:"series"`
}

type BookingDateStats struct {
	FlightID string              `json:"flightId"`
	Flight   FlightSummary       `json:"flight"`
	Timezone string              `json:"timezone"`
	Series   []BookingDateBucket `json:"series"`
}

type DaysToDepartureStats struct {
	FlightID    string                  `json:"flightId"`
	Flight      FlightSummary           `json:"flight"`
	Timezone    string                  `json:"timezone"`
	BucketWidth int                     `json:"bucketWidth"`
	Series      []DaysToDepartureBucket `json:"series"`
}

// FlexWindowEntry is the cheapest flight found for one departure date.
type FlexWindowEntry struct {
	Date           time.Time       `json:"-"`
	DepartureDate  string          `json:"departureDate"`
	MedianPriceChf decimal.Decimal `json:"medianPriceChf"`
	FlightID       string          `json:"flightId"`
}

type FlexWindowStats struct {
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	TargetDate  string            `json:"targetDate"`
	FlexDays    int               `json:"flexDays"`
	Timezone    string            `json:"timezone"`
	Series      []FlexWindowEntry `json:"series"`
	Best        *FlexWindowEntry  `json:"best"`
}
