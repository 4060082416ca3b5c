package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"flighttracker-service/internal/usecase"
	"flighttracker-service/pkg/localtime"

	"github.com/shopspring/decimal"
)

// importFlight is one flight in an import file:
//
//	[{"flightNumber": "LX1070", "departureDate": "2026-02-15",
//	  "origin": "ZRH", "destination": "BCN",
//	  "observations": [{"observedAtUtc": "2026-01-10T09:00:00Z", "priceChf": 150}]}]
type importFlight struct {
	FlightNumber  string              `json:"flightNumber"`
	DepartureDate string              `json:"departureDate"`
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	Observations  []importObservation `json:"observations"`
}

type importObservation struct {
	ObservedAtUTC time.Time       `json:"observedAtUtc"`
	PriceChf      decimal.Decimal `json:"priceChf"`
}

func parseImportFile(r io.Reader) ([]usecase.SeedFlight, error) {
	var raw []importFlight
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}

	flights := make([]usecase.SeedFlight, 0, len(raw))
	for i, f := range raw {
		departure, err := localtime.ParseDate(f.DepartureDate)
		if err != nil {
			return nil, fmt.Errorf("flight %d (%s): invalid departureDate %q, use YYYY-MM-DD", i, f.FlightNumber, f.DepartureDate)
		}

		observations := make([]usecase.SeedObservation, 0, len(f.Observations))
		for j, o := range f.Observations {
			if o.ObservedAtUTC.IsZero() {
				return nil, fmt.Errorf("flight %d (%s): observation %d is missing observedAtUtc", i, f.FlightNumber, j)
			}
			observations = append(observations, usecase.SeedObservation{
				ObservedAtUTC: o.ObservedAtUTC.UTC(),
				PriceChf:      o.PriceChf,
			})
		}

		flights = append(flights, usecase.SeedFlight{
			FlightNumber:    f.FlightNumber,
			DepartureDate:   departure,
			OriginIata:      f.Origin,
			DestinationIata: f.Destination,
			Observations:    observations,
		})
	}
	return flights, nil
}
