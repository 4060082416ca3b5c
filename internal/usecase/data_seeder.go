package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"

	"github.com/shopspring/decimal"
)

// SeedObservation is one price to record for a seeded flight.
type SeedObservation struct {
	ObservedAtUTC time.Time
	PriceChf      decimal.Decimal
}

// SeedFlight describes a flight and the prices observed for it.
type SeedFlight struct {
	FlightNumber    string
	DepartureDate   time.Time
	OriginIata      string
	DestinationIata string
	Observations    []SeedObservation
}

// SeedResult counts what a seeding run changed.
type SeedResult struct {
	FlightsCreated       int `json:"flightsCreated"`
	FlightsExisting      int `json:"flightsExisting"`
	ObservationsInserted int `json:"observationsInserted"`
	ObservationsSkipped  int `json:"observationsSkipped"`
}

// DataSeeder loads flights and observations into storage. Flights are
// found or created by their identity; observations already stored for the
// same instant are skipped, so seeding the same data twice is a no-op.
type DataSeeder struct {
	flightRepo      repository.FlightRepository
	observationRepo repository.ObservationRepository
	logger          logger.Logger
}

// NewDataSeeder creates a new data seeder
func NewDataSeeder(
	flightRepo repository.FlightRepository,
	observationRepo repository.ObservationRepository,
	logger logger.Logger,
) *DataSeeder {
	return &DataSeeder{
		flightRepo:      flightRepo,
		observationRepo: observationRepo,
		logger:          logger,
	}
}

// Seed stores every flight in flights along with its observations
func (s *DataSeeder) Seed(ctx context.Context, flights []SeedFlight) (SeedResult, error) {
	var result SeedResult

	for _, sf := range flights {
		if err := validateSeedFlight(sf); err != nil {
			return result, err
		}

		flight, created, err := s.findOrCreate(ctx, sf)
		if err != nil {
			return result, err
		}
		if created {
			result.FlightsCreated++
		} else {
			result.FlightsExisting++
		}

		inserted, skipped, err := s.addObservations(ctx, flight, sf.Observations, created)
		if err != nil {
			return result, err
		}
		result.ObservationsInserted += inserted
		result.ObservationsSkipped += skipped
	}

	s.logger.Info("Seeding finished",
		"flightsCreated", result.FlightsCreated,
		"flightsExisting", result.FlightsExisting,
		"observationsInserted", result.ObservationsInserted,
		"observationsSkipped", result.ObservationsSkipped)

	return result, nil
}

func (s *DataSeeder) findOrCreate(ctx context.Context, sf SeedFlight) (*entity.Flight, bool, error) {
	departure := localtime.DateOf(sf.DepartureDate)

	existing, err := s.flightRepo.FindUnique(ctx, sf.FlightNumber, departure, sf.OriginIata, sf.DestinationIata)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up flight %s: %w", sf.FlightNumber, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	flight := &entity.Flight{
		FlightNumber:    sf.FlightNumber,
		DepartureDate:   departure,
		OriginIata:      sf.OriginIata,
		DestinationIata: sf.DestinationIata,
	}
	if err := s.flightRepo.Insert(ctx, flight); err != nil {
		return nil, false, err
	}

	s.logger.Debug("Created flight", "flightId", flight.ID.Hex(), "flightNumber", flight.FlightNumber)
	return flight, true, nil
}

func (s *DataSeeder) addObservations(ctx context.Context, flight *entity.Flight, seeds []SeedObservation, created bool) (int, int, error) {
	known := make(map[int64]bool)
	if !created {
		existing, err := s.observationRepo.GetByFlightID(ctx, flight.ID.Hex())
		if err != nil {
			return 0, 0, fmt.Errorf("failed to load observations for flight %s: %w", flight.ID.Hex(), err)
		}
		for _, o := range existing {
			known[o.ObservedAtUTC.UnixMilli()] = true
		}
	}

	batch := make([]*entity.Observation, 0, len(seeds))
	skipped := 0
	for _, seed := range seeds {
		at := seed.ObservedAtUTC.UTC()
		if known[at.UnixMilli()] {
			skipped++
			continue
		}
		known[at.UnixMilli()] = true
		batch = append(batch, &entity.Observation{
			FlightID:      flight.ID,
			ObservedAtUTC: at,
			PriceChf:      seed.PriceChf,
		})
	}

	if err := s.observationRepo.InsertMany(ctx, batch); err != nil {
		return 0, 0, err
	}
	return len(batch), skipped, nil
}

func validateSeedFlight(sf SeedFlight) error {
	switch {
	case strings.TrimSpace(sf.FlightNumber) == "":
		return fmt.Errorf("seed flight is missing a flight number")
	case strings.TrimSpace(sf.OriginIata) == "" || strings.TrimSpace(sf.DestinationIata) == "":
		return fmt.Errorf("seed flight %s is missing origin or destination", sf.FlightNumber)
	case sf.DepartureDate.IsZero():
		return fmt.Errorf("seed flight %s is missing a departure date", sf.FlightNumber)
	}
	for _, o := range sf.Observations {
		if o.PriceChf.IsNegative() {
			return fmt.Errorf("seed flight %s has negative price %s", sf.FlightNumber, o.PriceChf)
		}
	}
	return nil
}

// SampleData is a small demo data set: two ZRH-BCN flights on the same
// day and one ZRH-JFK flight, priced through January and February 2026.
func SampleData() []SeedFlight {
	return []SeedFlight{
		{
			FlightNumber:    "LX1070",
			DepartureDate:   sampleDate(2026, time.February, 15),
			OriginIata:      "ZRH",
			DestinationIata: "BCN",
			Observations: []SeedObservation{
				sampleObservation(2026, time.January, 10, 9, 150),
				sampleObservation(2026, time.January, 10, 14, 155),
				sampleObservation(2026, time.January, 11, 10, 145),
				sampleObservation(2026, time.January, 12, 11, 160),
				sampleObservation(2026, time.January, 13, 9, 148),
				sampleObservation(2026, time.January, 15, 10, 152),
				sampleObservation(2026, time.January, 20, 14, 170),
				sampleObservation(2026, time.January, 25, 9, 180),
				sampleObservation(2026, time.February, 1, 10, 200),
				sampleObservation(2026, time.February, 5, 11, 220),
				sampleObservation(2026, time.February, 10, 9, 250),
			},
		},
		{
			FlightNumber:    "LX8080",
			DepartureDate:   sampleDate(2026, time.February, 20),
			OriginIata:      "ZRH",
			DestinationIata: "JFK",
			Observations: []SeedObservation{
				sampleObservation(2026, time.January, 15, 10, 450),
				sampleObservation(2026, time.January, 20, 11, 480),
				sampleObservation(2026, time.January, 25, 9, 500),
				sampleObservation(2026, time.February, 1, 14, 520),
				sampleObservation(2026, time.February, 10, 10, 580),
			},
		},
		{
			FlightNumber:    "LX1071",
			DepartureDate:   sampleDate(2026, time.February, 15),
			OriginIata:      "ZRH",
			DestinationIata: "BCN",
			Observations: []SeedObservation{
				sampleObservation(2026, time.January, 10, 10, 140),
				sampleObservation(2026, time.January, 12, 9, 135),
				sampleObservation(2026, time.January, 15, 14, 138),
				sampleObservation(2026, time.January, 20, 11, 142),
			},
		},
	}
}

func sampleDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleObservation(year int, month time.Month, day, hour int, price int64) SeedObservation {
	return SeedObservation{
		ObservedAtUTC: time.Date(year, month, day, hour, 0, 0, 0, time.UTC),
		PriceChf:      decimal.NewFromInt(price),
	}
}
