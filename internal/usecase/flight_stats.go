package usecase

import (
	"context"
	"fmt"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/logger"
	"flighttracker-service/pkg/metrics"
)

// FlightStats answers per-flight questions: lookup, search, observation
// listing and the three aggregate views. Methods return nil, nil when the
// flight does not exist.
type FlightStats struct {
	flightRepo      repository.FlightRepository
	observationRepo repository.ObservationRepository
	calculator      *StatsCalculator
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewFlightStats creates a new flight stats usecase
func NewFlightStats(
	flightRepo repository.FlightRepository,
	observationRepo repository.ObservationRepository,
	calculator *StatsCalculator,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FlightStats {
	return &FlightStats{
		flightRepo:      flightRepo,
		observationRepo: observationRepo,
		calculator:      calculator,
		metrics:         metrics,
		logger:          logger,
	}
}

// Search returns summaries of all flights matching filter
func (s *FlightStats) Search(ctx context.Context, filter repository.FlightFilter) ([]entity.FlightSummary, error) {
	flights, err := s.flightRepo.Query(ctx, filter)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("search_flights").Inc()
		return nil, err
	}

	summaries := make([]entity.FlightSummary, 0, len(flights))
	for _, f := range flights {
		summaries = append(summaries, s.calculator.Summary(f))
	}
	return summaries, nil
}

// GetFlight returns the summary of one flight
func (s *FlightStats) GetFlight(ctx context.Context, id string) (*entity.FlightSummary, error) {
	flight, err := s.getFlight(ctx, id)
	if err != nil || flight == nil {
		return nil, err
	}

	summary := s.calculator.Summary(flight)
	return &summary, nil
}

// Observations lists a flight's observations within [from, to)
func (s *FlightStats) Observations(ctx context.Context, id string, from, to *time.Time) (*entity.ObservationList, error) {
	flight, observations, err := s.load(ctx, id, from, to, "observations")
	if err != nil || flight == nil {
		return nil, err
	}

	list := s.calculator.Observations(flight, observations)
	return &list, nil
}

// WeekdayStats aggregates all of a flight's observations by booking weekday
func (s *FlightStats) WeekdayStats(ctx context.Context, id string) (*entity.WeekdayStats, error) {
	flight, observations, err := s.load(ctx, id, nil, nil, "weekday")
	if err != nil || flight == nil {
		return nil, err
	}

	result := s.calculator.WeekdayStats(flight, observations)
	return &result, nil
}

// BookingDateStats aggregates a flight's observations within [from, to) by booking date
func (s *FlightStats) BookingDateStats(ctx context.Context, id string, from, to *time.Time) (*entity.BookingDateStats, error) {
	flight, observations, err := s.load(ctx, id, from, to, "booking_date")
	if err != nil || flight == nil {
		return nil, err
	}

	result := s.calculator.BookingDateStats(flight, observations)
	return &result, nil
}

// DaysToDepartureStats aggregates all of a flight's observations by days left before departure
func (s *FlightStats) DaysToDepartureStats(ctx context.Context, id string, bucketWidth int) (*entity.DaysToDepartureStats, error) {
	if bucketWidth < 1 {
		return nil, ErrInvalidBucket
	}

	flight, observations, err := s.load(ctx, id, nil, nil, "days_to_departure")
	if err != nil || flight == nil {
		return nil, err
	}

	result, err := s.calculator.DaysToDepartureStats(flight, observations, bucketWidth)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *FlightStats) getFlight(ctx context.Context, id string) (*entity.Flight, error) {
	flight, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("get_flight").Inc()
		return nil, err
	}
	if flight == nil {
		s.logger.Debug("Flight not found", "flightId", id)
	}
	return flight, nil
}

func (s *FlightStats) load(ctx context.Context, id string, from, to *time.Time, view string) (*entity.Flight, []*entity.Observation, error) {
	flight, err := s.getFlight(ctx, id)
	if err != nil || flight == nil {
		return nil, nil, err
	}

	var observations []*entity.Observation
	if from == nil && to == nil {
		observations, err = s.observationRepo.GetByFlightID(ctx, id)
	} else {
		observations, err = s.observationRepo.GetByFlightIDInRange(ctx, id, from, to)
	}
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("load_observations").Inc()
		return nil, nil, fmt.Errorf("failed to load observations for flight %s: %w", id, err)
	}

	s.metrics.ObservationsAggregated.WithLabelValues(view).Add(float64(len(observations)))
	s.logger.Debug("Loaded observations", "flightId", id, "view", view, "count", len(observations))
	return flight, observations, nil
}
