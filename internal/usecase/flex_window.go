package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"
	"flighttracker-service/pkg/metrics"
	"flighttracker-service/pkg/stats"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidFlexDays is returned for a negative flexibility window.
var ErrInvalidFlexDays = errors.New("flex days must be non-negative")

const defaultFlexConcurrency = 4

// FlexWindowQuery asks for the cheapest departure within FlexDays of TargetDate.
type FlexWindowQuery struct {
	Origin      string
	Destination string
	TargetDate  time.Time
	FlexDays    int
}

// FlexWindowRanker finds, for each departure date around a target date,
// the flight with the lowest median observed price on a route.
type FlexWindowRanker struct {
	flightRepo      repository.FlightRepository
	observationRepo repository.ObservationRepository
	timezone        string
	concurrency     int
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewFlexWindowRanker creates a new flex window ranker. Dates are queried
// with at most concurrency requests in flight; values below 1 use a default.
func NewFlexWindowRanker(
	flightRepo repository.FlightRepository,
	observationRepo repository.ObservationRepository,
	timezone string,
	concurrency int,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FlexWindowRanker {
	if concurrency < 1 {
		concurrency = defaultFlexConcurrency
	}
	return &FlexWindowRanker{
		flightRepo:      flightRepo,
		observationRepo: observationRepo,
		timezone:        timezone,
		concurrency:     concurrency,
		metrics:         metrics,
		logger:          logger,
	}
}

// Rank scans [TargetDate-FlexDays, TargetDate+FlexDays]. Dates without any
// observed flight are omitted from the series. Best is nil when the series
// is empty.
func (r *FlexWindowRanker) Rank(ctx context.Context, q FlexWindowQuery) (*entity.FlexWindowStats, error) {
	if q.FlexDays < 0 {
		return nil, ErrInvalidFlexDays
	}

	target := localtime.DateOf(q.TargetDate)
	dates := make([]time.Time, 0, 2*q.FlexDays+1)
	for offset := -q.FlexDays; offset <= q.FlexDays; offset++ {
		dates = append(dates, target.AddDate(0, 0, offset))
	}

	// Each goroutine owns one slot, so the series keeps date order.
	winners := make([]*entity.FlexWindowEntry, len(dates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			entry, err := r.cheapestOn(gctx, q.Origin, q.Destination, date)
			if err != nil {
				return err
			}
			winners[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.metrics.ErrorsCount.WithLabelValues("flex_window").Inc()
		return nil, err
	}
	r.metrics.FlexDatesScanned.Add(float64(len(dates)))

	series := make([]entity.FlexWindowEntry, 0, len(dates))
	for _, w := range winners {
		if w != nil {
			series = append(series, *w)
		}
	}

	r.logger.Debug("Ranked flex window",
		"origin", q.Origin,
		"destination", q.Destination,
		"targetDate", localtime.FormatDate(target),
		"flexDays", q.FlexDays,
		"datesWithData", len(series),
	)

	return &entity.FlexWindowStats{
		Origin:      q.Origin,
		Destination: q.Destination,
		TargetDate:  localtime.FormatDate(target),
		FlexDays:    q.FlexDays,
		Timezone:    r.timezone,
		Series:      series,
		Best:        lowestMedian(series),
	}, nil
}

// cheapestOn returns the flight with the lowest median on date, or nil
// when no flight on that date has observations. Equal medians go to the
// lower flight id.
func (r *FlexWindowRanker) cheapestOn(ctx context.Context, origin, destination string, date time.Time) (*entity.FlexWindowEntry, error) {
	flights, err := r.flightRepo.Query(ctx, repository.FlightFilter{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: &date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query flights on %s: %w", localtime.FormatDate(date), err)
	}

	var best *entity.FlexWindowEntry
	for _, f := range flights {
		id := f.ID.Hex()
		observations, err := r.observationRepo.GetByFlightID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load observations for flight %s: %w", id, err)
		}

		median := stats.Median(entity.Prices(observations))
		if median == nil {
			continue
		}
		if best == nil || median.LessThan(best.MedianPriceChf) ||
			(median.Equal(best.MedianPriceChf) && id < best.FlightID) {
			best = &entity.FlexWindowEntry{
				Date:           date,
				DepartureDate:  localtime.FormatDate(date),
				MedianPriceChf: *median,
				FlightID:       id,
			}
		}
	}
	return best, nil
}

// lowestMedian picks the cheapest entry, the earliest date winning ties.
func lowestMedian(series []entity.FlexWindowEntry) *entity.FlexWindowEntry {
	var best *entity.FlexWindowEntry
	for i := range series {
		if best == nil || series[i].MedianPriceChf.LessThan(best.MedianPriceChf) {
			entry := series[i]
			best = &entry
		}
	}
	return best
}
