package usecase

import (
	"errors"
	"sort"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/stats"

	"github.com/shopspring/decimal"
)

// ErrInvalidBucket is returned for a days-to-departure bucket width below 1.
var ErrInvalidBucket = errors.New("bucket width must be positive")

// StatsCalculator groups a flight's observations by local-time facts and
// summarizes each group. It holds no state besides the zone mapper.
type StatsCalculator struct {
	mapper *localtime.Mapper
}

// NewStatsCalculator creates a new stats calculator
func NewStatsCalculator(mapper *localtime.Mapper) *StatsCalculator {
	return &StatsCalculator{
		mapper: mapper,
	}
}

// Timezone returns the zone label used for every view
func (c *StatsCalculator) Timezone() string {
	return c.mapper.Zone()
}

// Summary builds the flight summary echoed in responses
func (c *StatsCalculator) Summary(flight *entity.Flight) entity.FlightSummary {
	return entity.FlightSummary{
		ID:              flight.ID.Hex(),
		FlightNumber:    flight.FlightNumber,
		DepartureDate:   localtime.FormatDate(flight.DepartureDate),
		OriginIata:      flight.OriginIata,
		DestinationIata: flight.DestinationIata,
	}
}

// Observations renders observations with their local time
func (c *StatsCalculator) Observations(flight *entity.Flight, observations []*entity.Observation) entity.ObservationList {
	views := make([]entity.ObservationView, 0, len(observations))
	for _, o := range observations {
		views = append(views, entity.ObservationView{
			ID:              o.ID.Hex(),
			ObservedAtUTC:   o.ObservedAtUTC.UTC(),
			ObservedAtLocal: c.mapper.ToLocal(o.ObservedAtUTC).Format(time.RFC3339),
			PriceChf:        o.PriceChf,
		})
	}

	return entity.ObservationList{
		FlightID:     flight.ID.Hex(),
		Flight:       c.Summary(flight),
		Timezone:     c.Timezone(),
		Observations: views,
	}
}

// WeekdayStats summarizes prices per local booking weekday. All seven
// weekdays are present, Monday first.
func (c *StatsCalculator) WeekdayStats(flight *entity.Flight, observations []*entity.Observation) entity.WeekdayStats {
	var groups [7][]decimal.Decimal
	for _, o := range observations {
		wd := c.mapper.Weekday(o.ObservedAtUTC)
		groups[wd-1] = append(groups[wd-1], o.PriceChf)
	}

	series := make([]entity.WeekdayBucket, 0, 7)
	for i, prices := range groups {
		series = append(series, entity.WeekdayBucket{
			Weekday:   i + 1,
			Label:     localtime.WeekdayLabel(i + 1),
			Aggregate: stats.Summarize(prices),
		})
	}

	return entity.WeekdayStats{
		FlightID: flight.ID.Hex(),
		Flight:   c.Summary(flight),
		Timezone: c.Timezone(),
		Series:   series,
	}
}

// BookingDateStats summarizes prices per local booking date. Only dates
// with observations appear, oldest first.
func (c *StatsCalculator) BookingDateStats(flight *entity.Flight, observations []*entity.Observation) entity.BookingDateStats {
	groups := make(map[int][]decimal.Decimal)
	dates := make(map[int]time.Time)
	for _, o := range observations {
		date := c.mapper.BookingDate(o.ObservedAtUTC)
		day := localtime.DayNumber(date)
		groups[day] = append(groups[day], o.PriceChf)
		dates[day] = date
	}

	series := make([]entity.BookingDateBucket, 0, len(groups))
	for _, day := range sortedKeys(groups) {
		series = append(series, entity.BookingDateBucket{
			Date:      localtime.FormatDate(dates[day]),
			Aggregate: stats.Summarize(groups[day]),
		})
	}

	return entity.BookingDateStats{
		FlightID: flight.ID.Hex(),
		Flight:   c.Summary(flight),
		Timezone: c.Timezone(),
		Series:   series,
	}
}

// DaysToDepartureStats summarizes prices by days left until departure,
// grouped into buckets of the given width. Observations made after the
// departure day are left out.
func (c *StatsCalculator) DaysToDepartureStats(flight *entity.Flight, observations []*entity.Observation, width int) (entity.DaysToDepartureStats, error) {
	if width < 1 {
		return entity.DaysToDepartureStats{}, ErrInvalidBucket
	}

	groups := make(map[int][]decimal.Decimal)
	for _, o := range observations {
		days := c.mapper.DaysToDeparture(o.ObservedAtUTC, flight.DepartureDate)
		if days < 0 {
			continue
		}
		start := BucketStart(days, width)
		groups[start] = append(groups[start], o.PriceChf)
	}

	series := make([]entity.DaysToDepartureBucket, 0, len(groups))
	for _, start := range sortedKeys(groups) {
		series = append(series, entity.DaysToDepartureBucket{
			DaysFrom:  start,
			DaysTo:    start + width,
			Aggregate: stats.Summarize(groups[start]),
		})
	}

	return entity.DaysToDepartureStats{
		FlightID:    flight.ID.Hex(),
		Flight:      c.Summary(flight),
		Timezone:    c.Timezone(),
		BucketWidth: width,
		Series:      series,
	}, nil
}

// BucketStart returns floor(days/width)*width. width must be positive.
func BucketStart(days, width int) int {
	q := days / width
	if days%width != 0 && days < 0 {
		q--
	}
	return q * width
}

func sortedKeys(m map[int][]decimal.Decimal) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
