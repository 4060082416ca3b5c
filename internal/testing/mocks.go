package testing

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/localtime"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockFlightRepository is an in-memory implementation of repository.FlightRepository for testing
type MockFlightRepository struct {
	mu      sync.RWMutex
	flights []*entity.Flight
	err     error
}

// NewMockFlightRepository creates a new mock flight repository
func NewMockFlightRepository(flights ...*entity.Flight) *MockFlightRepository {
	return &MockFlightRepository{
		flights: flights,
	}
}

// SetError sets the error to return from every call
func (m *MockFlightRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetByID returns the flight with the given hex id
func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*entity.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	oid, ok := entity.ParseFlightID(id)
	if !ok {
		return nil, nil
	}
	for _, f := range m.flights {
		if f.ID == oid {
			return f, nil
		}
	}
	return nil, nil
}

// Query returns flights matching filter, ordered by id
func (m *MockFlightRepository) Query(ctx context.Context, filter repository.FlightFilter) ([]*entity.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	result := make([]*entity.Flight, 0)
	for _, f := range m.flights {
		if matches(f, filter) {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.Hex() < result[j].ID.Hex()
	})
	return result, nil
}

// FindUnique returns the flight with the given identity, if any
func (m *MockFlightRepository) FindUnique(ctx context.Context, flightNumber string, departureDate time.Time, origin, destination string) (*entity.Flight, error) {
	flights, err := m.Query(ctx, repository.FlightFilter{
		Origin:        origin,
		Destination:   destination,
		FlightNumber:  flightNumber,
		DepartureDate: &departureDate,
	})
	if err != nil || len(flights) == 0 {
		return nil, err
	}
	return flights[0], nil
}

// Insert stores a flight and assigns its id
func (m *MockFlightRepository) Insert(ctx context.Context, flight *entity.Flight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if flight.ID.IsZero() {
		flight.ID = primitive.NewObjectID()
	}
	m.flights = append(m.flights, flight)
	return nil
}

// All returns every stored flight
func (m *MockFlightRepository) All() []*entity.Flight {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*entity.Flight(nil), m.flights...)
}

func matches(f *entity.Flight, filter repository.FlightFilter) bool {
	if strings.TrimSpace(filter.Origin) != "" && f.OriginIata != filter.Origin {
		return false
	}
	if strings.TrimSpace(filter.Destination) != "" && f.DestinationIata != filter.Destination {
		return false
	}
	if strings.TrimSpace(filter.FlightNumber) != "" && f.FlightNumber != filter.FlightNumber {
		return false
	}
	if filter.DepartureDate != nil {
		day := localtime.DateOf(*filter.DepartureDate)
		if f.DepartureDate.Before(day) || !f.DepartureDate.Before(day.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

// MockObservationRepository is an in-memory implementation of repository.ObservationRepository for testing
type MockObservationRepository struct {
	mu           sync.RWMutex
	observations []*entity.Observation
	err          error
	calls        int
}

// NewMockObservationRepository creates a new mock observation repository
func NewMockObservationRepository(observations ...*entity.Observation) *MockObservationRepository {
	return &MockObservationRepository{
		observations: observations,
	}
}

// SetError sets the error to return from every call
func (m *MockObservationRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many reads were served
func (m *MockObservationRepository) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// GetByFlightID returns all observations of a flight by observation time
func (m *MockObservationRepository) GetByFlightID(ctx context.Context, flightID string) ([]*entity.Observation, error) {
	return m.GetByFlightIDInRange(ctx, flightID, nil, nil)
}

// GetByFlightIDInRange returns observations of a flight within [from, to)
func (m *MockObservationRepository) GetByFlightIDInRange(ctx context.Context, flightID string, from, to *time.Time) ([]*entity.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	result := make([]*entity.Observation, 0)
	oid, ok := entity.ParseFlightID(flightID)
	if !ok {
		return result, nil
	}
	for _, o := range m.observations {
		if o.FlightID != oid {
			continue
		}
		if from != nil && o.ObservedAtUTC.Before(*from) {
			continue
		}
		if to != nil && !o.ObservedAtUTC.Before(*to) {
			continue
		}
		result = append(result, o)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ObservedAtUTC.Before(result[j].ObservedAtUTC)
	})
	return result, nil
}

// InsertMany stores observations and assigns their ids
func (m *MockObservationRepository) InsertMany(ctx context.Context, observations []*entity.Observation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	for _, o := range observations {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		m.observations = append(m.observations, o)
	}
	return nil
}

// All returns every stored observation
func (m *MockObservationRepository) All() []*entity.Observation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*entity.Observation(nil), m.observations...)
}

// MockRouteQueryRepository is an in-memory implementation of repository.RouteQueryRepository for testing
type MockRouteQueryRepository struct {
	mu      sync.RWMutex
	queries []*entity.RouteQuery
	nextID  uint
	err     error
}

// NewMockRouteQueryRepository creates a new mock route query repository
func NewMockRouteQueryRepository() *MockRouteQueryRepository {
	return &MockRouteQueryRepository{
		nextID: 1,
	}
}

// SetError sets the error to return from every call
func (m *MockRouteQueryRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Create stores a query and assigns its id
func (m *MockRouteQueryRepository) Create(ctx context.Context, query *entity.RouteQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	query.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	query.CreatedAt = now
	query.UpdatedAt = now
	m.queries = append(m.queries, query)
	return nil
}

// GetByID returns the query with the given id
func (m *MockRouteQueryRepository) GetByID(ctx context.Context, id uint) (*entity.RouteQuery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	for _, q := range m.queries {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

// List returns all queries, newest first
func (m *MockRouteQueryRepository) List(ctx context.Context) ([]*entity.RouteQuery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	result := make([]*entity.RouteQuery, 0, len(m.queries))
	for i := len(m.queries) - 1; i >= 0; i-- {
		result = append(result, m.queries[i])
	}
	return result, nil
}
