package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database, log logger.Logger) repository.FlightRepository {
	collection := db.Collection("flights")

	// Route + day lookups drive the flex window, flight number drives search
	ctx := context.Background()
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "originIata", Value: 1},
				{Key: "destinationIata", Value: 1},
				{Key: "departureDate", Value: 1},
			},
		},
		{
			Keys: bson.M{"flightNumber": 1},
		},
	})
	if err != nil {
		log.Warn("Failed to create flight indexes", "error", err)
	}

	return &MongoFlightRepository{
		collection: collection,
	}
}

// GetByID finds a flight by its hex id
func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*entity.Flight, error) {
	oid, ok := entity.ParseFlightID(id)
	if !ok {
		return nil, nil
	}

	var flight entity.Flight
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flight %s: %w", id, err)
	}
	return &flight, nil
}

// Query returns every flight matching all set fields of filter
func (r *MongoFlightRepository) Query(ctx context.Context, filter repository.FlightFilter) ([]*entity.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, buildFlightFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer cursor.Close(ctx)

	flights := make([]*entity.Flight, 0)
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode flights: %w", err)
	}
	return flights, nil
}

// FindUnique finds the flight identified by number, departure day and route
func (r *MongoFlightRepository) FindUnique(ctx context.Context, flightNumber string, departureDate time.Time, origin, destination string) (*entity.Flight, error) {
	filter := buildFlightFilter(repository.FlightFilter{
		Origin:        origin,
		Destination:   destination,
		FlightNumber:  flightNumber,
		DepartureDate: &departureDate,
	})

	var flight entity.Flight
	err := r.collection.FindOne(ctx, filter).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find flight %s: %w", flightNumber, err)
	}
	return &flight, nil
}

// Insert stores a new flight and assigns its id
func (r *MongoFlightRepository) Insert(ctx context.Context, flight *entity.Flight) error {
	if flight.ID.IsZero() {
		flight.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, flight); err != nil {
		return fmt.Errorf("failed to insert flight %s: %w", flight.FlightNumber, err)
	}
	return nil
}

func buildFlightFilter(f repository.FlightFilter) bson.M {
	filter := bson.M{}

	if strings.TrimSpace(f.Origin) != "" {
		filter["originIata"] = f.Origin
	}
	if strings.TrimSpace(f.Destination) != "" {
		filter["destinationIata"] = f.Destination
	}
	if strings.TrimSpace(f.FlightNumber) != "" {
		filter["flightNumber"] = f.FlightNumber
	}
	if f.DepartureDate != nil {
		day := localtime.DateOf(*f.DepartureDate)
		filter["departureDate"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}

	return filter
}
