package repository

import (
	"context"
	"fmt"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/logger"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoObservationRepository implements the ObservationRepository interface
type MongoObservationRepository struct {
	collection *mongo.Collection
}

// observationDocument is the stored shape of an observation. Prices are
// kept as Decimal128 so no precision is lost at rest.
type observationDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	FlightID      primitive.ObjectID   `bson:"flightId"`
	ObservedAtUTC time.Time            `bson:"observedAtUtc"`
	PriceChf      primitive.Decimal128 `bson:"priceChf"`
}

// NewMongoObservationRepository creates a new MongoDB observation repository
func NewMongoObservationRepository(db *mongo.Database, log logger.Logger) repository.ObservationRepository {
	collection := db.Collection("observations")

	ctx := context.Background()
	flightTimeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "observedAtUtc", Value: 1},
		},
	}
	if _, err := collection.Indexes().CreateOne(ctx, flightTimeIndex); err != nil {
		log.Warn("Failed to create observation index", "error", err)
	}

	return &MongoObservationRepository{
		collection: collection,
	}
}

// GetByFlightID returns all observations for a flight
func (r *MongoObservationRepository) GetByFlightID(ctx context.Context, flightID string) ([]*entity.Observation, error) {
	return r.GetByFlightIDInRange(ctx, flightID, nil, nil)
}

// GetByFlightIDInRange returns the observations for a flight within [from, to)
func (r *MongoObservationRepository) GetByFlightIDInRange(ctx context.Context, flightID string, from, to *time.Time) ([]*entity.Observation, error) {
	oid, ok := entity.ParseFlightID(flightID)
	if !ok {
		return []*entity.Observation{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "observedAtUtc", Value: 1}})
	cursor, err := r.collection.Find(ctx, buildObservationFilter(oid, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find observations for flight %s: %w", flightID, err)
	}
	defer cursor.Close(ctx)

	var docs []observationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode observations for flight %s: %w", flightID, err)
	}

	observations := make([]*entity.Observation, 0, len(docs))
	for _, doc := range docs {
		observation, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		observations = append(observations, observation)
	}
	return observations, nil
}

// InsertMany stores a batch of observations and assigns their ids
func (r *MongoObservationRepository) InsertMany(ctx context.Context, observations []*entity.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(observations))
	for _, o := range observations {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		doc, err := toObservationDocument(o)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert %d observations: %w", len(docs), err)
	}
	return nil
}

func buildObservationFilter(flightID primitive.ObjectID, from, to *time.Time) bson.M {
	filter := bson.M{"flightId": flightID}

	observedAt := bson.M{}
	if from != nil {
		observedAt["$gte"] = *from
	}
	if to != nil {
		observedAt["$lt"] = *to
	}
	if len(observedAt) > 0 {
		filter["observedAtUtc"] = observedAt
	}

	return filter
}

func toObservationDocument(o *entity.Observation) (observationDocument, error) {
	price, err := primitive.ParseDecimal128(o.PriceChf.String())
	if err != nil {
		return observationDocument{}, fmt.Errorf("failed to encode price %s: %w", o.PriceChf, err)
	}

	return observationDocument{
		ID:            o.ID,
		FlightID:      o.FlightID,
		ObservedAtUTC: o.ObservedAtUTC.UTC(),
		PriceChf:      price,
	}, nil
}

func (d observationDocument) toEntity() (*entity.Observation, error) {
	price, err := decimal.NewFromString(d.PriceChf.String())
	if err != nil {
		return nil, fmt.Errorf("failed to decode price of observation %s: %w", d.ID.Hex(), err)
	}

	return &entity.Observation{
		ID:            d.ID,
		FlightID:      d.FlightID,
		ObservedAtUTC: d.ObservedAtUTC.UTC(),
		PriceChf:      price,
	}, nil
}
