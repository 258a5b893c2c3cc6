package database

import (
	"context"
	"time"

	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContestantRepository stores league members keyed by ID
type MongoContestantRepository struct {
	collection *mongo.Collection
}

// NewMongoContestantRepository creates the repository and its indexes
func NewMongoContestantRepository(db *MongoDB) *MongoContestantRepository {
	collection := db.GetCollection("contestants")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		logging.Warnf("Could not create contestant index: %v", err)
	}

	return &MongoContestantRepository{collection: collection}
}

// Upsert inserts or replaces a contestant keyed by ID
func (r *MongoContestantRepository) Upsert(ctx context.Context, contestant *models.Contestant) error {
	if contestant.CreatedAt.IsZero() {
		contestant.CreatedAt = time.Now()
	}
	filter := bson.M{"id": contestant.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, contestant, opts); err != nil {
		return errors.Wrapf(err, "upserting contestant %s", contestant.ID)
	}
	return nil
}

// FindByID retrieves a contestant, or nil when absent
func (r *MongoContestantRepository) FindByID(ctx context.Context, id string) (*models.Contestant, error) {
	var contestant models.Contestant
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&contestant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "finding contestant %s", id)
	}
	return &contestant, nil
}

// FindAll retrieves every contestant
func (r *MongoContestantRepository) FindAll(ctx context.Context) ([]*models.Contestant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "finding contestants")
	}
	defer cursor.Close(ctx)

	var contestants []*models.Contestant
	for cursor.Next(ctx) {
		var contestant models.Contestant
		if err := cursor.Decode(&contestant); err != nil {
			return nil, errors.Wrap(err, "decoding contestant")
		}
		contestants = append(contestants, &contestant)
	}
	return contestants, cursor.Err()
}
