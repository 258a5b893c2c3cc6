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

// MongoStandingRepository stores derived season standings. Only the
// standings aggregator writes here.
type MongoStandingRepository struct {
	collection *mongo.Collection
}

// NewMongoStandingRepository creates the repository and its indexes
func NewMongoStandingRepository(db *MongoDB) *MongoStandingRepository {
	collection := db.GetCollection("standings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "contestant_id", Value: 1},
				{Key: "season", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "rank", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create standing indexes: %v", err)
	}

	return &MongoStandingRepository{collection: collection}
}

// ReplaceSeason atomically swaps in a freshly recomputed set of standings
// for the season. Recomputation owns the whole season so a bulk upsert plus
// removal of stale contestants keeps the collection consistent.
func (r *MongoStandingRepository) ReplaceSeason(ctx context.Context, season int, standings []*models.Standing) error {
	if len(standings) == 0 {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"season": season}); err != nil {
			return errors.Wrapf(err, "clearing standings for season %d", season)
		}
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(standings))
	keep := make([]string, 0, len(standings))
	for _, standing := range standings {
		filter := bson.M{"contestant_id": standing.ContestantID, "season": season}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(standing).
			SetUpsert(true))
		keep = append(keep, standing.ContestantID)
	}

	if _, err := r.collection.BulkWrite(ctx, writes); err != nil {
		return errors.Wrapf(err, "writing standings for season %d", season)
	}

	stale := bson.M{"season": season, "contestant_id": bson.M{"$nin": keep}}
	if _, err := r.collection.DeleteMany(ctx, stale); err != nil {
		return errors.Wrapf(err, "removing stale standings for season %d", season)
	}
	return nil
}

// FindBySeason retrieves standings ordered by rank, then total points
func (r *MongoStandingRepository) FindBySeason(ctx context.Context, season int) ([]*models.Standing, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "rank", Value: 1},
		{Key: "total_points", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "finding standings for season %d", season)
	}
	defer cursor.Close(ctx)

	var standings []*models.Standing
	for cursor.Next(ctx) {
		var standing models.Standing
		if err := cursor.Decode(&standing); err != nil {
			return nil, errors.Wrap(err, "decoding standing")
		}
		standings = append(standings, &standing)
	}
	return standings, cursor.Err()
}
