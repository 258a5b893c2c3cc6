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

// MongoLineSnapshotRepository is an append-only store of point-in-time
// lines. Snapshots are never updated or deleted.
type MongoLineSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoLineSnapshotRepository creates the repository and its indexes
func NewMongoLineSnapshotRepository(db *MongoDB) *MongoLineSnapshotRepository {
	collection := db.GetCollection("line_snapshots")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "game_id", Value: 1},
				{Key: "captured_at", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "game_id", Value: 1},
				{Key: "stage", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create line snapshot indexes: %v", err)
	}

	return &MongoLineSnapshotRepository{collection: collection}
}

// Append records one snapshot
func (r *MongoLineSnapshotRepository) Append(ctx context.Context, snapshot *models.LineSnapshot) error {
	if _, err := r.collection.InsertOne(ctx, snapshot); err != nil {
		return errors.Wrapf(err, "appending line snapshot for game %s", snapshot.GameID)
	}
	return nil
}

// AppendMany records a batch of snapshots
func (r *MongoLineSnapshotRepository) AppendMany(ctx context.Context, snapshots []*models.LineSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	docs := make([]interface{}, len(snapshots))
	for i, snapshot := range snapshots {
		docs[i] = snapshot
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "appending line snapshots")
	}
	return nil
}

// FindByGame retrieves all snapshots for a game in capture order
func (r *MongoLineSnapshotRepository) FindByGame(ctx context.Context, gameID string) ([]*models.LineSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "captured_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "finding snapshots for game %s", gameID)
	}
	defer cursor.Close(ctx)

	var snapshots []*models.LineSnapshot
	for cursor.Next(ctx) {
		var snapshot models.LineSnapshot
		if err := cursor.Decode(&snapshot); err != nil {
			return nil, errors.Wrap(err, "decoding line snapshot")
		}
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, cursor.Err()
}

// HasStage reports whether a snapshot at the given stage already exists for
// the game, so the open/lock stages are captured at most once.
func (r *MongoLineSnapshotRepository) HasStage(ctx context.Context, gameID string, stage models.SnapshotStage) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"game_id": gameID, "stage": stage}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrapf(err, "counting snapshots for game %s", gameID)
	}
	return count > 0, nil
}
