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

// MongoGameRepository stores game documents keyed by feed ID. The engine
// only reads games; writes come from the feed updater.
type MongoGameRepository struct {
	collection *mongo.Collection
}

// NewMongoGameRepository creates the repository and its indexes
func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create game indexes: %v", err)
	}

	return &MongoGameRepository{collection: collection}
}

// Upsert inserts or replaces the game document keyed by feed ID
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	filter := bson.M{"id": game.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, game, opts); err != nil {
		return errors.Wrapf(err, "upserting game %s", game.ID)
	}
	return nil
}

// FindByID retrieves a game by its feed ID, or nil when absent
func (r *MongoGameRepository) FindByID(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"id": gameID}).Decode(&game)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "finding game %s", gameID)
	}
	return &game, nil
}

// FindByWeek retrieves all games for a season/week
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.Game, error) {
	filter := bson.M{"season": season, "week": week}
	return r.find(ctx, filter)
}

// FindBySeason retrieves all games for a season
func (r *MongoGameRepository) FindBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	return r.find(ctx, bson.M{"season": season})
}

// FindByIDs retrieves the games with the given feed IDs
func (r *MongoGameRepository) FindByIDs(ctx context.Context, gameIDs []string) ([]*models.Game, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": gameIDs}})
}

func (r *MongoGameRepository) find(ctx context.Context, filter bson.M) ([]*models.Game, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "finding games")
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	for cursor.Next(ctx) {
		var game models.Game
		if err := cursor.Decode(&game); err != nil {
			return nil, errors.Wrap(err, "decoding game")
		}
		games = append(games, &game)
	}
	return games, cursor.Err()
}
