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

// MongoPotRepository stores pots keyed by (season, week, type). A settled
// pot's amount is historical; rollovers add to the mega pot instead of
// rewriting the source pot.
type MongoPotRepository struct {
	collection *mongo.Collection
}

// NewMongoPotRepository creates the repository and its indexes
func NewMongoPotRepository(db *MongoDB) *MongoPotRepository {
	collection := db.GetCollection("pots")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
				{Key: "type", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create pot indexes: %v", err)
	}

	return &MongoPotRepository{collection: collection}
}

// GetOrCreate returns the pot for (season, week, type), creating it with the
// seed amount on first access. The unique index makes concurrent creation
// safe; the loser of the race re-reads the winner's document.
func (r *MongoPotRepository) GetOrCreate(ctx context.Context, season, week int, potType models.PotType, seedCents int64) (*models.Pot, error) {
	filter := bson.M{"season": season, "week": week, "type": potType}

	var pot models.Pot
	err := r.collection.FindOne(ctx, filter).Decode(&pot)
	if err == nil {
		return &pot, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrap(err, "finding pot")
	}

	now := time.Now()
	pot = models.Pot{
		Season:      season,
		Week:        week,
		Type:        potType,
		AmountCents: seedCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.collection.InsertOne(ctx, pot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := r.collection.FindOne(ctx, filter).Decode(&pot); err != nil {
				return nil, errors.Wrap(err, "re-reading pot after create race")
			}
			return &pot, nil
		}
		return nil, errors.Wrap(err, "creating pot")
	}
	return &pot, nil
}

// AddAmount increments an unsettled pot. Used to roll an unclaimed weekly
// pot into the mega pot.
func (r *MongoPotRepository) AddAmount(ctx context.Context, season, week int, potType models.PotType, amountCents int64) error {
	filter := bson.M{"season": season, "week": week, "type": potType, "settled": false}
	update := bson.M{
		"$inc": bson.M{"amount_cents": amountCents},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "adding to pot")
	}
	if result.MatchedCount == 0 {
		return errors.Newf("no unsettled %s pot for season %d week %d", potType, season, week)
	}
	return nil
}

// MarkSettled flags the pot settled (optionally rolled over). Settling an
// already-settled pot reports false so callers stay idempotent.
func (r *MongoPotRepository) MarkSettled(ctx context.Context, season, week int, potType models.PotType, rolledOver bool) (bool, error) {
	filter := bson.M{"season": season, "week": week, "type": potType, "settled": false}
	update := bson.M{"$set": bson.M{
		"settled":     true,
		"rolled_over": rolledOver,
		"updated_at":  time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, errors.Wrap(err, "settling pot")
	}
	return result.ModifiedCount > 0, nil
}

// FindBySeason retrieves all pots for a season
func (r *MongoPotRepository) FindBySeason(ctx context.Context, season int) ([]*models.Pot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: 1}, {Key: "type", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "finding pots for season %d", season)
	}
	defer cursor.Close(ctx)

	var pots []*models.Pot
	for cursor.Next(ctx) {
		var pot models.Pot
		if err := cursor.Decode(&pot); err != nil {
			return nil, errors.Wrap(err, "decoding pot")
		}
		pots = append(pots, &pot)
	}
	return pots, cursor.Err()
}
