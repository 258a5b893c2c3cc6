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

// MongoPayoutRepository is the append-only payout ledger. Entries are never
// updated or deleted after disbursement.
type MongoPayoutRepository struct {
	collection *mongo.Collection
}

// NewMongoPayoutRepository creates the repository and its indexes
func NewMongoPayoutRepository(db *MongoDB) *MongoPayoutRepository {
	collection := db.GetCollection("payouts")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
				{Key: "pot_type", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "contestant_id", Value: 1},
				{Key: "season", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create payout indexes: %v", err)
	}

	return &MongoPayoutRepository{collection: collection}
}

// AppendMany records a batch of payouts
func (r *MongoPayoutRepository) AppendMany(ctx context.Context, payouts []*models.Payout) error {
	if len(payouts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(payouts))
	for i, payout := range payouts {
		payout.CreatedAt = time.Now()
		docs[i] = payout
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "appending payouts")
	}
	return nil
}

// ExistsForPot reports whether any payout was already recorded against the
// pot, guarding settlement idempotency.
func (r *MongoPayoutRepository) ExistsForPot(ctx context.Context, season, week int, potType models.PotType) (bool, error) {
	filter := bson.M{"season": season, "week": week, "pot_type": potType}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "counting payouts")
	}
	return count > 0, nil
}

// FindBySeason retrieves every payout for a season in ledger order
func (r *MongoPayoutRepository) FindBySeason(ctx context.Context, season int) ([]*models.Payout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "finding payouts for season %d", season)
	}
	defer cursor.Close(ctx)

	var payouts []*models.Payout
	for cursor.Next(ctx) {
		var payout models.Payout
		if err := cursor.Decode(&payout); err != nil {
			return nil, errors.Wrap(err, "decoding payout")
		}
		payouts = append(payouts, &payout)
	}
	return payouts, cursor.Err()
}
