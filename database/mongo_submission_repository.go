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

// ErrRevisionConflict is returned when a compare-and-set write lost to a
// concurrent submission for the same (contestant, season, week).
var ErrRevisionConflict = errors.New("submission revision conflict")

// MongoSubmissionRepository stores one WeekSubmission document per
// (contestant, season, week). The unique index is the natural key; the
// revision field makes resubmission a compare-and-set so two near-simultaneous
// submissions from the same contestant cannot both win.
type MongoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubmissionRepository creates the repository and its indexes
func NewMongoSubmissionRepository(db *MongoDB) *MongoSubmissionRepository {
	collection := db.GetCollection("week_submissions")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "contestant_id", Value: 1},
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "season", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create submission indexes: %v", err)
	}

	return &MongoSubmissionRepository{collection: collection}
}

// CompareAndSwap writes the submission only if the stored revision still
// matches expectedRevision (0 means "no document yet"). The unique index
// turns a lost race into a duplicate-key error, surfaced as
// ErrRevisionConflict.
func (r *MongoSubmissionRepository) CompareAndSwap(ctx context.Context, submission *models.WeekSubmission, expectedRevision int64) error {
	submission.Revision = expectedRevision + 1
	submission.UpdatedAt = time.Now()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = submission.UpdatedAt
	}

	filter := bson.M{
		"contestant_id": submission.ContestantID,
		"season":        submission.Season,
		"week":          submission.Week,
		"revision":      expectedRevision,
	}
	opts := options.Replace().SetUpsert(expectedRevision == 0)

	result, err := r.collection.ReplaceOne(ctx, filter, submission, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Mark(err, ErrRevisionConflict)
		}
		return errors.Wrap(err, "writing submission")
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		// Document exists at a different revision: a concurrent write won
		return ErrRevisionConflict
	}
	return nil
}

// FindByContestantWeek retrieves one contestant's submission, or nil
func (r *MongoSubmissionRepository) FindByContestantWeek(ctx context.Context, contestantID string, season, week int) (*models.WeekSubmission, error) {
	filter := bson.M{
		"contestant_id": contestantID,
		"season":        season,
		"week":          week,
	}

	var submission models.WeekSubmission
	err := r.collection.FindOne(ctx, filter).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding submission")
	}
	return &submission, nil
}

// FindAllByWeek retrieves every contestant's submission for a season/week
func (r *MongoSubmissionRepository) FindAllByWeek(ctx context.Context, season, week int) ([]*models.WeekSubmission, error) {
	return r.find(ctx, bson.M{"season": season, "week": week})
}

// FindAllBySeason retrieves every submission for a season
func (r *MongoSubmissionRepository) FindAllBySeason(ctx context.Context, season int) ([]*models.WeekSubmission, error) {
	return r.find(ctx, bson.M{"season": season})
}

// UpdateGrading writes grading output (pick results, parlay status, weekly
// totals) back onto the submission without touching the picks a contestant
// locked in. Safe to call repeatedly.
func (r *MongoSubmissionRepository) UpdateGrading(ctx context.Context, submission *models.WeekSubmission) error {
	filter := bson.M{
		"contestant_id": submission.ContestantID,
		"season":        submission.Season,
		"week":          submission.Week,
	}
	update := bson.M{"$set": bson.M{
		"picks":         submission.Picks,
		"parlay":        submission.Parlay,
		"ats_points":    submission.ATSPoints,
		"parlay_points": submission.ParlayPoints,
		"total_points":  submission.TotalPoints,
		"updated_at":    time.Now(),
	}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return errors.Wrapf(err, "updating grading for contestant %s week %d", submission.ContestantID, submission.Week)
	}
	return nil
}

func (r *MongoSubmissionRepository) find(ctx context.Context, filter bson.M) ([]*models.WeekSubmission, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "finding submissions")
	}
	defer cursor.Close(ctx)

	var submissions []*models.WeekSubmission
	for cursor.Next(ctx) {
		var submission models.WeekSubmission
		if err := cursor.Decode(&submission); err != nil {
			return nil, errors.Wrap(err, "decoding submission")
		}
		submissions = append(submissions, &submission)
	}
	return submissions, cursor.Err()
}
