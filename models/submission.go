package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekSubmission is the single document holding one contestant's picks and
// parlay for one week. Unique on (contestant_id, season, week); the Revision
// field carries the optimistic-concurrency token for resubmissions before
// lock.
type WeekSubmission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContestantID string             `bson:"contestant_id" json:"contestant_id"`
	Season       int                `bson:"season" json:"season"`
	Week         int                `bson:"week" json:"week"`
	Picks        []Pick             `bson:"picks" json:"picks"`
	Parlay       Parlay             `bson:"parlay" json:"parlay"`
	SubmittedAt  time.Time          `bson:"submitted_at" json:"submitted_at"`
	Late         bool               `bson:"late" json:"late"`
	MinutesLate  int                `bson:"minutes_late" json:"minutes_late"`
	LatePenalty  float64            `bson:"late_penalty" json:"late_penalty"`
	ATSPoints    float64            `bson:"ats_points" json:"ats_points"`
	ParlayPoints float64            `bson:"parlay_points" json:"parlay_points"`
	TotalPoints  float64            `bson:"total_points" json:"total_points"`
	Revision     int64              `bson:"revision" json:"revision"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// RecalculateTotals rebuilds the weekly point totals from the graded picks
// and parlay. Always derived fresh, never incremented.
func (ws *WeekSubmission) RecalculateTotals() {
	ats := 0.0
	for _, pick := range ws.Picks {
		ats += pick.PointsEarned
	}
	ws.ATSPoints = ats
	ws.ParlayPoints = ws.Parlay.PointsEarned
	ws.TotalPoints = ws.ATSPoints + ws.ParlayPoints - ws.LatePenalty
	ws.UpdatedAt = time.Now()
}

// Record tallies the graded ATS picks into a W-L-P record
func (ws *WeekSubmission) Record() PickRecord {
	var record PickRecord
	for _, pick := range ws.Picks {
		record.Add(pick.Result)
	}
	return record
}

// PickForGame returns the ATS pick for the given game, or nil
func (ws *WeekSubmission) PickForGame(gameID string) *Pick {
	for i := range ws.Picks {
		if ws.Picks[i].GameID == gameID {
			return &ws.Picks[i]
		}
	}
	return nil
}

// FullyGraded returns true once every pick and the parlay reached a terminal
// result.
func (ws *WeekSubmission) FullyGraded() bool {
	for _, pick := range ws.Picks {
		if !pick.IsGraded() {
			return false
		}
	}
	return ws.Parlay.IsGraded()
}
