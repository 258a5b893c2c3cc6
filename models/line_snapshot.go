package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapshotStage marks the point in time a line snapshot was captured
type SnapshotStage string

const (
	SnapshotStageOpen SnapshotStage = "open"
	SnapshotStagePick SnapshotStage = "pick"
	SnapshotStageLock SnapshotStage = "lock"
)

// LineSnapshot is an immutable point-in-time record of a game's line.
// Snapshots are append-only: the store never updates or deletes one.
type LineSnapshot struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GameID     string             `bson:"game_id" json:"game_id"`
	Season     int                `bson:"season" json:"season"`
	Week       int                `bson:"week" json:"week"`
	Stage      SnapshotStage      `bson:"stage" json:"stage"`
	Spread     float64            `bson:"spread" json:"spread"`
	Total      float64            `bson:"total" json:"total"`
	CapturedAt time.Time          `bson:"captured_at" json:"captured_at"`
}

// NewLineSnapshot captures the game's current line at the given stage
func NewLineSnapshot(game *Game, stage SnapshotStage) *LineSnapshot {
	snap := &LineSnapshot{
		GameID:     game.ID,
		Season:     game.Season,
		Week:       game.Week,
		Stage:      stage,
		CapturedAt: time.Now(),
	}
	if game.HasLine() {
		snap.Spread = game.Line.Spread
		snap.Total = game.Line.Total
	}
	return snap
}
