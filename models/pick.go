package models

import "fmt"

// PickResult represents the graded outcome of an ATS pick
type PickResult string

const (
	PickResultPending PickResult = "pending"
	PickResultWin     PickResult = "win"
	PickResultLoss    PickResult = "loss"
	PickResultPush    PickResult = "push"
)

// Pick represents one contestant's against-the-spread pick for one game.
// SpreadAtPick is frozen at submission from the live line and is the only
// spread grading ever reads. Result and PointsEarned are written once the
// game goes final and never before.
type Pick struct {
	GameID       string     `json:"game_id" bson:"game_id"`
	Team         string     `json:"team" bson:"team"`
	SpreadAtPick float64    `json:"spread_at_pick" bson:"spread_at_pick"`
	Result       PickResult `json:"result" bson:"result"`
	PointsEarned float64    `json:"points_earned" bson:"points_earned"`
}

// IsGraded returns true if the pick has a final result
func (p *Pick) IsGraded() bool {
	return p.Result != PickResultPending && p.Result != ""
}

// Description returns a short label for logs
func (p *Pick) Description() string {
	return fmt.Sprintf("%s %+.1f (game %s)", p.Team, p.SpreadAtPick, p.GameID)
}

// PickRecord represents a win-loss-push record over a set of graded picks
type PickRecord struct {
	Wins   int `json:"wins" bson:"wins"`
	Losses int `json:"losses" bson:"losses"`
	Pushes int `json:"pushes" bson:"pushes"`
}

// String returns the record in "W-L-P" format
func (r PickRecord) String() string {
	return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Pushes)
}

// Add counts one graded result into the record. Pending results are ignored.
func (r *PickRecord) Add(result PickResult) {
	switch result {
	case PickResultWin:
		r.Wins++
	case PickResultLoss:
		r.Losses++
	case PickResultPush:
		r.Pushes++
	}
}
