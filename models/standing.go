package models

import "time"

// Standing is one contestant's running season totals. Fully derived data:
// only the standings aggregator writes it, always recomputed from stored
// week submissions rather than incremented.
type Standing struct {
	ContestantID  string     `bson:"contestant_id" json:"contestant_id"`
	Handle        string     `bson:"handle" json:"handle"`
	Season        int        `bson:"season" json:"season"`
	ATSRecord     PickRecord `bson:"ats_record" json:"ats_record"`
	ATSPoints     float64    `bson:"ats_points" json:"ats_points"`
	ParlaysHit    int        `bson:"parlays_hit" json:"parlays_hit"`
	ParlaysBusted int        `bson:"parlays_busted" json:"parlays_busted"`
	ParlayPoints  float64    `bson:"parlay_points" json:"parlay_points"`
	PenaltyPoints float64    `bson:"penalty_points" json:"penalty_points"`
	TotalPoints   float64    `bson:"total_points" json:"total_points"`
	Rank          int        `bson:"rank" json:"rank"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// AddWeek folds one graded week submission into the standing
func (s *Standing) AddWeek(ws *WeekSubmission) {
	record := ws.Record()
	s.ATSRecord.Wins += record.Wins
	s.ATSRecord.Losses += record.Losses
	s.ATSRecord.Pushes += record.Pushes
	s.ATSPoints += ws.ATSPoints
	s.ParlayPoints += ws.ParlayPoints
	s.PenaltyPoints += ws.LatePenalty
	switch ws.Parlay.Status {
	case ParlayStatusHit:
		s.ParlaysHit++
	case ParlayStatusBusted:
		s.ParlaysBusted++
	}
	s.TotalPoints = s.ATSPoints + s.ParlayPoints - s.PenaltyPoints
}

// RankStandings assigns standard competition ranks to standings already
// sorted descending by total points: tied contestants share a rank and the
// next distinct total skips accordingly (1, 1, 3).
func RankStandings(standings []*Standing) {
	for i, standing := range standings {
		if i > 0 && standing.TotalPoints == standings[i-1].TotalPoints {
			standing.Rank = standings[i-1].Rank
		} else {
			standing.Rank = i + 1
		}
	}
}
