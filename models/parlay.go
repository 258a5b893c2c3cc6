package models

// LegOutcome represents the graded outcome of one parlay leg
type LegOutcome string

const (
	LegOutcomePending LegOutcome = "pending"
	LegOutcomeWin     LegOutcome = "win"
	LegOutcomeLoss    LegOutcome = "loss"
	LegOutcomePush    LegOutcome = "push"
)

// ParlayStatus represents the all-or-nothing state of a parlay
type ParlayStatus string

const (
	ParlayStatusPending   ParlayStatus = "pending"
	ParlayStatusHit       ParlayStatus = "hit"
	ParlayStatusBusted    ParlayStatus = "busted"
	ParlayStatusNoContest ParlayStatus = "no_contest"
)

// ParlayLeg is one pick inside a parlay, graded as a moneyline: the team
// with the strictly higher final score wins the leg. MoneylineAtPick is
// frozen at submission time.
type ParlayLeg struct {
	GameID          string     `json:"game_id" bson:"game_id"`
	Team            string     `json:"team" bson:"team"`
	MoneylineAtPick float64    `json:"ml_at_pick" bson:"ml_at_pick"`
	Outcome         LegOutcome `json:"outcome" bson:"outcome"`
}

// Parlay is a contestant's bundled moneyline picks for a week. Leg order is
// irrelevant to grading. The whole parlay hits only if every non-push leg
// wins; a single losing leg busts it.
type Parlay struct {
	Legs          []ParlayLeg  `json:"legs" bson:"legs"`
	Status        ParlayStatus `json:"status" bson:"status"`
	EffectiveLegs int          `json:"effective_legs" bson:"effective_legs"`
	PointsEarned  float64      `json:"points_earned" bson:"points_earned"`
}

// LegCount returns the number of legs submitted
func (p *Parlay) LegCount() int {
	return len(p.Legs)
}

// IsGraded returns true once the parlay reached a terminal status
func (p *Parlay) IsGraded() bool {
	switch p.Status {
	case ParlayStatusHit, ParlayStatusBusted, ParlayStatusNoContest:
		return true
	}
	return false
}

// GameIDs returns the distinct game IDs the legs reference
func (p *Parlay) GameIDs() []string {
	seen := make(map[string]bool, len(p.Legs))
	ids := make([]string, 0, len(p.Legs))
	for _, leg := range p.Legs {
		if !seen[leg.GameID] {
			seen[leg.GameID] = true
			ids = append(ids, leg.GameID)
		}
	}
	return ids
}
