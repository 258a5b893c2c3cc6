package models

import "time"

// GameSnapshot is the record the odds/score feed delivers for one game. The
// engine treats SpreadCurrent and TotalCurrent as transient; only values
// frozen into a pick at submission time are authoritative for grading.
type GameSnapshot struct {
	ID            string    `json:"id"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	HomeScore     int       `json:"home_score"`
	AwayScore     int       `json:"away_score"`
	SpreadCurrent float64   `json:"spread_current"`
	TotalCurrent  float64   `json:"total_current"`
	HomeMoneyline float64   `json:"home_ml,omitempty"`
	AwayMoneyline float64   `json:"away_ml,omitempty"`
	KickoffTime   time.Time `json:"kickoff_time"`
	Status        string    `json:"status"`
	Season        int       `json:"season"`
	Week          int       `json:"week"`
	Possession    string    `json:"possession,omitempty"`
	YardLine      int       `json:"yard_line,omitempty"`
	Down          int       `json:"down,omitempty"`
	Distance      int       `json:"distance,omitempty"`
	Quarter       string    `json:"quarter,omitempty"`
	TimeRemaining string    `json:"time_remaining,omitempty"`
	IsRedzone     bool      `json:"is_redzone,omitempty"`
}

// ToGame converts a feed snapshot into the stored game document.
func (s *GameSnapshot) ToGame() *Game {
	game := &Game{
		ID:          s.ID,
		Season:      s.Season,
		Week:        s.Week,
		Home:        s.HomeTeam,
		Away:        s.AwayTeam,
		KickoffTime: s.KickoffTime,
		Status:      NormalizeStatus(s.Status),
		HomeScore:   s.HomeScore,
		AwayScore:   s.AwayScore,
		UpdatedAt:   time.Now(),
	}
	if s.SpreadCurrent != 0 || s.TotalCurrent != 0 {
		game.SetLine(s.SpreadCurrent, s.TotalCurrent)
		game.Line.HomeMoneyline = s.HomeMoneyline
		game.Line.AwayMoneyline = s.AwayMoneyline
	}
	if s.Possession != "" || s.Down > 0 || s.Quarter != "" {
		game.Situation = &Situation{
			Possession:    s.Possession,
			YardLine:      s.YardLine,
			Down:          s.Down,
			Distance:      s.Distance,
			Quarter:       s.Quarter,
			TimeRemaining: s.TimeRemaining,
			IsRedzone:     s.IsRedzone,
		}
	}
	return game
}

// NormalizeStatus maps loose feed status strings onto the three game states.
func NormalizeStatus(raw string) GameStatus {
	switch GameStatus(raw) {
	case GameStatusScheduled, GameStatusInProgress, GameStatusFinal:
		return GameStatus(raw)
	}
	switch raw {
	case "completed", "post", "STATUS_FINAL":
		return GameStatusFinal
	case "in", "in_play", "halftime", "STATUS_IN_PROGRESS", "STATUS_HALFTIME":
		return GameStatusInProgress
	default:
		return GameStatusScheduled
	}
}
