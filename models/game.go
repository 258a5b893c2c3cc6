package models

import (
	"fmt"
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
)

// Line represents the betting line on a game. Spread is home-team-relative
// (negative = home favored). Moneylines are optional; the feed does not
// always carry them.
type Line struct {
	Spread        float64 `json:"spread" bson:"spread"`
	Total         float64 `json:"total" bson:"total"`
	HomeMoneyline float64 `json:"home_ml,omitempty" bson:"home_ml,omitempty"`
	AwayMoneyline float64 `json:"away_ml,omitempty" bson:"away_ml,omitempty"`
}

// Situation holds live in-game context from the feed. The grading engine
// never reads these fields; they exist for the read-side API.
type Situation struct {
	Possession    string `json:"possession,omitempty" bson:"possession,omitempty"`
	YardLine      int    `json:"yard_line,omitempty" bson:"yard_line,omitempty"`
	Down          int    `json:"down,omitempty" bson:"down,omitempty"`
	Distance      int    `json:"distance,omitempty" bson:"distance,omitempty"`
	Quarter       string `json:"quarter,omitempty" bson:"quarter,omitempty"`
	TimeRemaining string `json:"time_remaining,omitempty" bson:"time_remaining,omitempty"`
	IsRedzone     bool   `json:"is_redzone,omitempty" bson:"is_redzone,omitempty"`
}

// Game represents one contest game. The Line field is the live line owned by
// the feed; picks are graded against the spread frozen at submission time,
// never against this value.
type Game struct {
	ID          string     `json:"id" bson:"id"`
	Season      int        `json:"season" bson:"season"`
	Week        int        `json:"week" bson:"week"`
	Home        string     `json:"home_team" bson:"home_team"`
	Away        string     `json:"away_team" bson:"away_team"`
	KickoffTime time.Time  `json:"kickoff_time" bson:"kickoff_time"`
	Status      GameStatus `json:"status" bson:"status"`
	HomeScore   int        `json:"home_score" bson:"home_score"`
	AwayScore   int        `json:"away_score" bson:"away_score"`
	Line        *Line      `json:"line,omitempty" bson:"line,omitempty"`
	Situation   *Situation `json:"situation,omitempty" bson:"situation,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsFinal returns true if the game is finished
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// IsInProgress returns true if the game is currently being played
func (g *Game) IsInProgress() bool {
	return g.Status == GameStatusInProgress
}

// Winner returns the winning team abbreviation, or empty string on a tie or
// an unfinished game.
func (g *Game) Winner() string {
	if !g.IsFinal() {
		return ""
	}
	if g.HomeScore > g.AwayScore {
		return g.Home
	} else if g.AwayScore > g.HomeScore {
		return g.Away
	}
	return ""
}

// HomeMargin returns home score minus away score
func (g *Game) HomeMargin() int {
	return g.HomeScore - g.AwayScore
}

// HasLine returns true if a betting line is available
func (g *Game) HasLine() bool {
	return g.Line != nil
}

// HasTeam returns true if abbr is one of the two teams in this game
func (g *Game) HasTeam(abbr string) bool {
	return abbr == g.Home || abbr == g.Away
}

// MoneylineFor returns the frozen-at-feed moneyline for the given team, or 0
// when the feed did not carry one.
func (g *Game) MoneylineFor(abbr string) float64 {
	if !g.HasLine() {
		return 0
	}
	switch abbr {
	case g.Home:
		return g.Line.HomeMoneyline
	case g.Away:
		return g.Line.AwayMoneyline
	}
	return 0
}

// roundToHalf rounds a float to the nearest 0.5 increment
func roundToHalf(val float64) float64 {
	if val < 0 {
		return -roundToHalf(-val)
	}
	return float64(int(val*2+0.5)) / 2
}

// SetLine sets the betting line with half-point sanitization
func (g *Game) SetLine(spread, total float64) {
	g.Line = &Line{
		Spread: roundToHalf(spread),
		Total:  roundToHalf(total),
	}
}

// FormatSpread returns the home spread formatted for display ("KC -2.5")
func (g *Game) FormatSpread() string {
	if !g.HasLine() {
		return ""
	}
	switch {
	case g.Line.Spread < 0:
		return fmt.Sprintf("%s %.1f", g.Home, g.Line.Spread)
	case g.Line.Spread > 0:
		return fmt.Sprintf("%s -%.1f", g.Away, g.Line.Spread)
	default:
		return "PK"
	}
}

// Description returns the "AWAY @ HOME" label for logs and responses
func (g *Game) Description() string {
	return g.Away + " @ " + g.Home
}
