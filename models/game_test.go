package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLineRoundsToHalf(t *testing.T) {
	game := &Game{Home: "KC", Away: "DEN"}

	game.SetLine(-2.7, 47.3)
	assert.Equal(t, -2.5, game.Line.Spread)
	assert.Equal(t, 47.5, game.Line.Total)

	game.SetLine(3.24, 44.0)
	assert.Equal(t, 3.0, game.Line.Spread)
	assert.Equal(t, 44.0, game.Line.Total)
}

func TestWinner(t *testing.T) {
	game := &Game{Home: "KC", Away: "DEN", HomeScore: 24, AwayScore: 21, Status: GameStatusFinal}
	assert.Equal(t, "KC", game.Winner())

	game.HomeScore, game.AwayScore = 17, 20
	assert.Equal(t, "DEN", game.Winner())

	game.HomeScore, game.AwayScore = 20, 20
	assert.Equal(t, "", game.Winner())

	game.Status = GameStatusInProgress
	game.HomeScore, game.AwayScore = 24, 0
	assert.Equal(t, "", game.Winner())
}

func TestFormatSpread(t *testing.T) {
	game := &Game{Home: "KC", Away: "DEN"}

	game.SetLine(-2.5, 47.5)
	assert.Equal(t, "KC -2.5", game.FormatSpread())

	game.SetLine(3.5, 47.5)
	assert.Equal(t, "DEN -3.5", game.FormatSpread())

	game.SetLine(0, 47.5)
	assert.Equal(t, "PK", game.FormatSpread())
}

func TestMoneylineFor(t *testing.T) {
	game := &Game{Home: "KC", Away: "DEN"}
	assert.Equal(t, 0.0, game.MoneylineFor("KC"))

	game.SetLine(-2.5, 47.5)
	game.Line.HomeMoneyline = -140
	game.Line.AwayMoneyline = 120
	assert.Equal(t, -140.0, game.MoneylineFor("KC"))
	assert.Equal(t, 120.0, game.MoneylineFor("DEN"))
	assert.Equal(t, 0.0, game.MoneylineFor("NYJ"))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, GameStatusFinal, NormalizeStatus("final"))
	assert.Equal(t, GameStatusFinal, NormalizeStatus("completed"))
	assert.Equal(t, GameStatusFinal, NormalizeStatus("post"))
	assert.Equal(t, GameStatusInProgress, NormalizeStatus("in_progress"))
	assert.Equal(t, GameStatusInProgress, NormalizeStatus("halftime"))
	assert.Equal(t, GameStatusScheduled, NormalizeStatus("scheduled"))
	assert.Equal(t, GameStatusScheduled, NormalizeStatus("anything else"))
}
