package services

import (
	"testing"

	"megapicks-go/models"

	"github.com/stretchr/testify/assert"
)

func TestParseSpreadDetails(t *testing.T) {
	favorite, line, ok := parseSpreadDetails("KC -3.5")
	assert.True(t, ok)
	assert.Equal(t, "KC", favorite)
	assert.Equal(t, -3.5, line)

	_, _, ok = parseSpreadDetails("EVEN")
	assert.False(t, ok)

	_, _, ok = parseSpreadDetails("")
	assert.False(t, ok)

	_, _, ok = parseSpreadDetails("KC minus three")
	assert.False(t, ok)
}

func TestHomeRelativeSpread(t *testing.T) {
	t.Run("numeric field already home relative", func(t *testing.T) {
		odds := espnOdds{Spread: -2.5, Details: "KC -2.5"}
		assert.Equal(t, -2.5, homeRelativeSpread(odds, "KC"))
	})

	t.Run("details fallback home favorite", func(t *testing.T) {
		odds := espnOdds{Details: "KC -3.5"}
		assert.Equal(t, -3.5, homeRelativeSpread(odds, "KC"))
	})

	t.Run("details fallback away favorite flips sign", func(t *testing.T) {
		odds := espnOdds{Details: "KC -3.5"}
		assert.Equal(t, 3.5, homeRelativeSpread(odds, "DEN"))
	})

	t.Run("no usable line", func(t *testing.T) {
		odds := espnOdds{Details: "EVEN"}
		assert.Equal(t, 0.0, homeRelativeSpread(odds, "KC"))
	})
}

func TestConvertEvent(t *testing.T) {
	svc := NewESPNService()

	event := espnEvent{
		ID:     "401547401",
		Date:   "2025-09-07T17:00Z",
		Week:   espnWeek{Number: 1},
		Season: espnSeason{Year: 2025, Type: 2},
		Status: espnStatus{Type: espnStatusType{State: "post", Completed: true}, Period: 4},
		Competitions: []espnCompetition{{
			Competitors: []espnCompetitor{
				{HomeAway: "home", Score: "24", Team: espnTeam{Abbreviation: "KC"}},
				{HomeAway: "away", Score: "21", Team: espnTeam{Abbreviation: "DEN"}},
			},
			Odds: []espnOdds{{
				Details:      "KC -2.5",
				Spread:       -2.5,
				OverUnder:    47.5,
				HomeTeamOdds: espnTeamOdds{MoneyLine: -140},
				AwayTeamOdds: espnTeamOdds{MoneyLine: 120},
			}},
		}},
	}

	snapshot := svc.convertEvent(event)
	assert.Equal(t, "401547401", snapshot.ID)
	assert.Equal(t, 2025, snapshot.Season)
	assert.Equal(t, 1, snapshot.Week)
	assert.Equal(t, "KC", snapshot.HomeTeam)
	assert.Equal(t, "DEN", snapshot.AwayTeam)
	assert.Equal(t, 24, snapshot.HomeScore)
	assert.Equal(t, 21, snapshot.AwayScore)
	assert.Equal(t, -2.5, snapshot.SpreadCurrent)
	assert.Equal(t, 47.5, snapshot.TotalCurrent)
	assert.Equal(t, -140.0, snapshot.HomeMoneyline)
	assert.Equal(t, string(models.GameStatusFinal), snapshot.Status)
	assert.Equal(t, "Q4", snapshot.Quarter)
}

func TestConvertEventsSkipsNonRegularSeason(t *testing.T) {
	svc := NewESPNService()

	events := []espnEvent{
		{Season: espnSeason{Type: 1}}, // preseason
		{Season: espnSeason{Type: 3}}, // postseason
	}
	assert.Empty(t, svc.convertEvents(events))
}

func TestConvertGameStatus(t *testing.T) {
	assert.Equal(t, models.GameStatusScheduled, convertGameStatus(espnStatus{Type: espnStatusType{State: "pre"}}))
	assert.Equal(t, models.GameStatusInProgress, convertGameStatus(espnStatus{Type: espnStatusType{State: "in"}}))
	assert.Equal(t, models.GameStatusFinal, convertGameStatus(espnStatus{Type: espnStatusType{State: "post"}}))
	assert.Equal(t, models.GameStatusScheduled, convertGameStatus(espnStatus{Type: espnStatusType{State: "weird"}}))
}
