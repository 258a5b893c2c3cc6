package services

import (
	"testing"
	"time"

	"megapicks-go/config"
	"megapicks-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekGames(kickoff time.Time) []*models.Game {
	g1 := &models.Game{ID: "g1", Home: "KC", Away: "DEN", KickoffTime: kickoff, Status: models.GameStatusScheduled}
	g1.SetLine(-2.5, 47.5)
	g1.Line.HomeMoneyline = -140
	g1.Line.AwayMoneyline = 120
	g2 := &models.Game{ID: "g2", Home: "PHI", Away: "DAL", KickoffTime: kickoff, Status: models.GameStatusScheduled}
	g2.SetLine(-3.0, 44.0)
	g3 := &models.Game{ID: "g3", Home: "BUF", Away: "MIA", KickoffTime: kickoff, Status: models.GameStatusScheduled}
	g3.SetLine(1.5, 51.0)
	return []*models.Game{g1, g2, g3}
}

func fullPicks() []PickChoice {
	return []PickChoice{
		{GameID: "g1", Team: "KC"},
		{GameID: "g2", Team: "DAL"},
		{GameID: "g3", Team: "BUF"},
	}
}

func fullLegs() []LegChoice {
	return []LegChoice{
		{GameID: "g1", Team: "KC"},
		{GameID: "g2", Team: "PHI"},
		{GameID: "g3", Team: "BUF"},
	}
}

func TestValidateSubmissionFreezesLines(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	svc := NewValidationService(config.DefaultHouseRules())

	validated, err := svc.ValidateSubmission(fullPicks(), fullLegs(), games, time.Now(), lock)
	require.NoError(t, err)

	require.Len(t, validated.Picks, 3)
	assert.Equal(t, -2.5, validated.Picks[0].SpreadAtPick)
	assert.Equal(t, -3.0, validated.Picks[1].SpreadAtPick)
	assert.Equal(t, 1.5, validated.Picks[2].SpreadAtPick)
	for _, pick := range validated.Picks {
		assert.Equal(t, models.PickResultPending, pick.Result)
	}

	require.Len(t, validated.Parlay.Legs, 3)
	assert.Equal(t, -140.0, validated.Parlay.Legs[0].MoneylineAtPick)
	assert.Equal(t, models.ParlayStatusPending, validated.Parlay.Status)
	assert.False(t, validated.Late)
}

func TestValidateSubmissionIncompletePicks(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	svc := NewValidationService(config.DefaultHouseRules())

	_, err := svc.ValidateSubmission(fullPicks()[:2], fullLegs(), games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrIncompletePicks)
}

func TestValidateSubmissionDuplicatePick(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	svc := NewValidationService(config.DefaultHouseRules())

	picks := []PickChoice{
		{GameID: "g1", Team: "KC"},
		{GameID: "g1", Team: "DEN"},
		{GameID: "g3", Team: "BUF"},
	}
	_, err := svc.ValidateSubmission(picks, fullLegs(), games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrIncompletePicks)
}

func TestValidateSubmissionUnknownGameAndTeam(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	svc := NewValidationService(config.DefaultHouseRules())

	picks := fullPicks()
	picks[0].GameID = "nope"
	_, err := svc.ValidateSubmission(picks, fullLegs(), games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrUnknownGame)

	picks = fullPicks()
	picks[0].Team = "NYJ"
	_, err = svc.ValidateSubmission(picks, fullLegs(), games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestValidateSubmissionMissingLine(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	games[1].Line = nil
	svc := NewValidationService(config.DefaultHouseRules())

	_, err := svc.ValidateSubmission(fullPicks(), fullLegs(), games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrInconsistentLineData)
}

func TestValidateSubmissionParlayRules(t *testing.T) {
	lock := time.Now().Add(time.Hour)
	games := weekGames(lock)
	svc := NewValidationService(config.DefaultHouseRules())

	_, err := svc.ValidateSubmission(fullPicks(), fullLegs()[:2], games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrInsufficientParlayLegs)

	legs := []LegChoice{
		{GameID: "g1", Team: "KC"},
		{GameID: "g1", Team: "DEN"},
		{GameID: "g3", Team: "BUF"},
	}
	_, err = svc.ValidateSubmission(fullPicks(), legs, games, time.Now(), lock)
	assert.ErrorIs(t, err, ErrDuplicateGameInParlay)
}

func TestValidateSubmissionLateness(t *testing.T) {
	lock := time.Now().Add(-30 * time.Minute)
	games := weekGames(lock)

	t.Run("late allowed reports minutes", func(t *testing.T) {
		svc := NewValidationService(config.DefaultHouseRules())
		validated, err := svc.ValidateSubmission(fullPicks(), fullLegs(), games, time.Now(), lock)
		require.NoError(t, err)
		assert.True(t, validated.Late)
		assert.GreaterOrEqual(t, validated.MinutesLate, 30)
	})

	t.Run("late disallowed locks out", func(t *testing.T) {
		rules := config.DefaultHouseRules()
		rules.LatePenalty.AllowLate = false
		svc := NewValidationService(rules)
		_, err := svc.ValidateSubmission(fullPicks(), fullLegs(), games, time.Now(), lock)
		assert.ErrorIs(t, err, ErrSubmissionLocked)
	})
}
