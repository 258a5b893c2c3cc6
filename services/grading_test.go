package services

import (
	"testing"

	"megapicks-go/config"
	"megapicks-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalGame(id, home, away string, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:        id,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Status:    models.GameStatusFinal,
	}
}

func TestGradeATSPick(t *testing.T) {
	points := config.DefaultHouseRules().Points

	tests := []struct {
		name         string
		game         *models.Game
		team         string
		spreadAtPick float64
		want         models.PickResult
		wantPoints   float64
	}{
		{
			// KC favored by 2.5 at home, wins 24-21: covers
			name:         "home favorite covers",
			game:         finalGame("g1", "KC", "DEN", 24, 21),
			team:         "KC",
			spreadAtPick: -2.5,
			want:         models.PickResultWin,
			wantPoints:   1.0,
		},
		{
			name:         "away side loses when favorite covers",
			game:         finalGame("g1", "KC", "DEN", 24, 21),
			team:         "DEN",
			spreadAtPick: -2.5,
			want:         models.PickResultLoss,
			wantPoints:   0.0,
		},
		{
			// Favorite wins the game but not by enough
			name:         "home favorite wins but fails to cover",
			game:         finalGame("g2", "KC", "DEN", 23, 21),
			team:         "KC",
			spreadAtPick: -2.5,
			want:         models.PickResultLoss,
			wantPoints:   0.0,
		},
		{
			name:         "underdog covers by losing small",
			game:         finalGame("g2", "KC", "DEN", 23, 21),
			team:         "DEN",
			spreadAtPick: -2.5,
			want:         models.PickResultWin,
			wantPoints:   1.0,
		},
		{
			// Integer spread, margin lands exactly on it
			name:         "push on integer spread",
			game:         finalGame("g3", "PHI", "DAL", 27, 24),
			team:         "PHI",
			spreadAtPick: -3.0,
			want:         models.PickResultPush,
			wantPoints:   0.5,
		},
		{
			name:         "push for the other side too",
			game:         finalGame("g3", "PHI", "DAL", 27, 24),
			team:         "DAL",
			spreadAtPick: -3.0,
			want:         models.PickResultPush,
			wantPoints:   0.5,
		},
		{
			// Home is the underdog (positive spread) and loses within it
			name:         "home underdog covers",
			game:         finalGame("g4", "CAR", "SF", 20, 23),
			team:         "CAR",
			spreadAtPick: 6.5,
			want:         models.PickResultWin,
			wantPoints:   1.0,
		},
		{
			name:         "away favorite covers big win",
			game:         finalGame("g5", "CAR", "SF", 10, 31),
			team:         "SF",
			spreadAtPick: 6.5,
			want:         models.PickResultWin,
			wantPoints:   1.0,
		},
		{
			// Pick'em game decided by any margin
			name:         "pick em home win",
			game:         finalGame("g6", "BUF", "MIA", 17, 14),
			team:         "BUF",
			spreadAtPick: 0,
			want:         models.PickResultWin,
			wantPoints:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := &models.Pick{GameID: tt.game.ID, Team: tt.team, SpreadAtPick: tt.spreadAtPick}
			graded, err := GradeATSPick(pick, tt.game, points)
			require.NoError(t, err)
			assert.Equal(t, tt.want, graded.Result)
			assert.Equal(t, tt.wantPoints, graded.Points)
		})
	}
}

func TestGradeATSPickNotFinal(t *testing.T) {
	game := &models.Game{ID: "g1", Home: "KC", Away: "DEN", Status: models.GameStatusInProgress, HomeScore: 21, AwayScore: 7}
	pick := &models.Pick{GameID: "g1", Team: "KC", SpreadAtPick: -2.5}

	graded, err := GradeATSPick(pick, game, config.DefaultHouseRules().Points)
	require.NoError(t, err)
	assert.Equal(t, models.PickResultPending, graded.Result)
	assert.Zero(t, graded.Points)
}

func TestGradeATSPickUsesFrozenSpreadNotLiveLine(t *testing.T) {
	// The game's live line moved to -6.5 after the pick froze -2.5
	game := finalGame("g1", "KC", "DEN", 24, 21)
	game.SetLine(-6.5, 47.5)
	pick := &models.Pick{GameID: "g1", Team: "KC", SpreadAtPick: -2.5}

	graded, err := GradeATSPick(pick, game, config.DefaultHouseRules().Points)
	require.NoError(t, err)
	assert.Equal(t, models.PickResultWin, graded.Result)
}

func TestGradeATSPickUnknownTeam(t *testing.T) {
	game := finalGame("g1", "KC", "DEN", 24, 21)
	pick := &models.Pick{GameID: "g1", Team: "NYJ", SpreadAtPick: -2.5}

	_, err := GradeATSPick(pick, game, config.DefaultHouseRules().Points)
	assert.Error(t, err)
}

func TestGradeLeg(t *testing.T) {
	game := finalGame("g1", "KC", "DEN", 24, 21)

	outcome, err := GradeLeg(&models.ParlayLeg{GameID: "g1", Team: "KC"}, game)
	require.NoError(t, err)
	assert.Equal(t, models.LegOutcomeWin, outcome)

	outcome, err = GradeLeg(&models.ParlayLeg{GameID: "g1", Team: "DEN"}, game)
	require.NoError(t, err)
	assert.Equal(t, models.LegOutcomeLoss, outcome)

	tie := finalGame("g2", "NYG", "WSH", 20, 20)
	outcome, err = GradeLeg(&models.ParlayLeg{GameID: "g2", Team: "NYG"}, tie)
	require.NoError(t, err)
	assert.Equal(t, models.LegOutcomePush, outcome)
}

func parlayOf(legs ...models.ParlayLeg) *models.Parlay {
	return &models.Parlay{Legs: legs, Status: models.ParlayStatusPending}
}

func TestGradeParlay(t *testing.T) {
	rules := config.DefaultHouseRules().Parlay

	games := map[string]*models.Game{
		"g1": finalGame("g1", "KC", "DEN", 24, 21),  // KC wins
		"g2": finalGame("g2", "PHI", "DAL", 30, 13), // PHI wins
		"g3": finalGame("g3", "BUF", "MIA", 28, 24), // BUF wins
		"g4": finalGame("g4", "NYG", "WSH", 20, 20), // tie
		"g5": finalGame("g5", "SEA", "LAR", 14, 27), // LAR wins
	}

	t.Run("three winners hit for 7", func(t *testing.T) {
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g3", Team: "BUF"},
		)
		graded, err := GradeParlay(parlay, games, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusHit, graded.Status)
		assert.Equal(t, 3, graded.EffectiveLegs)
		assert.Equal(t, 7.0, graded.Points)
	})

	t.Run("one loss busts everything", func(t *testing.T) {
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g5", Team: "SEA"},
		)
		graded, err := GradeParlay(parlay, games, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusBusted, graded.Status)
		assert.Zero(t, graded.Points)
	})

	t.Run("push shrinks three legs below minimum to no contest", func(t *testing.T) {
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g4", Team: "NYG"},
		)
		graded, err := GradeParlay(parlay, games, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusNoContest, graded.Status)
		assert.Equal(t, 2, graded.EffectiveLegs)
		assert.Zero(t, graded.Points)
	})

	t.Run("four legs with a push pay as three", func(t *testing.T) {
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g3", Team: "BUF"},
			models.ParlayLeg{GameID: "g4", Team: "NYG"},
		)
		graded, err := GradeParlay(parlay, games, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusHit, graded.Status)
		assert.Equal(t, 3, graded.EffectiveLegs)
		assert.Equal(t, 7.0, graded.Points)
	})

	t.Run("push busts when push reduction disabled", func(t *testing.T) {
		strict := rules
		strict.PushReducesLegs = false
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g3", Team: "BUF"},
			models.ParlayLeg{GameID: "g4", Team: "NYG"},
		)
		graded, err := GradeParlay(parlay, games, strict)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusBusted, graded.Status)
	})

	t.Run("pending until every game is final", func(t *testing.T) {
		inProgress := map[string]*models.Game{
			"g1": games["g1"],
			"g2": {ID: "g2", Home: "PHI", Away: "DAL", Status: models.GameStatusInProgress},
			"g3": games["g3"],
		}
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g3", Team: "BUF"},
		)
		graded, err := GradeParlay(parlay, inProgress, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusPending, graded.Status)
		for _, outcome := range graded.LegOutcomes {
			assert.Equal(t, models.LegOutcomePending, outcome)
		}
	})

	t.Run("five winners pay 31", func(t *testing.T) {
		wins := map[string]*models.Game{
			"g1": games["g1"], "g2": games["g2"], "g3": games["g3"], "g5": games["g5"],
			"g6": finalGame("g6", "DET", "CHI", 35, 10),
		}
		parlay := parlayOf(
			models.ParlayLeg{GameID: "g1", Team: "KC"},
			models.ParlayLeg{GameID: "g2", Team: "PHI"},
			models.ParlayLeg{GameID: "g3", Team: "BUF"},
			models.ParlayLeg{GameID: "g5", Team: "LAR"},
			models.ParlayLeg{GameID: "g6", Team: "DET"},
		)
		graded, err := GradeParlay(parlay, wins, rules)
		require.NoError(t, err)
		assert.Equal(t, models.ParlayStatusHit, graded.Status)
		assert.Equal(t, 31.0, graded.Points)
	})
}

func TestGradingIsIdempotent(t *testing.T) {
	points := config.DefaultHouseRules().Points
	game := finalGame("g1", "KC", "DEN", 24, 21)
	pick := &models.Pick{GameID: "g1", Team: "KC", SpreadAtPick: -2.5}

	first, err := GradeATSPick(pick, game, points)
	require.NoError(t, err)
	second, err := GradeATSPick(pick, game, points)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
