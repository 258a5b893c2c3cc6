package services

import (
	"math"
	"time"

	"megapicks-go/config"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
)

// PickChoice is one requested ATS pick before validation
type PickChoice struct {
	GameID string `json:"game_id" validate:"required"`
	Team   string `json:"team" validate:"required"`
}

// LegChoice is one requested parlay leg before validation
type LegChoice struct {
	GameID string `json:"game_id" validate:"required"`
	Team   string `json:"team" validate:"required"`
}

// ValidatedSubmission carries the accepted picks with their lines frozen.
// Validation is the only place current lines are captured into picks.
type ValidatedSubmission struct {
	Picks       []models.Pick
	Parlay      models.Parlay
	Late        bool
	MinutesLate int
}

// ValidationService enforces the submission-window and completeness rules.
// It is a pure decision function over its inputs: no clock reads, no
// repository access, no penalty arithmetic. Lateness is reported to the
// caller; the penalty policy belongs to the submission service.
type ValidationService struct {
	rules config.HouseRules
}

// NewValidationService creates a new validation service
func NewValidationService(rules config.HouseRules) *ValidationService {
	return &ValidationService{rules: rules}
}

// ValidateSubmission checks a contestant's picks and parlay legs against the
// week's games and the lock deadline. On success the returned submission
// holds spread_at_pick and ml_at_pick frozen from the live lines in games.
func (s *ValidationService) ValidateSubmission(picks []PickChoice, legs []LegChoice, games []*models.Game, now, lockTime time.Time) (*ValidatedSubmission, error) {
	gamesByID := make(map[string]*models.Game, len(games))
	for _, game := range games {
		gamesByID[game.ID] = game
	}

	validated := &ValidatedSubmission{}

	if now.After(lockTime) {
		if !s.rules.LatePenalty.AllowLate {
			return nil, errors.Wrapf(ErrSubmissionLocked, "lock was %s", lockTime.Format(time.RFC3339))
		}
		validated.Late = true
		validated.MinutesLate = int(math.Ceil(now.Sub(lockTime).Minutes()))
	}

	// Every game in the week requires exactly one ATS pick
	if len(picks) != len(games) {
		return nil, errors.Wrapf(ErrIncompletePicks, "got %d picks for %d games", len(picks), len(games))
	}
	picked := make(map[string]bool, len(picks))
	for _, choice := range picks {
		game, ok := gamesByID[choice.GameID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownGame, "pick references game %s", choice.GameID)
		}
		if picked[choice.GameID] {
			return nil, errors.Wrapf(ErrIncompletePicks, "game %s picked more than once", choice.GameID)
		}
		picked[choice.GameID] = true
		if !game.HasTeam(choice.Team) {
			return nil, errors.Wrapf(ErrUnknownGame, "team %q is not in game %s", choice.Team, choice.GameID)
		}
		spread, err := frozenSpread(game)
		if err != nil {
			return nil, err
		}
		validated.Picks = append(validated.Picks, models.Pick{
			GameID:       choice.GameID,
			Team:         choice.Team,
			SpreadAtPick: spread,
			Result:       models.PickResultPending,
		})
	}

	if len(legs) < s.rules.Parlay.MinLegs {
		return nil, errors.Wrapf(ErrInsufficientParlayLegs, "got %d legs, need %d", len(legs), s.rules.Parlay.MinLegs)
	}
	legGames := make(map[string]bool, len(legs))
	for _, choice := range legs {
		game, ok := gamesByID[choice.GameID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownGame, "parlay leg references game %s", choice.GameID)
		}
		if legGames[choice.GameID] {
			return nil, errors.Wrapf(ErrDuplicateGameInParlay, "game %s appears twice", choice.GameID)
		}
		legGames[choice.GameID] = true
		if !game.HasTeam(choice.Team) {
			return nil, errors.Wrapf(ErrUnknownGame, "team %q is not in game %s", choice.Team, choice.GameID)
		}
		validated.Parlay.Legs = append(validated.Parlay.Legs, models.ParlayLeg{
			GameID:          choice.GameID,
			Team:            choice.Team,
			MoneylineAtPick: game.MoneylineFor(choice.Team),
			Outcome:         models.LegOutcomePending,
		})
	}
	validated.Parlay.Status = models.ParlayStatusPending

	return validated, nil
}

// frozenSpread captures the spread to grade against. A missing or
// non-numeric line fails the submission instead of defaulting to zero.
func frozenSpread(game *models.Game) (float64, error) {
	if !game.HasLine() {
		return 0, errors.Wrapf(ErrInconsistentLineData, "game %s has no line", game.ID)
	}
	spread := game.Line.Spread
	if math.IsNaN(spread) || math.IsInf(spread, 0) {
		return 0, errors.Wrapf(ErrInconsistentLineData, "game %s has spread %v", game.ID, spread)
	}
	return spread, nil
}
