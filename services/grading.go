package services

import (
	"megapicks-go/config"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
)

// Pure grading functions. Everything here is a function of the pick, the
// final game, and the house rules: no repository access, no clock, no
// mutation of inputs. Callers persist the outputs.

// GradedPick is the outcome of grading one ATS pick
type GradedPick struct {
	Result models.PickResult
	Points float64
}

// GradedParlay is the outcome of grading a whole parlay. LegOutcomes is
// positionally parallel with the parlay's legs.
type GradedParlay struct {
	Status        models.ParlayStatus
	LegOutcomes   []models.LegOutcome
	EffectiveLegs int
	Points        float64
}

// GradeATSPick grades a pick against the spread frozen at submission time.
// A non-final game yields a pending result, never an error; grading is
// idempotent and safe to call until the game finalizes. A final game whose
// pick references neither team is a data-integrity error.
func GradeATSPick(pick *models.Pick, game *models.Game, points config.PointValues) (GradedPick, error) {
	if !game.IsFinal() {
		return GradedPick{Result: models.PickResultPending}, nil
	}
	if !game.HasTeam(pick.Team) {
		return GradedPick{}, errors.Newf("pick team %q is not in game %s (%s)", pick.Team, game.ID, game.Description())
	}

	// Home-relative arithmetic: the spread is stored as the home line
	// (negative = home favored), so adding it to the raw margin yields
	// the spread-adjusted home margin. A fractional spread makes an
	// exact zero structurally impossible; no special-casing needed.
	adjustedHomeMargin := float64(game.HomeMargin()) + pick.SpreadAtPick

	var result models.PickResult
	switch {
	case adjustedHomeMargin == 0:
		result = models.PickResultPush
	case (pick.Team == game.Home) == (adjustedHomeMargin > 0):
		result = models.PickResultWin
	default:
		result = models.PickResultLoss
	}

	return GradedPick{Result: result, Points: pointsFor(result, points)}, nil
}

func pointsFor(result models.PickResult, points config.PointValues) float64 {
	switch result {
	case models.PickResultWin:
		return points.Win
	case models.PickResultPush:
		return points.Push
	case models.PickResultLoss:
		return points.Loss
	}
	return 0
}

// GradeLeg grades one parlay leg as a moneyline: the team with the strictly
// higher final score wins; a tied final is a push.
func GradeLeg(leg *models.ParlayLeg, game *models.Game) (models.LegOutcome, error) {
	if !game.IsFinal() {
		return models.LegOutcomePending, nil
	}
	if !game.HasTeam(leg.Team) {
		return models.LegOutcomePending, errors.Newf("leg team %q is not in game %s (%s)", leg.Team, game.ID, game.Description())
	}

	winner := game.Winner()
	switch {
	case winner == "":
		return models.LegOutcomePush, nil
	case winner == leg.Team:
		return models.LegOutcomeWin, nil
	default:
		return models.LegOutcomeLoss, nil
	}
}

// GradeParlay grades the whole parlay once every referenced game is final;
// until then it reports a pending status. All-or-nothing: one losing leg
// busts the parlay regardless of the rest. Push legs are removed when the
// rules say so, and a parlay whose effective leg count falls below the
// house minimum becomes a no-contest instead of a hit or bust. With push
// reduction disabled a pushed leg busts the parlay.
func GradeParlay(parlay *models.Parlay, gamesByID map[string]*models.Game, rules config.ParlayRules) (GradedParlay, error) {
	graded := GradedParlay{
		Status:      models.ParlayStatusPending,
		LegOutcomes: make([]models.LegOutcome, len(parlay.Legs)),
	}

	for i := range parlay.Legs {
		leg := &parlay.Legs[i]
		game, ok := gamesByID[leg.GameID]
		if !ok || !game.IsFinal() {
			for j := range graded.LegOutcomes {
				graded.LegOutcomes[j] = models.LegOutcomePending
			}
			return graded, nil
		}
		outcome, err := GradeLeg(leg, game)
		if err != nil {
			return GradedParlay{}, err
		}
		graded.LegOutcomes[i] = outcome
	}

	wins, pushes := 0, 0
	for _, outcome := range graded.LegOutcomes {
		switch outcome {
		case models.LegOutcomeLoss:
			graded.Status = models.ParlayStatusBusted
			graded.EffectiveLegs = len(parlay.Legs) - pushesIn(graded.LegOutcomes)
			return graded, nil
		case models.LegOutcomePush:
			pushes++
		case models.LegOutcomeWin:
			wins++
		}
	}

	if pushes > 0 && !rules.PushReducesLegs {
		graded.Status = models.ParlayStatusBusted
		graded.EffectiveLegs = len(parlay.Legs)
		return graded, nil
	}

	graded.EffectiveLegs = len(parlay.Legs) - pushes
	if graded.EffectiveLegs < rules.MinLegs {
		graded.Status = models.ParlayStatusNoContest
		return graded, nil
	}

	graded.Status = models.ParlayStatusHit
	graded.Points = rules.ParlayPayout(graded.EffectiveLegs)
	return graded, nil
}

func pushesIn(outcomes []models.LegOutcome) int {
	pushes := 0
	for _, outcome := range outcomes {
		if outcome == models.LegOutcomePush {
			pushes++
		}
	}
	return pushes
}
