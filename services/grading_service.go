package services

import (
	"context"

	"megapicks-go/config"
	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
)

// gradingConcurrency bounds the per-submission grading fan-out.
const gradingConcurrency = 8

// GradingService grades week submissions against final games and keeps the
// season standings current. Grading fans out per submission, never per game:
// each submission document has exactly one writer per pass, so concurrent
// grading cannot produce a last-writer-wins race on the shared totals.
type GradingService struct {
	gameRepo       *database.MongoGameRepository
	submissionRepo *database.MongoSubmissionRepository
	standings      *StandingsService
	rules          config.HouseRules
	logger         *logging.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(
	gameRepo *database.MongoGameRepository,
	submissionRepo *database.MongoSubmissionRepository,
	standings *StandingsService,
	rules config.HouseRules,
) *GradingService {
	return &GradingService{
		gameRepo:       gameRepo,
		submissionRepo: submissionRepo,
		standings:      standings,
		rules:          rules,
		logger:         logging.WithPrefix("GradingService"),
	}
}

// HandleGameFinal is the trigger the feed poller fires when a game reaches
// its final score. It regrades the whole week rather than patching the one
// game, which keeps grading idempotent.
func (s *GradingService) HandleGameFinal(ctx context.Context, game *models.Game) error {
	s.logger.Infof("Game final: %s (%d-%d), regrading season %d week %d",
		game.Description(), game.AwayScore, game.HomeScore, game.Season, game.Week)
	return s.ProcessWeek(ctx, game.Season, game.Week)
}

// ProcessWeek regrades every submission for the week from the current final
// scores, then recomputes the season standings. Safe to call any number of
// times; every output is derived fresh.
func (s *GradingService) ProcessWeek(ctx context.Context, season, week int) error {
	games, err := s.gameRepo.FindByWeek(ctx, season, week)
	if err != nil {
		return err
	}
	gamesByID := make(map[string]*models.Game, len(games))
	for _, game := range games {
		gamesByID[game.ID] = game
	}

	submissions, err := s.submissionRepo.FindAllByWeek(ctx, season, week)
	if err != nil {
		return err
	}
	if len(submissions) == 0 {
		return nil
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(gradingConcurrency)
	for _, submission := range submissions {
		submission := submission
		p.Go(func(ctx context.Context) error {
			return s.gradeSubmission(ctx, submission, gamesByID)
		})
	}
	if err := p.Wait(); err != nil {
		return errors.Wrapf(err, "grading season %d week %d", season, week)
	}

	if _, err := s.standings.Recompute(ctx, season); err != nil {
		return errors.Wrapf(err, "recomputing standings for season %d", season)
	}

	s.logger.Infof("Graded %d submissions for season %d week %d", len(submissions), season, week)
	return nil
}

// gradeSubmission grades one contestant's picks and parlay in place and
// persists the results. A malformed pick is logged and left ungraded so it
// contributes no points; one bad pick never blocks the rest of the week.
func (s *GradingService) gradeSubmission(ctx context.Context, submission *models.WeekSubmission, gamesByID map[string]*models.Game) error {
	for i := range submission.Picks {
		pick := &submission.Picks[i]
		game, ok := gamesByID[pick.GameID]
		if !ok {
			s.logger.Errorf("Pick by %s references missing game %s, excluding from grading",
				submission.ContestantID, pick.GameID)
			continue
		}
		graded, err := GradeATSPick(pick, game, s.rules.Points)
		if err != nil {
			s.logger.Errorf("Excluding malformed pick by %s on game %s: %v",
				submission.ContestantID, pick.GameID, err)
			continue
		}
		pick.Result = graded.Result
		pick.PointsEarned = graded.Points
	}

	gradedParlay, err := GradeParlay(&submission.Parlay, gamesByID, s.rules.Parlay)
	if err != nil {
		s.logger.Errorf("Excluding malformed parlay by %s: %v", submission.ContestantID, err)
	} else {
		submission.Parlay.Status = gradedParlay.Status
		submission.Parlay.EffectiveLegs = gradedParlay.EffectiveLegs
		submission.Parlay.PointsEarned = gradedParlay.Points
		for i := range submission.Parlay.Legs {
			submission.Parlay.Legs[i].Outcome = gradedParlay.LegOutcomes[i]
		}
	}

	submission.RecalculateTotals()
	return s.submissionRepo.UpdateGrading(ctx, submission)
}
