package services

import (
	"context"
	"time"

	"megapicks-go/config"
	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
)

// SubmissionRequest is a contestant's complete weekly entry: one ATS pick
// per game plus a parlay leg set.
type SubmissionRequest struct {
	ContestantID string
	Season       int
	Week         int
	Picks        []PickChoice
	ParlayLegs   []LegChoice
}

// SubmissionService accepts weekly entries. The lock check and the write
// happen against a single clock read, and the write is a compare-and-set on
// the (contestant, week) document so two racing submissions cannot both
// succeed with different picks.
type SubmissionService struct {
	validator      *ValidationService
	submissionRepo *database.MongoSubmissionRepository
	gameRepo       *database.MongoGameRepository
	contestantRepo *database.MongoContestantRepository
	snapshotRepo   *database.MongoLineSnapshotRepository
	rules          config.HouseRules
	logger         *logging.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	validator *ValidationService,
	submissionRepo *database.MongoSubmissionRepository,
	gameRepo *database.MongoGameRepository,
	contestantRepo *database.MongoContestantRepository,
	snapshotRepo *database.MongoLineSnapshotRepository,
	rules config.HouseRules,
) *SubmissionService {
	return &SubmissionService{
		validator:      validator,
		submissionRepo: submissionRepo,
		gameRepo:       gameRepo,
		contestantRepo: contestantRepo,
		snapshotRepo:   snapshotRepo,
		rules:          rules,
		logger:         logging.WithPrefix("SubmissionService"),
	}
}

// Submit validates and stores a contestant's entry for the week. Returns
// the stored submission, or a validation error the contestant can fix by
// resubmitting. A lost race against a concurrent submission surfaces
// ErrSubmissionConflict, which is retryable.
func (s *SubmissionService) Submit(ctx context.Context, req SubmissionRequest) (*models.WeekSubmission, error) {
	contestant, err := s.contestantRepo.FindByID(ctx, req.ContestantID)
	if err != nil {
		return nil, err
	}
	if contestant == nil {
		return nil, errors.Wrapf(ErrUnknownContestant, "contestant %s", req.ContestantID)
	}

	games, err := s.gameRepo.FindByWeek(ctx, req.Season, req.Week)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, errors.Newf("no games scheduled for season %d week %d", req.Season, req.Week)
	}

	// Single authoritative clock read for the whole lock decision
	now := time.Now()
	lockTime := LockTimeForWeek(games)

	validated, err := s.validator.ValidateSubmission(req.Picks, req.ParlayLegs, games, now, lockTime)
	if err != nil {
		return nil, err
	}

	submission := &models.WeekSubmission{
		ContestantID: req.ContestantID,
		Season:       req.Season,
		Week:         req.Week,
		Picks:        validated.Picks,
		Parlay:       validated.Parlay,
		SubmittedAt:  now,
		Late:         validated.Late,
		MinutesLate:  validated.MinutesLate,
		LatePenalty:  s.latePenalty(validated.MinutesLate),
	}
	submission.RecalculateTotals()

	existing, err := s.submissionRepo.FindByContestantWeek(ctx, req.ContestantID, req.Season, req.Week)
	if err != nil {
		return nil, err
	}
	var expectedRevision int64
	if existing != nil {
		expectedRevision = existing.Revision
		submission.CreatedAt = existing.CreatedAt
	}

	if err := s.submissionRepo.CompareAndSwap(ctx, submission, expectedRevision); err != nil {
		if errors.Is(err, database.ErrRevisionConflict) {
			return nil, errors.Mark(err, ErrSubmissionConflict)
		}
		return nil, err
	}

	s.capturePickSnapshots(ctx, games, validated.Picks)

	if submission.Late {
		s.logger.Warnf("Accepted late submission from %s for week %d: %d minutes late, penalty %.1f",
			req.ContestantID, req.Week, submission.MinutesLate, submission.LatePenalty)
	} else {
		s.logger.Infof("Accepted submission from %s for season %d week %d (%d picks, %d parlay legs)",
			req.ContestantID, req.Season, req.Week, len(submission.Picks), submission.Parlay.LegCount())
	}

	return submission, nil
}

// latePenalty applies the house late-penalty formula: a per-minute charge
// with a cap. Zero for on-time submissions.
func (s *SubmissionService) latePenalty(minutesLate int) float64 {
	if minutesLate <= 0 {
		return 0
	}
	penalty := s.rules.LatePenalty.PointsPerMinute * float64(minutesLate)
	if penalty > s.rules.LatePenalty.CapPoints {
		penalty = s.rules.LatePenalty.CapPoints
	}
	return penalty
}

// capturePickSnapshots appends pick-stage line snapshots for the games just
// picked. Snapshot failures never fail an accepted submission; the frozen
// values already live on the picks themselves.
func (s *SubmissionService) capturePickSnapshots(ctx context.Context, games []*models.Game, picks []models.Pick) {
	gamesByID := make(map[string]*models.Game, len(games))
	for _, game := range games {
		gamesByID[game.ID] = game
	}

	snapshots := make([]*models.LineSnapshot, 0, len(picks))
	for _, pick := range picks {
		if game, ok := gamesByID[pick.GameID]; ok && game.HasLine() {
			snapshots = append(snapshots, models.NewLineSnapshot(game, models.SnapshotStagePick))
		}
	}
	if err := s.snapshotRepo.AppendMany(ctx, snapshots); err != nil {
		s.logger.Warnf("Could not append pick-stage line snapshots: %v", err)
	}
}

// LockTimeForWeek returns the week's lock deadline: the earliest kickoff
// among the week's games. Picks for the whole slate lock together.
func LockTimeForWeek(games []*models.Game) time.Time {
	var lock time.Time
	for _, game := range games {
		if lock.IsZero() || game.KickoffTime.Before(lock) {
			lock = game.KickoffTime
		}
	}
	return lock
}
