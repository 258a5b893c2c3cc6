package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/models"
)

// StandingsService recomputes season standings from stored week submissions.
// Standings are always rebuilt from scratch so a regrade, a resubmission, or
// a repeated trigger can never double-count a week. A per-season mutex
// serializes recomputation; concurrent triggers for the same season queue up
// instead of interleaving bulk writes.
type StandingsService struct {
	submissionRepo *database.MongoSubmissionRepository
	contestantRepo *database.MongoContestantRepository
	standingRepo   *database.MongoStandingRepository
	logger         *logging.Logger

	mu          sync.Mutex
	seasonLocks map[int]*sync.Mutex
}

// NewStandingsService creates a new standings service
func NewStandingsService(
	submissionRepo *database.MongoSubmissionRepository,
	contestantRepo *database.MongoContestantRepository,
	standingRepo *database.MongoStandingRepository,
) *StandingsService {
	return &StandingsService{
		submissionRepo: submissionRepo,
		contestantRepo: contestantRepo,
		standingRepo:   standingRepo,
		logger:         logging.WithPrefix("StandingsService"),
		seasonLocks:    make(map[int]*sync.Mutex),
	}
}

// Recompute rebuilds the season standings from every stored submission,
// ranks them, and replaces the stored season. Returns the ranked standings.
func (s *StandingsService) Recompute(ctx context.Context, season int) ([]*models.Standing, error) {
	lock := s.seasonLock(season)
	lock.Lock()
	defer lock.Unlock()

	submissions, err := s.submissionRepo.FindAllBySeason(ctx, season)
	if err != nil {
		return nil, err
	}

	handles, err := s.contestantHandles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bySeason := make(map[string]*models.Standing)
	for _, submission := range submissions {
		standing, ok := bySeason[submission.ContestantID]
		if !ok {
			standing = &models.Standing{
				ContestantID: submission.ContestantID,
				Handle:       handles[submission.ContestantID],
				Season:       season,
				UpdatedAt:    now,
			}
			bySeason[submission.ContestantID] = standing
		}
		standing.AddWeek(submission)
	}

	standings := make([]*models.Standing, 0, len(bySeason))
	for _, standing := range bySeason {
		standings = append(standings, standing)
	}

	// Descending by points; handle as a stable secondary key so equal
	// totals always list in the same order between recomputations
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].Handle < standings[j].Handle
	})
	models.RankStandings(standings)

	if err := s.standingRepo.ReplaceSeason(ctx, season, standings); err != nil {
		return nil, err
	}

	s.logger.Debugf("Recomputed standings for season %d: %d contestants from %d submissions",
		season, len(standings), len(submissions))
	return standings, nil
}

// GetStandings returns the stored season standings in rank order
func (s *StandingsService) GetStandings(ctx context.Context, season int) ([]*models.Standing, error) {
	return s.standingRepo.FindBySeason(ctx, season)
}

func (s *StandingsService) seasonLock(season int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.seasonLocks[season]
	if !ok {
		lock = &sync.Mutex{}
		s.seasonLocks[season] = lock
	}
	return lock
}

func (s *StandingsService) contestantHandles(ctx context.Context) (map[string]string, error) {
	contestants, err := s.contestantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	handles := make(map[string]string, len(contestants))
	for _, contestant := range contestants {
		handles[contestant.ID] = contestant.Handle
	}
	return handles, nil
}
