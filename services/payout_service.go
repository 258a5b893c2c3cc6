package services

import (
	"context"
	"sync"

	"megapicks-go/config"
	"megapicks-go/database"
	"megapicks-go/logging"
	"megapicks-go/models"

	"github.com/cockroachdb/errors"
)

// ErrWeekNotGraded means settlement was requested before every submission in
// the week reached a terminal grade.
var ErrWeekNotGraded = errors.New("week is not fully graded")

// PayoutService settles pots. All money is integer cents, every disbursement
// lands in the append-only payout ledger, and both the ledger check and the
// pot's settled flag guard against paying a pot twice.
type PayoutService struct {
	submissionRepo *database.MongoSubmissionRepository
	standingRepo   *database.MongoStandingRepository
	potRepo        *database.MongoPotRepository
	payoutRepo     *database.MongoPayoutRepository
	rules          config.HouseRules
	logger         *logging.Logger

	mu sync.Mutex
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	submissionRepo *database.MongoSubmissionRepository,
	standingRepo *database.MongoStandingRepository,
	potRepo *database.MongoPotRepository,
	payoutRepo *database.MongoPayoutRepository,
	rules config.HouseRules,
) *PayoutService {
	return &PayoutService{
		submissionRepo: submissionRepo,
		standingRepo:   standingRepo,
		potRepo:        potRepo,
		payoutRepo:     payoutRepo,
		rules:          rules,
		logger:         logging.WithPrefix("PayoutService"),
	}
}

// SettleWeek pays the weekly pot to the week's point leader once every
// submission is graded. Tied leaders either split the pot cent-exactly or
// roll it into the mega pot, per house rules. Idempotent: settling a settled
// week returns the empty result without writing anything.
func (s *PayoutService) SettleWeek(ctx context.Context, season, week int) ([]*models.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if done, err := s.alreadySettled(ctx, season, week, models.PotTypeWeekly); err != nil || done {
		return nil, err
	}

	submissions, err := s.submissionRepo.FindAllByWeek(ctx, season, week)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, errors.Newf("no submissions for season %d week %d", season, week)
	}
	for _, submission := range submissions {
		if !submission.FullyGraded() {
			return nil, errors.Wrapf(ErrWeekNotGraded, "contestant %s season %d week %d",
				submission.ContestantID, season, week)
		}
	}

	pot, err := s.potRepo.GetOrCreate(ctx, season, week, models.PotTypeWeekly, s.rules.Pot.WeeklyAmountCents)
	if err != nil {
		return nil, err
	}
	if pot.Settled {
		return nil, nil
	}

	leaders := weekLeaders(submissions)

	if len(leaders) > 1 && s.rules.Pot.TieRollsOver {
		return nil, s.rollIntoMegaPot(ctx, season, week, pot.AmountCents)
	}

	payoutType := models.PayoutTypeWeeklyWin
	if len(leaders) > 1 {
		payoutType = models.PayoutTypeWeeklySplit
	}
	shares := models.SplitCents(pot.AmountCents, len(leaders))
	payouts := make([]*models.Payout, len(leaders))
	for i, leader := range leaders {
		payouts[i] = &models.Payout{
			ContestantID: leader.ContestantID,
			Season:       season,
			Week:         week,
			PotType:      models.PotTypeWeekly,
			Type:         payoutType,
			AmountCents:  shares[i],
		}
	}

	if err := s.payoutRepo.AppendMany(ctx, payouts); err != nil {
		return nil, err
	}
	if _, err := s.potRepo.MarkSettled(ctx, season, week, models.PotTypeWeekly, false); err != nil {
		return nil, err
	}

	s.logger.Infof("Settled season %d week %d: %d cents across %d winner(s)",
		season, week, pot.AmountCents, len(leaders))
	return payouts, nil
}

// SettleSeason pays the mega pot to the rank-1 contestants in the final
// standings. Season-ending ties always split; there is nowhere left to roll.
func (s *PayoutService) SettleSeason(ctx context.Context, season int) ([]*models.Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if done, err := s.alreadySettled(ctx, season, megaPotWeek, models.PotTypeMega); err != nil || done {
		return nil, err
	}

	standings, err := s.standingRepo.FindBySeason(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return nil, errors.Newf("no standings for season %d", season)
	}

	pot, err := s.potRepo.GetOrCreate(ctx, season, megaPotWeek, models.PotTypeMega, s.rules.Pot.MegaSeedCents)
	if err != nil {
		return nil, err
	}
	if pot.Settled {
		return nil, nil
	}

	var winners []*models.Standing
	for _, standing := range standings {
		if standing.Rank == 1 {
			winners = append(winners, standing)
		}
	}

	payoutType := models.PayoutTypeMegaWin
	if len(winners) > 1 {
		payoutType = models.PayoutTypeMegaSplit
	}
	shares := models.SplitCents(pot.AmountCents, len(winners))
	payouts := make([]*models.Payout, len(winners))
	for i, winner := range winners {
		payouts[i] = &models.Payout{
			ContestantID: winner.ContestantID,
			Season:       season,
			Week:         megaPotWeek,
			PotType:      models.PotTypeMega,
			Type:         payoutType,
			AmountCents:  shares[i],
		}
	}

	if err := s.payoutRepo.AppendMany(ctx, payouts); err != nil {
		return nil, err
	}
	if _, err := s.potRepo.MarkSettled(ctx, season, megaPotWeek, models.PotTypeMega, false); err != nil {
		return nil, err
	}

	s.logger.Infof("Settled season %d mega pot: %d cents across %d winner(s)",
		season, pot.AmountCents, len(winners))
	return payouts, nil
}

// megaPotWeek is the week slot the season-long mega pot occupies.
const megaPotWeek = 0

// alreadySettled checks both idempotency guards: the ledger and the pot flag.
func (s *PayoutService) alreadySettled(ctx context.Context, season, week int, potType models.PotType) (bool, error) {
	exists, err := s.payoutRepo.ExistsForPot(ctx, season, week, potType)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Debugf("Season %d week %d %s pot already paid, skipping", season, week, potType)
	}
	return exists, nil
}

// rollIntoMegaPot moves an unclaimed weekly pot into the season's mega pot
// and marks the source settled with the rolled-over flag.
func (s *PayoutService) rollIntoMegaPot(ctx context.Context, season, week int, amountCents int64) error {
	if _, err := s.potRepo.GetOrCreate(ctx, season, megaPotWeek, models.PotTypeMega, s.rules.Pot.MegaSeedCents); err != nil {
		return err
	}
	if err := s.potRepo.AddAmount(ctx, season, megaPotWeek, models.PotTypeMega, amountCents); err != nil {
		return err
	}
	if _, err := s.potRepo.MarkSettled(ctx, season, week, models.PotTypeWeekly, true); err != nil {
		return err
	}
	s.logger.Infof("Rolled tied season %d week %d pot (%d cents) into the mega pot", season, week, amountCents)
	return nil
}

// weekLeaders returns the submissions sharing the week's highest total
func weekLeaders(submissions []*models.WeekSubmission) []*models.WeekSubmission {
	var leaders []*models.WeekSubmission
	best := 0.0
	for _, submission := range submissions {
		switch {
		case len(leaders) == 0 || submission.TotalPoints > best:
			leaders = leaders[:0]
			leaders = append(leaders, submission)
			best = submission.TotalPoints
		case submission.TotalPoints == best:
			leaders = append(leaders, submission)
		}
	}
	return leaders
}
