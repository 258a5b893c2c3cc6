package services

import (
	"testing"
	"time"

	"megapicks-go/config"
	"megapicks-go/models"

	"github.com/stretchr/testify/assert"
)

func TestLatePenalty(t *testing.T) {
	svc := &SubmissionService{rules: config.DefaultHouseRules()}

	assert.Equal(t, 0.0, svc.latePenalty(0))
	assert.Equal(t, 0.0, svc.latePenalty(-5))
	assert.InDelta(t, 0.1, svc.latePenalty(1), 1e-9)
	assert.InDelta(t, 1.2, svc.latePenalty(12), 1e-9)
	// Capped at 5.0 no matter how late
	assert.Equal(t, 5.0, svc.latePenalty(50))
	assert.Equal(t, 5.0, svc.latePenalty(10000))
}

func TestLockTimeForWeek(t *testing.T) {
	sunday := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	thursday := sunday.Add(-72 * time.Hour)
	monday := sunday.Add(27 * time.Hour)

	games := []*models.Game{
		{ID: "g1", KickoffTime: sunday},
		{ID: "g2", KickoffTime: thursday},
		{ID: "g3", KickoffTime: monday},
	}

	assert.Equal(t, thursday, LockTimeForWeek(games))
	assert.True(t, LockTimeForWeek(nil).IsZero())
}

func TestRecalculateTotalsAppliesPenalty(t *testing.T) {
	submission := &models.WeekSubmission{
		Picks: []models.Pick{
			{Result: models.PickResultWin, PointsEarned: 1.0},
			{Result: models.PickResultPush, PointsEarned: 0.5},
			{Result: models.PickResultLoss, PointsEarned: 0.0},
		},
		Parlay:      models.Parlay{Status: models.ParlayStatusHit, PointsEarned: 7.0},
		LatePenalty: 1.2,
	}
	submission.RecalculateTotals()

	assert.Equal(t, 1.5, submission.ATSPoints)
	assert.Equal(t, 7.0, submission.ParlayPoints)
	assert.InDelta(t, 7.3, submission.TotalPoints, 1e-9)

	// Running it again must not drift: always derived, never incremented
	submission.RecalculateTotals()
	assert.InDelta(t, 7.3, submission.TotalPoints, 1e-9)
}
