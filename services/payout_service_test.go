package services

import (
	"testing"

	"megapicks-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionWith(contestantID string, total float64) *models.WeekSubmission {
	return &models.WeekSubmission{ContestantID: contestantID, TotalPoints: total}
}

func TestWeekLeaders(t *testing.T) {
	t.Run("single leader", func(t *testing.T) {
		leaders := weekLeaders([]*models.WeekSubmission{
			submissionWith("alice", 12.5),
			submissionWith("bob", 11.0),
			submissionWith("carol", 9.5),
		})
		require.Len(t, leaders, 1)
		assert.Equal(t, "alice", leaders[0].ContestantID)
	})

	t.Run("tied leaders", func(t *testing.T) {
		leaders := weekLeaders([]*models.WeekSubmission{
			submissionWith("alice", 12.5),
			submissionWith("bob", 12.5),
			submissionWith("carol", 9.5),
		})
		require.Len(t, leaders, 2)
	})

	t.Run("leader appearing late in the slice", func(t *testing.T) {
		leaders := weekLeaders([]*models.WeekSubmission{
			submissionWith("alice", 3.0),
			submissionWith("bob", 8.0),
		})
		require.Len(t, leaders, 1)
		assert.Equal(t, "bob", leaders[0].ContestantID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, weekLeaders(nil))
	})

	t.Run("negative totals still produce a leader", func(t *testing.T) {
		leaders := weekLeaders([]*models.WeekSubmission{
			submissionWith("alice", -2.0),
			submissionWith("bob", -1.0),
		})
		require.Len(t, leaders, 1)
		assert.Equal(t, "bob", leaders[0].ContestantID)
	})
}

func TestTiedWeeklyPotSplitsToWholeCents(t *testing.T) {
	// $520 pot, two tied leaders: $260 each
	shares := models.SplitCents(52000, 2)
	require.Len(t, shares, 2)
	assert.Equal(t, int64(26000), shares[0])
	assert.Equal(t, int64(26000), shares[1])

	// Three-way split of $520 cannot lose a cent
	shares = models.SplitCents(52000, 3)
	var total int64
	for _, share := range shares {
		total += share
	}
	assert.Equal(t, int64(52000), total)
	assert.Equal(t, int64(17334), shares[0])
	assert.Equal(t, int64(17333), shares[1])
	assert.Equal(t, int64(17333), shares[2])
}
