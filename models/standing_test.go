package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankStandingsTiesShareRank(t *testing.T) {
	standings := []*Standing{
		{ContestantID: "alice", TotalPoints: 42.0},
		{ContestantID: "bob", TotalPoints: 42.0},
		{ContestantID: "carol", TotalPoints: 38.5},
		{ContestantID: "dave", TotalPoints: 38.5},
		{ContestantID: "erin", TotalPoints: 30.0},
	}
	RankStandings(standings)

	// Standard competition ranking: 1, 1, 3, 3, 5
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank)
	assert.Equal(t, 3, standings[2].Rank)
	assert.Equal(t, 3, standings[3].Rank)
	assert.Equal(t, 5, standings[4].Rank)
}

func TestRankStandingsNoTies(t *testing.T) {
	standings := []*Standing{
		{TotalPoints: 10},
		{TotalPoints: 8},
		{TotalPoints: 6},
	}
	RankStandings(standings)
	assert.Equal(t, []int{1, 2, 3}, []int{standings[0].Rank, standings[1].Rank, standings[2].Rank})
}

func TestStandingAddWeek(t *testing.T) {
	standing := &Standing{ContestantID: "alice", Season: 2025}

	week1 := &WeekSubmission{
		Picks: []Pick{
			{Result: PickResultWin, PointsEarned: 1.0},
			{Result: PickResultWin, PointsEarned: 1.0},
			{Result: PickResultLoss},
			{Result: PickResultPush, PointsEarned: 0.5},
		},
		ATSPoints:    2.5,
		Parlay:       Parlay{Status: ParlayStatusHit, PointsEarned: 7.0},
		ParlayPoints: 7.0,
		LatePenalty:  0,
	}
	week2 := &WeekSubmission{
		Picks: []Pick{
			{Result: PickResultLoss},
			{Result: PickResultLoss},
		},
		ATSPoints:    0,
		Parlay:       Parlay{Status: ParlayStatusBusted},
		ParlayPoints: 0,
		LatePenalty:  1.5,
	}

	standing.AddWeek(week1)
	standing.AddWeek(week2)

	assert.Equal(t, "2-3-1", standing.ATSRecord.String())
	assert.Equal(t, 2.5, standing.ATSPoints)
	assert.Equal(t, 7.0, standing.ParlayPoints)
	assert.Equal(t, 1.5, standing.PenaltyPoints)
	assert.Equal(t, 1, standing.ParlaysHit)
	assert.Equal(t, 1, standing.ParlaysBusted)
	assert.Equal(t, 8.0, standing.TotalPoints)
}
