package config

// HouseRules collects every scoring constant and payout policy in one place
// so rule changes never touch grading logic. Graders receive this structure
// instead of reading literals.
type HouseRules struct {
	Points      PointValues
	Parlay      ParlayRules
	LatePenalty LatePenaltyRules
	Pot         PotRules
}

// PointValues are the points earned per ATS pick outcome.
type PointValues struct {
	Win  float64
	Push float64
	Loss float64
}

// ParlayRules govern parlay leg counts and the payout schedule.
type ParlayRules struct {
	// MinLegs is the minimum number of legs a parlay must carry at
	// submission, and the floor for the effective leg count after pushes.
	MinLegs int

	// Payouts maps leg count to points on a hit. Leg counts above the
	// highest key fall back to the (2^n)-1 progression the table follows.
	Payouts map[int]float64

	// PushReducesLegs removes pushed legs from the parlay instead of
	// busting it. When the effective count drops below MinLegs the parlay
	// is a no-contest.
	PushReducesLegs bool
}

// LatePenaltyRules govern submissions arriving after the lock deadline.
type LatePenaltyRules struct {
	AllowLate       bool
	PointsPerMinute float64
	CapPoints       float64
}

// PotRules govern weekly and mega pot funding and tie handling. Amounts are
// integer cents; the payout path never touches floats.
type PotRules struct {
	WeeklyAmountCents int64
	MegaSeedCents     int64

	// TieRollsOver sends a tied weekly pot into the mega pot instead of
	// splitting it across the tied leaders.
	TieRollsOver bool
}

// DefaultHouseRules returns the league's standing rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		Points: PointValues{
			Win:  1.0,
			Push: 0.5,
			Loss: 0.0,
		},
		Parlay: ParlayRules{
			MinLegs: 3,
			Payouts: map[int]float64{
				3: 7,
				4: 15,
				5: 31,
				6: 63,
			},
			PushReducesLegs: true,
		},
		LatePenalty: LatePenaltyRules{
			AllowLate:       true,
			PointsPerMinute: 0.1,
			CapPoints:       5.0,
		},
		Pot: PotRules{
			WeeklyAmountCents: 52000,
			MegaSeedCents:     0,
			TieRollsOver:      false,
		},
	}
}

// ParlayPayout returns the points for a hit parlay with the given effective
// leg count, extending the table with the (2^n)-1 progression when needed.
func (r ParlayRules) ParlayPayout(legs int) float64 {
	if points, ok := r.Payouts[legs]; ok {
		return points
	}
	if legs < r.MinLegs {
		return 0
	}
	result := 1
	for i := 0; i < legs; i++ {
		result *= 2
	}
	return float64(result - 1)
}

// RulesConfig exposes the house-rule knobs that vary per deployment.
type RulesConfig struct {
	WeeklyPotCents       int64 `envconfig:"WEEKLY_POT_CENTS" default:"52000"`
	MegaPotSeedCents     int64 `envconfig:"MEGA_POT_SEED_CENTS" default:"0"`
	TiePotRollsOver      bool  `envconfig:"TIE_POT_ROLLS_OVER" default:"false"`
	AllowLateSubmissions bool  `envconfig:"ALLOW_LATE_SUBMISSIONS" default:"true"`
}

// HouseRules merges the deployment knobs onto the default rule set.
func (c *Config) HouseRules() HouseRules {
	rules := DefaultHouseRules()
	rules.Pot.WeeklyAmountCents = c.Rules.WeeklyPotCents
	rules.Pot.MegaSeedCents = c.Rules.MegaPotSeedCents
	rules.Pot.TieRollsOver = c.Rules.TiePotRollsOver
	rules.LatePenalty.AllowLate = c.Rules.AllowLateSubmissions
	return rules
}
