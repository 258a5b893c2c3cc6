package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PotType distinguishes the weekly pot from the season-long mega pot
type PotType string

const (
	PotTypeWeekly PotType = "weekly"
	PotTypeMega   PotType = "mega"
)

// PayoutType records why a payout was made
type PayoutType string

const (
	PayoutTypeWeeklyWin   PayoutType = "weekly_win"
	PayoutTypeWeeklySplit PayoutType = "weekly_split"
	PayoutTypeMegaWin     PayoutType = "mega_win"
	PayoutTypeMegaSplit   PayoutType = "mega_split"
)

// Pot holds prize money for one (season, week, type). Amounts are integer
// cents. A settled pot's amount is historical and never mutated; rollovers
// create additions to the destination pot instead.
type Pot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Season      int                `bson:"season" json:"season"`
	Week        int                `bson:"week" json:"week"` // 0 for the mega pot
	Type        PotType            `bson:"type" json:"type"`
	AmountCents int64              `bson:"amount_cents" json:"amount_cents"`
	RolledOver  bool               `bson:"rolled_over" json:"rolled_over"`
	Settled     bool               `bson:"settled" json:"settled"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Payout is one append-only ledger entry recording money disbursed from a
// pot to a contestant.
type Payout struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContestantID string             `bson:"contestant_id" json:"contestant_id"`
	Season       int                `bson:"season" json:"season"`
	Week         int                `bson:"week" json:"week"`
	PotType      PotType            `bson:"pot_type" json:"pot_type"`
	Type         PayoutType         `bson:"type" json:"type"`
	AmountCents  int64              `bson:"amount_cents" json:"amount_cents"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// SplitCents divides an amount evenly across n recipients using
// largest-remainder rounding: the first (amount mod n) shares get one extra
// cent so no cent is lost or invented.
func SplitCents(amountCents int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := amountCents / int64(n)
	remainder := amountCents % int64(n)
	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
