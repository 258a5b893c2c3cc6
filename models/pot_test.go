package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCents(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		shares := SplitCents(52000, 2)
		assert.Equal(t, []int64{26000, 26000}, shares)
	})

	t.Run("remainder goes to the first shares", func(t *testing.T) {
		shares := SplitCents(100, 3)
		assert.Equal(t, []int64{34, 33, 33}, shares)
	})

	t.Run("total is always preserved", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 7, 13} {
			shares := SplitCents(52001, n)
			require.Len(t, shares, n)
			var total int64
			for _, share := range shares {
				total += share
			}
			assert.Equal(t, int64(52001), total)
		}
	})

	t.Run("single recipient takes everything", func(t *testing.T) {
		assert.Equal(t, []int64{52000}, SplitCents(52000, 1))
	})

	t.Run("invalid recipient counts", func(t *testing.T) {
		assert.Nil(t, SplitCents(52000, 0))
		assert.Nil(t, SplitCents(52000, -1))
	})
}
