package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("picks the highest bracket not above the mass", func(t *testing.T) {
		cases := map[int]SizeClass{
			1: Small, 10: Small, 34: Small,
			35: Medium, 99: Medium,
			100: Big, 350: Big, 1000: Big,
		}
		for mass, want := range cases {
			require.Equal(t, want, Classify(mass), "mass %d", mass)
		}
	})

	t.Run("masses below the smallest bracket are small", func(t *testing.T) {
		require.Equal(t, Small, Classify(0))
		require.Equal(t, Small, Classify(-3))
	})

	t.Run("size index follows the bracket", func(t *testing.T) {
		require.Equal(t, 0, SizeIndex(10))
		require.Equal(t, 1, SizeIndex(50))
		require.Equal(t, 2, SizeIndex(200))
	})
}

func TestSurplus(t *testing.T) {
	t.Run("mass over the minimum of the current bracket", func(t *testing.T) {
		require.Equal(t, 9, Surplus(10))
		require.Equal(t, 15, Surplus(50))
		require.Equal(t, 0, Surplus(100))
	})

	t.Run("tiny cells have nothing to give", func(t *testing.T) {
		require.Equal(t, 0, Surplus(1))
		require.Equal(t, 0, Surplus(0))
		require.Equal(t, 0, SurplusAbove(1, Big))
	})

	t.Run("surplus above a bracket can be negative", func(t *testing.T) {
		require.Equal(t, -25, SurplusAbove(10, Medium))
		require.Equal(t, 65, SurplusAbove(100, Medium))
	})
}
