package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransferMove(t *testing.T) {
	t.Run("add keeps every transfer in order", func(t *testing.T) {
		tm := NewTransferMove(Transfer{0, 1, 5})
		tm.Add(Transfer{0, 1, 3})

		require.Equal(t, []Transfer{{0, 1, 5}, {0, 1, 3}}, tm.Transfers())
	})

	t.Run("combining sums mass of the same source and target", func(t *testing.T) {
		tm := NewTransferMove()
		tm.AddAndCombine(Transfer{0, 1, 5})
		tm.AddAndCombine(Transfer{2, 1, 4})
		tm.AddAndCombine(Transfer{0, 1, 3})

		require.Equal(t, []Transfer{{0, 1, 8}, {2, 1, 4}}, tm.Transfers())
		require.Equal(t, 2, tm.Len())
	})

	t.Run("exclusive add refuses a second target for a source", func(t *testing.T) {
		tm := NewTransferMove()
		require.True(t, tm.AddExclusive(Transfer{0, 1, 5}))
		require.False(t, tm.AddExclusive(Transfer{0, 2, 5}))
		require.True(t, tm.AddExclusive(Transfer{0, 1, 2}))

		require.Equal(t, []Transfer{{0, 1, 7}}, tm.Transfers())
	})

	t.Run("returned transfers do not alias the move", func(t *testing.T) {
		tm := NewTransferMove(Transfer{0, 1, 5})
		got := tm.Transfers()
		got[0].Mass = 100

		require.Equal(t, 5, tm.Transfers()[0].Mass)
	})
}
