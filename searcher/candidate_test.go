package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB(t *testing.T) {
	t.Run("panics without visits", func(t *testing.T) {
		require.Panics(t, func() { newUCB(0) })
		require.Panics(t, func() { newUCB(10).value(1, 0) })
	})

	t.Run("value is the mean plus an exploration bonus", func(t *testing.T) {
		got := newUCB(100).value(5, 10)

		expected := 5.0/10 + math.Sqrt(Exploration*math.Log(100)/10)
		require.InDelta(t, expected, got, 0.0001)
	})

	t.Run("negative rewards lower the value", func(t *testing.T) {
		scores := newUCB(100)

		require.Greater(t, scores.value(2, 10), scores.value(-2, 10))
	})

	t.Run("rarely visited candidates are explored", func(t *testing.T) {
		scores := newUCB(100)

		require.Greater(t, scores.value(0, 5), scores.value(0, 50))
	})
}

func TestBandit(t *testing.T) {
	newTestBandit := func(n int) *bandit {
		b := &bandit{}
		for i := 0; i < n; i++ {
			b.candidates = append(b.candidates, &candidate{})
		}
		return b
	}

	t.Run("unvisited candidates go first", func(t *testing.T) {
		b := newTestBandit(3)
		b.candidates[0].visits, b.candidates[0].rewards = 1, 1
		b.visits = 1

		require.Same(t, b.candidates[1], b.selects())
		require.Same(t, b.candidates[2], b.selects())
	})

	t.Run("selection applies a virtual loss until backup", func(t *testing.T) {
		b := newTestBandit(1)
		c := b.selects()
		require.Equal(t, 1.0, c.visits)
		require.Equal(t, VirtualLoss, c.rewards)

		b.backup(c, 0.5)
		require.Equal(t, 1.0, c.visits)
		require.Equal(t, 0.5, c.rewards)
	})

	t.Run("fully visited candidates are picked by UCB", func(t *testing.T) {
		b := newTestBandit(2)
		b.candidates[0].visits, b.candidates[0].rewards = 10, -5
		b.candidates[1].visits, b.candidates[1].rewards = 10, 5
		b.visits = 20

		require.Same(t, b.candidates[1], b.selects())
	})

	t.Run("best is the most visited candidate", func(t *testing.T) {
		b := newTestBandit(3)
		b.candidates[0].visits, b.candidates[0].rewards = 4, 4
		b.candidates[1].visits, b.candidates[1].rewards = 9, 1
		b.candidates[2].visits, b.candidates[2].rewards = 9, 3

		require.Same(t, b.candidates[2], b.best(), "Ties go to the better mean")
	})
}
