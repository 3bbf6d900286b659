package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluations(t *testing.T) {
	require.Len(t, Evaluations, 4)
	for name, evaluate := range Evaluations {
		require.NotNil(t, evaluate, name)
	}
}

func TestTerminalScores(t *testing.T) {
	g := newTestGame([]int{1, 2}, []int{10, 30}, line(2))

	for name, evaluate := range Evaluations {
		g.Winner = 1
		require.Equal(t, 1.0, evaluate(g, 1), name)
		require.Equal(t, -1.0, evaluate(g, 2), name)

		g.Winner = Draw
		require.Zero(t, evaluate(g, 1), name)
		require.Zero(t, evaluate(g, 2), name)
	}
}

func TestSymmetricStartIsEven(t *testing.T) {
	g := New(5, 100)
	require.NoError(t, g.NewGame(32, 0.75, 0.8))

	for name, evaluate := range Evaluations {
		require.InDelta(t, 0, evaluate(g, 1), 1e-9, name)
		require.InDelta(t, 0, evaluate(g, 2), 1e-9, name)
	}
}

func TestScores(t *testing.T) {
	t.Run("resources", func(t *testing.T) {
		g := newTestGame([]int{1, 1, 2}, []int{10, 20, 30}, line(3))

		require.InDelta(t, 1.0/6, EvaluateResources(g, 1), 1e-9, "Territory 1/3 and even mass")
		require.InDelta(t, -1.0/6, EvaluateResources(g, 2), 1e-9)
	})

	t.Run("border strength can be negative for both players", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{10, 100}, line(2))
		require.Equal(t, -1.0, g.calculateBorderScore(1))
		require.Equal(t, 1.0, g.calculateBorderScore(2))

		// Both players face a big neutral cell, player 1 a little worse
		g = newTestGame([]int{1, 0, 2}, []int{10, 100, 20}, line(3))
		score := g.calculateBorderScore(1)
		require.Negative(t, score)
		require.InDelta(t, -8.0/176, score, 1e-9)
		require.InDelta(t, 8.0/176, g.calculateBorderScore(2), 1e-9)
	})

	t.Run("connectivity counts the largest territory", func(t *testing.T) {
		g := newTestGame([]int{1, 1, 0, 1, 2}, []int{5, 5, 5, 5, 5}, line(5))

		require.InDelta(t, 1.0/3, g.calculateConnectivityScore(1), 1e-9)
		require.InDelta(t, 4.0/9, EvaluateConnectivity(g, 1), 1e-9, "Territory 1/2, mass 1/2, connectivity 1/3")
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		boards := []*Game{
			newTestGame([]int{1, 2}, []int{10, 100}, line(2)),
			newTestGame([]int{1, 0, 2}, []int{10, 100, 20}, line(3)),
			newTestGame([]int{1, 1, 0, 1, 2}, []int{300, 5, 90, 1, 40}, line(5)),
		}
		for i, g := range boards {
			for name, evaluate := range Evaluations {
				for _, player := range []int{1, 2} {
					score := evaluate(g, player)
					require.GreaterOrEqual(t, score, -1.0, "board %d %s", i, name)
					require.LessOrEqual(t, score, 1.0, "board %d %s", i, name)
				}
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	require.Zero(t, normalize(0, 0))
	require.Equal(t, 1.0, normalize(5, 0))
	require.Equal(t, -1.0, normalize(-3, 3))
	require.InDelta(t, -0.2, normalize(-6, -4), 1e-9, "Negative values keep their order")
}
