package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAttack(t *testing.T) {
	t.Run("stronger attack conquers the cell", func(t *testing.T) {
		conquered, mass := Attack(50, 10)
		require.True(t, conquered)
		require.Equal(t, 31, mass, "max(1, floor(40 - 10*0.9))")
	})

	t.Run("weaker attack only wears the defender down", func(t *testing.T) {
		conquered, mass := Attack(10, 40)
		require.False(t, conquered)
		require.Equal(t, 34, mass, "ceil(40 - 8*0.8)")
	})

	t.Run("a tie is won by the defender", func(t *testing.T) {
		conquered, mass := Attack(10, 8)
		require.False(t, conquered)
		require.Equal(t, 2, mass, "ceil(8 - 6.4)")
	})

	t.Run("conquered cells keep at least one mass", func(t *testing.T) {
		conquered, mass := Attack(11, 8)
		require.True(t, conquered)
		require.Equal(t, 1, mass)
	})
}

func TestGrowth(t *testing.T) {
	t.Run("owned cells grow by their bracket", func(t *testing.T) {
		require.Equal(t, 5, Growth(10, 1, 0))
		require.Equal(t, 12, Growth(50, 2, 0))
		require.Equal(t, 35, Growth(150, 1, 0))
	})

	t.Run("safe cells grow faster", func(t *testing.T) {
		require.Equal(t, 25, Growth(10, 1, 2))
	})

	t.Run("neutral cells grow by one", func(t *testing.T) {
		require.Equal(t, 1, Growth(10, 0, 0))
		require.Equal(t, 1, Growth(200, 0, 3))
	})

	t.Run("cells over the cap decay", func(t *testing.T) {
		require.Equal(t, -37, Growth(360, 1, 0))
		require.Equal(t, -37, Growth(360, 0, 0))
		require.Equal(t, 35, Growth(350, 1, 0))
	})
}

func TestGrowCells(t *testing.T) {
	t.Run("growth depends on bracket owner and safety", func(t *testing.T) {
		g := newTestGame([]int{1, 1, 2, 0}, []int{10, 10, 10, 10}, line(4))
		g.GrowCells()

		require.Equal(t, []int{25, 15, 15, 11}, g.Masses)
		require.Equal(t, [3]int{11, 40, 15}, g.TotalMasses)
	})

	t.Run("oversized cell decays to 323", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{360, 10}, line(2))
		g.GrowCells()

		require.Equal(t, 323, g.Masses[0])
		require.Equal(t, 323, g.TotalMass(1))
	})
}

func TestMakeMove(t *testing.T) {
	t.Run("moves within own cells keep totals", func(t *testing.T) {
		g := newTestGame([]int{1, 1, 0, 2}, []int{10, 20, 5, 10}, line(4))
		g.MakeMove([]Transfer{{0, 1, 9}, {1, 0, 5}})

		require.Equal(t, []int{6, 24, 5, 10}, g.Masses)
		require.Equal(t, [3]int{5, 30, 10}, g.TotalMasses)
		require.Equal(t, 1, g.Counter)
		require.Equal(t, 2, g.CurrentPlayer())
		require.False(t, g.IsDone())
	})

	t.Run("invalid entries are skipped without aborting the move", func(t *testing.T) {
		g := newTestGame([]int{1, 1, 0, 2}, []int{10, 20, 5, 10}, line(4))
		g.MakeMove([]Transfer{
			{0, 1, 0},  // non positive mass
			{0, 0, 5},  // targets itself
			{3, 2, 5},  // not owned
			{0, 2, 5},  // not a neighbor
			{1, 0, 20}, // nothing would stay behind
			{99, 0, 1}, // out of range
			{1, 0, 5},  // valid
			{1, 2, 5},  // second transfer of the source
			{0, 1, 9},  // valid
		})

		require.Equal(t, []int{6, 24, 5, 10}, g.Masses)
		require.Equal(t, []int{1, 1, 0, 2}, g.Owners)
		require.Equal(t, [3]int{5, 30, 10}, g.TotalMasses)
	})

	t.Run("successful attack takes the cell", func(t *testing.T) {
		g := newTestGame([]int{1, 2, 2}, []int{51, 10, 10}, line(3))
		g.MakeMove([]Transfer{{0, 1, 50}})

		require.Equal(t, []int{1, 1, 2}, g.Owners)
		require.Equal(t, []int{1, 31, 10}, g.Masses)
		require.Equal(t, [3]int{0, 32, 10}, g.TotalMasses)
		require.False(t, g.IsDone())
	})

	t.Run("failed attack leaves the owner", func(t *testing.T) {
		g := newTestGame([]int{1, 0, 2}, []int{11, 10, 40}, line(3))
		g.MakeMove([]Transfer{{0, 1, 10}})

		require.Equal(t, []int{1, 0, 2}, g.Owners)
		require.Equal(t, []int{1, 4, 40}, g.Masses)
		require.Equal(t, [3]int{4, 1, 40}, g.TotalMasses)
	})

	t.Run("attacks on the same cell are combined", func(t *testing.T) {
		g := newTestGame([]int{1, 2, 1, 2}, []int{30, 30, 30, 10}, [][]int{{1}, {0, 2}, {1, 3}, {2}})
		g.MakeMove([]Transfer{{0, 1, 25}, {2, 1, 25}})

		require.Equal(t, []int{1, 1, 1, 2}, g.Owners)
		require.Equal(t, []int{5, 13, 5, 10}, g.Masses, "max(1, floor(40 - 30*0.9))")
		require.Equal(t, [3]int{0, 23, 10}, g.TotalMasses)
	})

	t.Run("losing the last mass ends the game before growth", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{10, 51}, line(2))
		g.Turn = 2
		g.MakeMove([]Transfer{{1, 0, 50}})

		require.Equal(t, 0, g.TotalMass(1))
		require.Equal(t, 2, g.Winner)
		require.True(t, g.IsDone())
		require.Equal(t, 1, g.CurrentPlayer())
	})

	t.Run("player 1 wins by taking the last enemy cell", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{51, 10}, line(2))
		g.MakeMove([]Transfer{{0, 1, 50}})

		require.Equal(t, 1, g.Winner)
	})

	t.Run("round limit ends in a draw", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{10, 10}, line(2))
		g.MaxRounds = 1
		g.MakeMove(nil)
		require.False(t, g.IsDone())
		g.MakeMove(nil)
		require.Equal(t, Draw, g.Winner)
	})

	t.Run("no round limit keeps the game going", func(t *testing.T) {
		g := newTestGame([]int{1, 2}, []int{10, 10}, line(2))
		for i := 0; i < 50; i++ {
			g.MakeMove(nil)
		}
		require.False(t, g.IsDone())
		require.Equal(t, 25, g.Round())
	})
}

func TestMassConservation(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g := New(seed, 30)
		require.NoError(t, g.NewGame(20+int(seed)*3, 0.75, 0.8))
		rng := rand.New(rand.NewSource(seed))

		require.NotPanics(t, func() {
			for !g.IsDone() {
				var move []Transfer
				for _, c := range g.PlayerCells(g.CurrentPlayer()) {
					nbs := g.Neighbors[c]
					if len(nbs) == 0 || g.Masses[c] < 2 {
						continue
					}
					move = append(move, Transfer{
						Source: c,
						Target: nbs[rng.Intn(len(nbs))],
						Mass:   1 + rng.Intn(g.Masses[c]-1),
					})
				}
				g.MakeMove(move)
				if !g.IsDone() && g.Turn == 1 {
					g.GrowCells()
				}
			}
		}, "seed %d", seed)

		var sums [3]int
		for i, owner := range g.Owners {
			sums[owner] += g.Masses[i]
		}
		require.Equal(t, sums, g.TotalMasses, "seed %d", seed)
	}
}
