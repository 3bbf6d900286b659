package agent

import (
	"math"

	"cellwars/game"

	"golang.org/x/exp/rand"
)

// BorderNeed is how much mass a border cell asks its neighbors for.
const BorderNeed = 1000

// Support keeps cells at the front fed. Each cell sends its surplus to the neediest friendly
// neighbor it can satisfy, otherwise attacks a neighbor it can beat, otherwise donates.
type Support struct {
	rng *rand.Rand
}

func NewSupport(seed uint64) *Support {
	s := &Support{}
	s.InitRandom(seed)
	return s
}

func (s *Support) InitRandom(seed uint64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// fillNeeds returns how much mass each cell of me wants: a lot at the front, otherwise enough to
// reach the biggest bracket.
func fillNeeds(g *game.Game, me int) []int {
	needs := make([]int, g.NumCells)
	for _, c := range g.PlayerCells(me) {
		if g.BordersEnemyCells(c, me) {
			needs[c] = BorderNeed - g.Masses[c]
		} else {
			needs[c] = max(0, game.Big.MinSize-g.Masses[c])
		}
	}
	return needs
}

// minAttack is the smallest mass that conquers a cell of the given mass, with one to spare.
func minAttack(defending int) int {
	return int(math.Ceil(float64(defending)/game.AttackMul)) + 1
}

func (s *Support) GetMove(g *game.Game) []game.Transfer {
	me := g.CurrentPlayer()
	move := game.NewTransferMove()
	needs := fillNeeds(g, me)
	incoming := make([]int, g.NumCells)
	missing := func(c int) int {
		return needs[c] - incoming[c]
	}

	for _, cell := range g.PlayerCells(me) {
		needs[cell] = 0
		mass := g.Masses[cell]
		available := min(game.Surplus(mass+incoming[cell]), mass-1)
		if available <= 0 || len(g.Neighbors[cell]) == 0 {
			continue
		}

		feed := -1
		for _, nb := range g.Neighbors[cell] {
			m := missing(nb)
			if g.Owners[nb] == me && m > 0 && m <= available && (feed < 0 || m > missing(feed)) {
				feed = nb
			}
		}
		if feed >= 0 {
			move.Add(game.Transfer{Source: cell, Target: feed, Mass: available})
			incoming[feed] += available
			continue
		}

		var enemies []int
		for _, nb := range g.Neighbors[cell] {
			if g.Owners[nb] != me {
				enemies = append(enemies, nb)
			}
		}
		s.rng.Shuffle(len(enemies), func(i, j int) {
			enemies[i], enemies[j] = enemies[j], enemies[i]
		})
		attacked := false
		for _, nb := range enemies {
			if available > minAttack(g.Masses[nb]) {
				move.Add(game.Transfer{Source: cell, Target: nb, Mass: available})
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}

		// Donate the rest to the neediest neighbor, the highest index on ties
		donee := g.Neighbors[cell][0]
		for _, nb := range g.Neighbors[cell][1:] {
			if m, best := missing(nb), missing(donee); m > best || (m == best && nb > donee) {
				donee = nb
			}
		}
		incoming[donee] += available
		move.AddAndCombine(game.Transfer{Source: cell, Target: donee, Mass: available})
	}
	return move.Transfers()
}
