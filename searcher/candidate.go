package searcher

import (
	"math"
	"sync"

	"cellwars/agent"
	"cellwars/game"

	"golang.org/x/exp/slices"
)

// candidate is a move of the player to move together with the rewards of its episodes.
type candidate struct {
	move    []game.Transfer
	rewards float64
	visits  float64
}

func (c *candidate) mean() float64 {
	if c.visits == 0 {
		return math.Inf(-1)
	}
	return c.rewards / c.visits
}

// bandit shares the candidates between the workers.
type bandit struct {
	sync.Mutex
	candidates []*candidate
	visits     float64
}

// newBandit collects the distinct moves the policies propose, plus passing.
func newBandit(g *game.Game, policies []agent.Agent) *bandit {
	b := &bandit{candidates: []*candidate{{}}}
	for _, policy := range policies {
		move := policy.GetMove(g)
		if len(move) == 0 {
			continue
		}
		seen := slices.ContainsFunc(b.candidates, func(c *candidate) bool {
			return slices.Equal(c.move, move)
		})
		if !seen {
			b.candidates = append(b.candidates, &candidate{move: move})
		}
	}
	return b
}

// selects returns an unvisited candidate or the one with the highest UCB value, and applies
// a virtual loss to it until its episode is backed up.
func (b *bandit) selects() *candidate {
	b.Lock()
	defer b.Unlock()

	var selected *candidate
	for _, c := range b.candidates {
		if c.visits == 0 {
			selected = c
			break
		}
	}
	if selected == nil {
		scores := newUCB(b.visits)
		best := math.Inf(-1)
		for _, c := range b.candidates {
			if v := scores.value(c.rewards, c.visits); v > best {
				best = v
				selected = c
			}
		}
	}

	selected.visits++
	selected.rewards += VirtualLoss
	b.visits++
	return selected
}

// backup replaces the virtual loss of c by the score of its episode.
func (b *bandit) backup(c *candidate, score float64) {
	b.Lock()
	defer b.Unlock()

	c.rewards += score - VirtualLoss
}

// best returns the most visited candidate, the better mean on ties.
func (b *bandit) best() *candidate {
	b.Lock()
	defer b.Unlock()

	best := b.candidates[0]
	for _, c := range b.candidates[1:] {
		if c.visits > best.visits || (c.visits == best.visits && c.mean() > best.mean()) {
			best = c
		}
	}
	return best
}
