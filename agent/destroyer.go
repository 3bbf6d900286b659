package agent

import (
	"cellwars/game"

	"golang.org/x/exp/slices"
)

// Destroyer sends every cell toward its most valuable neighbor. Friendly cells closer to the
// front and enemy cells it can beat are preferred.
type Destroyer struct{}

func NewDestroyer() *Destroyer {
	return &Destroyer{}
}

// frontGraph links every cell of me to the neighbors one step closer to the front.
func frontGraph(g *game.Game, me int) [][]int {
	toward := make([][]int, g.NumCells)
	done := make([]bool, g.NumCells)

	frontier := make(map[int]struct{})
	for c, owner := range g.Owners {
		if owner != me || !g.BordersEnemyCells(c, me) {
			continue
		}
		for _, nb := range g.Neighbors[c] {
			if g.Owners[nb] != me {
				frontier[nb] = struct{}{}
			}
		}
	}

	for len(frontier) > 0 {
		next := make(map[int]struct{})
		for c := range frontier {
			var behind []int
			for _, nb := range g.Neighbors[c] {
				if !done[nb] && g.Owners[nb] == me {
					behind = append(behind, nb)
					next[nb] = struct{}{}
				}
			}
			toward[c] = behind
		}
		for c := range frontier {
			done[c] = true
		}
		frontier = next
	}

	graph := make([][]int, g.NumCells)
	for c, behind := range toward {
		for _, b := range behind {
			graph[b] = append(graph[b], c)
		}
	}
	return graph
}

func priority(g *game.Game, me, source, target int, graph [][]int) int {
	owner := g.Owners[target]
	var weight int
	switch {
	case owner == me:
		weight = 2
	case owner == 0:
		weight = 3
	case float64(g.Masses[source]-1)*game.AttackMul <= float64(g.Masses[target]):
		// Don't focus that much when it can't be beaten
		weight = 1
	default:
		weight = 4
	}

	// Small friends, big enemies
	size := game.SizeIndex(g.Masses[target])
	if owner == me {
		weight *= 3 - size
	} else {
		weight *= size + 1
	}

	if slices.Contains(graph[source], target) {
		weight *= 2
	}
	return weight
}

func (d *Destroyer) GetMove(g *game.Game) []game.Transfer {
	me := g.CurrentPlayer()
	move := game.NewTransferMove()
	graph := frontGraph(g, me)

	for _, cell := range g.PlayerCells(me) {
		target, best := -1, 0
		for _, nb := range g.Neighbors[cell] {
			p := priority(g, me, cell, nb, graph)
			if target < 0 || p > best ||
				(p == best && (g.Masses[nb] < g.Masses[target] || (g.Masses[nb] == g.Masses[target] && nb > target))) {
				target, best = nb, p
			}
		}
		if target < 0 {
			continue
		}

		mass := g.Masses[cell]
		var send int
		if g.Owners[target] == me {
			send = game.Surplus(mass)
		} else if need := minAttack(g.Masses[target]); mass-1 < need {
			send = game.SurplusAbove(mass, game.Medium)
			if send < 0 {
				continue
			}
		} else {
			send = need + game.Surplus(mass-need)
		}
		if send > 0 {
			move.Add(game.Transfer{Source: cell, Target: target, Mass: send})
		}
	}
	return move.Transfers()
}
