package game

import (
	"math"

	"cellwars/utils"

	"github.com/rs/zerolog/log"
)

// Attack resolves attacking mass sent into a cell of another owner. Returns whether the cell
// is conquered and its new mass.
func Attack(attacking, defending int) (bool, int) {
	arriving := float64(attacking) * AttackMul
	if float64(defending) >= arriving {
		return false, int(math.Ceil(float64(defending) - arriving*DefAttackMul))
	}
	return true, max(1, int(math.Floor(arriving-float64(defending)*SucDefenseMul)))
}

// Growth returns the mass a cell gains in one round. safeNeighbors is the number of
// neighbors when all of them share the owner of the cell, 0 otherwise.
// Cells over SizeCap shrink.
func Growth(mass, owner, safeNeighbors int) int {
	switch {
	case mass > SizeCap:
		return Big.Growth - utils.CeilDiv(mass, OverCapDecay)
	case owner == 0:
		return Neutral.Growth
	default:
		return Classify(mass).Growth + safeNeighbors*WhenSafeGrowthPerNeighbor
	}
}

// MakeMove applies the transfers of the player to move, then advances the turn. Invalid
// transfers are logged and skipped, the rest of the move still applies.
func (g *Game) MakeMove(transfers []Transfer) {
	g.transfer(transfers)

	g.Counter++
	switch {
	case g.TotalMasses[1] == 0:
		g.Winner = 2
	case g.TotalMasses[2] == 0:
		g.Winner = 1
	case g.MaxRounds > 0 && g.Counter == g.MaxRounds*2:
		g.Winner = Draw
	}

	g.Turn = Opponent(g.Turn)
}

// validateTransfer lists why t cannot be made, given the mass already leaving its source.
func (g *Game) validateTransfer(t Transfer, outgoing []int, done []bool) []string {
	var errs []string
	if t.Source < 0 || t.Source >= g.NumCells || t.Target < 0 || t.Target >= g.NumCells {
		return append(errs, "cell out of range")
	}
	if t.Mass <= 0 {
		errs = append(errs, "non positive mass")
	}
	if done[t.Source] {
		errs = append(errs, "source has already transferred")
	}
	if t.Source == t.Target {
		errs = append(errs, "source targets itself")
	}
	if g.Owners[t.Source] != g.Turn {
		errs = append(errs, "source is not owned")
	}
	if g.Masses[t.Source] <= outgoing[t.Source]+t.Mass {
		errs = append(errs, "source has not enough mass")
	}
	if !g.IsNeighbor(t.Source, t.Target) {
		errs = append(errs, "recipient is not neighbor of source")
	}
	return errs
}

func (g *Game) transfer(transfers []Transfer) {
	mover := g.Turn
	outgoing := make([]int, g.NumCells)
	incoming := make([]int, g.NumCells)
	attacks := make([]int, g.NumCells)
	done := make([]bool, g.NumCells)

	for _, t := range transfers {
		if errs := g.validateTransfer(t, outgoing, done); len(errs) > 0 {
			log.Warn().
				Int("source", t.Source).
				Int("target", t.Target).
				Int("mass", t.Mass).
				Int("turn", g.Counter).
				Strs("errors", errs).
				Msg("transfer declined")
			continue
		}

		done[t.Source] = true
		outgoing[t.Source] += t.Mass
		if g.Owners[t.Target] == mover {
			incoming[t.Target] += t.Mass
		} else {
			attacks[t.Target] += t.Mass
		}
	}

	// Moves within the player's own cells leave the totals unchanged
	for i := range g.Masses {
		g.Masses[i] += incoming[i] - outgoing[i]
	}

	var diffs [3]int
	for i, mass := range attacks {
		if mass == 0 {
			continue
		}
		prior := g.Masses[i]
		defender := g.Owners[i]
		conquered, remaining := Attack(mass, prior)
		if conquered {
			g.Owners[i] = mover
			diffs[mover] -= mass - remaining
			diffs[defender] -= prior
		} else {
			diffs[mover] -= mass
			diffs[defender] -= prior - remaining
		}
		g.Masses[i] = remaining
	}
	for i := range diffs {
		g.TotalMasses[i] += diffs[i]
	}

	g.mustValidate()
}

// GrowCells adds one round of growth to every cell.
func (g *Game) GrowCells() {
	var growths [3]int
	for i, mass := range g.Masses {
		owner := g.Owners[i]
		safe := 0
		if owner != 0 && !g.BordersEnemyCells(i, owner) {
			safe = len(g.Neighbors[i])
		}
		growth := Growth(mass, owner, safe)
		g.Masses[i] += growth
		growths[owner] += growth
	}
	for i := range growths {
		g.TotalMasses[i] += growths[i]
	}

	g.mustValidate()
}
