package agent

import (
	"cellwars/game"

	"golang.org/x/exp/rand"
)

// Dummy attacks a random neighbor with everything above the medium bracket when the attack
// would win.
type Dummy struct {
	rng *rand.Rand
}

func NewDummy(seed uint64) *Dummy {
	d := &Dummy{}
	d.InitRandom(seed)
	return d
}

func (d *Dummy) InitRandom(seed uint64) {
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Dummy) GetMove(g *game.Game) []game.Transfer {
	me := g.CurrentPlayer()
	move := game.NewTransferMove()
	for _, cell := range g.PlayerCells(me) {
		neighbors := g.Neighbors[cell]
		if len(neighbors) == 0 {
			continue
		}
		available := g.Masses[cell] - game.Medium.MinSize
		to := neighbors[d.rng.Intn(len(neighbors))]
		if float64(available)*game.AttackMul > float64(g.Masses[to]) {
			move.Add(game.Transfer{Source: cell, Target: to, Mass: available})
		}
	}
	return move.Transfers()
}
