// Package agent defines how players pick their moves and provides simple built-in players.
package agent

import "cellwars/game"

// Agent picks the transfers of the player to move. It only ever gets a clone of the game and
// must not keep it after returning.
type Agent interface {
	GetMove(g *game.Game) []game.Transfer
}

// Seeder is implemented by agents that draw random numbers.
type Seeder interface {
	InitRandom(seed uint64)
}
