// meta/meta.go
package meta

import "time"

// NUM_CELLS_MIN and NUM_CELLS_MAX bound the random board size of a series.
const (
	NUM_CELLS_MIN = 20
	NUM_CELLS_MAX = 50
)

// DENSITY of cells on the grid.
const DENSITY = 0.75

// HOLE_PROBABILITY that distant cells won't be connected.
const HOLE_PROBABILITY = 0.8

// MAX_ROUNDS before a game is declared a draw.
const MAX_ROUNDS = 200

// MAX_TURNS caps the half-turns the engine plays when the game itself has no round limit.
const MAX_TURNS = 2000

// GO_ROUTINES defines the number of goroutines the sampler uses.
const GO_ROUTINES = 4

// EPISODES defines the number of episodes for the sampler.
const EPISODES = 64

// WITH_CUTOFF defines how many half-turns a sampler rollout plays.
const WITH_CUTOFF = 6

// TIME_LIMIT of 0 disables the per-turn limit.
const TIME_LIMIT = time.Duration(0)
