package engine

import (
	"cellwars/experiments/metrics"
	"cellwars/game"
)

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Reporter is implemented by agents that measure their own search.
type Reporter interface {
	LastMetric() metrics.SearchMetric
}

// Observer receives a snapshot after every applied move, e.g. to render the game.
type Observer func(info game.GUIInfo)
