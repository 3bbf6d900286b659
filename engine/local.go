package engine

import (
	"time"

	"cellwars/agent"
	"cellwars/experiments/metrics"
	"cellwars/game"
	"cellwars/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine plays two in-process agents against each other.
type LocalEngine struct {
	game      *game.Game
	agents    [2]agent.Agent // By player ID - 1
	timeLimit time.Duration
	maxTurns  int
	observer  Observer
}

// WithTimeLimit makes an agent forfeit the game when it thinks longer than limit.
func WithTimeLimit(limit time.Duration) Option {
	return func(e *LocalEngine) {
		if limit > 0 {
			e.timeLimit = limit
		}
	}
}

// WithMaxTurns caps the number of moves, after which the game is a draw.
func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

// NewLocalEngine plays g, which must already hold a board, with agent1 as player 1.
func NewLocalEngine(g *game.Game, agent1, agent2 agent.Agent, options ...Option) *LocalEngine {
	if g.NumCells <= 0 {
		panic("game has no board")
	}
	if agent1 == nil || agent2 == nil {
		panic("need two agents")
	}

	e := &LocalEngine{
		game:     g,
		agents:   [2]agent.Agent{agent1, agent2},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) observe() {
	if e.observer != nil {
		e.observer(e.game.GUIInfo())
	}
}

// Run executes the game loop until a winner is found. Agents only ever see clones.
func (e *LocalEngine) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	g := e.game
	gameMetric := metrics.GameMetric{
		ID:        uuid.New(),
		NumCells:  g.NumCells,
		Connected: g.Connectivity().IsFull(),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("game", gameMetric.ID.String()).Int("cells", g.NumCells).Msg("starting game")
	e.observe()

	winner := game.Ongoing
	for turn := 0; winner == game.Ongoing; turn++ {
		if g.IsDone() {
			winner = g.Winner
			break
		}
		if turn >= e.maxTurns {
			log.Warn().Int("turns", turn).Msg("stopping game without a winner")
			winner = game.Draw
			break
		}

		player := g.CurrentPlayer()
		a := e.agents[player-1]

		start := time.Now()
		move := a.GetMove(g.Clone())
		think := time.Since(start)

		moveMetric := metrics.MoveMetric{
			Step:      g.Counter + 1,
			Player:    player,
			ThinkTime: think,
			Transfers: len(move),
		}
		if r, ok := a.(Reporter); ok {
			moveMetric.SearchMetric = r.LastMetric()
		}
		gameMetric.ThinkTimes[player] += think
		gameMetric.MaxThinkTime[player] = max(gameMetric.MaxThinkTime[player], think)

		// An overrun forfeits, the late move is never applied
		if e.timeLimit > 0 && think > e.timeLimit {
			moveMetric.TimedOut = true
			moveMetrics = append(moveMetrics, moveMetric)
			gameMetric.TimedOut = player
			winner = game.Opponent(player)
			log.Warn().
				Int("player", player).
				Dur("think_time", think).
				Int("round", g.Round()).
				Msg("agent exceeded time limit")
			break
		}
		moveMetrics = append(moveMetrics, moveMetric)

		g.MakeMove(move)
		e.observe()
		if !g.IsDone() && g.CurrentPlayer() == 1 {
			g.GrowCells()
		}
	}

	gameMetric.Winner = winner
	gameMetric.Rounds = g.Round()
	gameMetric.TotalMoves = g.Counter
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	log.Debug().Str("game", gameMetric.ID.String()).Int("winner", winner).Int("rounds", gameMetric.Rounds).Msg("game over")
	return winner, gameMetric, moveMetrics
}
