// Package searcher picks moves by sampling: every candidate move is played on clones of the
// game, followed by short rollouts of the built-in agents, and scored by an evaluation.
package searcher

import (
	"sync"
	"time"

	"cellwars/agent"
	"cellwars/experiments/metrics"
	"cellwars/game"
	"cellwars/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Sampler)

type Sampler struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
	rng        *rand.Rand
	last       metrics.SearchMetric
}

func WithGoroutines(goroutines int) Option {
	return func(s *Sampler) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(s *Sampler) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(s *Sampler) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

// WithCutoff sets how many half-turns a rollout plays after the candidate move.
func WithCutoff(depth int) Option {
	return func(s *Sampler) {
		if depth >= 0 {
			s.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Sampler) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Sampler) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSampler(seed uint64, options ...Option) *Sampler {
	s := &Sampler{ // Default values
		goroutines: meta.GO_ROUTINES,
		cutoff:     meta.WITH_CUTOFF,
		evaluate:   game.EvaluateAll,
		metrics:    metrics.NewDummyCollector(),
	}
	s.InitRandom(seed)
	for _, option := range options {
		option(s)
	}
	if s.episodes <= 0 && s.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return s
}

func (s *Sampler) InitRandom(seed uint64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// LastMetric returns the metrics of the latest GetMove, zero unless WithMetrics is set.
func (s *Sampler) LastMetric() metrics.SearchMetric {
	return s.last
}

func (s *Sampler) policies() []agent.Agent {
	return []agent.Agent{
		agent.NewDummy(s.rng.Uint64()),
		agent.NewSupport(s.rng.Uint64()),
		agent.NewDestroyer(),
	}
}

func (s *Sampler) GetMove(g *game.Game) []game.Transfer {
	if g.IsDone() {
		return nil
	}

	s.metrics.Start(s.goroutines, s.cutoff)
	b := newBandit(g, s.policies())
	s.metrics.SetCandidates(len(b.candidates))

	if len(b.candidates) > 1 {
		workers := make([]*worker, s.goroutines)
		for i := range workers {
			workers[i] = &worker{
				root:     g,
				player:   g.CurrentPlayer(),
				bandit:   b,
				rng:      rand.New(rand.NewSource(s.rng.Uint64())),
				policies: s.policies(),
				cutoff:   s.cutoff,
				evaluate: s.evaluate,
				metrics:  s.metrics,
			}
		}
		if s.episodes > 0 {
			s.iterate(workers)
		} else {
			s.countdown(workers)
		}
	}
	s.last = s.metrics.Complete()

	best := b.best()
	log.Debug().
		Int("player", g.CurrentPlayer()).
		Int("candidates", len(b.candidates)).
		Float64("visits", best.visits).
		Float64("mean", best.mean()).
		Msg("sampled move")
	return best.move
}

func (s *Sampler) iterate(workers []*worker) {
	task := make(chan any, s.episodes)
	for i := 0; i < s.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for _, w := range workers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				w.simulate()
				s.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (s *Sampler) countdown(workers []*worker) {
	done := make(chan any)

	var wg sync.WaitGroup
	for _, w := range workers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					w.simulate()
					s.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(s.duration)
	close(done)
	wg.Wait()
}

// worker runs episodes on its own clones of root. root is only read.
type worker struct {
	root     *game.Game
	player   int
	bandit   *bandit
	rng      *rand.Rand
	policies []agent.Agent
	cutoff   int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (w *worker) simulate() {
	c := w.bandit.selects()
	g := w.root.Clone()
	play(g, c.move)
	w.bandit.backup(c, w.rollout(g))
}

// play makes the move and grows the cells once both players have moved.
func play(g *game.Game, move []game.Transfer) {
	g.MakeMove(move)
	if !g.IsDone() && g.CurrentPlayer() == 1 {
		g.GrowCells()
	}
}

// rollout scores g for the player after random policy moves. Results of finished games
// shrink with the half-turns it took to reach them, so the same win sooner scores higher.
func (w *worker) rollout(g *game.Game) float64 {
	depth := 0
	// Rollout till game over or for cutoff number of half-turns
	for ; !g.IsDone() && depth < w.cutoff; depth++ {
		policy := w.policies[w.rng.Intn(len(w.policies))] // Random rollout policy
		play(g, policy.GetMove(g))
	}

	if g.IsDone() {
		w.metrics.AddFullPlayout()
		return w.evaluate(g, w.player) * (1 - float64(depth)/float64(w.cutoff+1))
	}
	return w.evaluate(g, w.player)
}
