// Package experiments plays series of games between agents and records the results.
package experiments

import (
	"fmt"
	"time"

	"cellwars/agent"
	"cellwars/config"
	"cellwars/engine"
	"cellwars/experiments/metrics"
	"cellwars/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Series is a number of games between the same two agents.
type Series struct {
	Name            string
	Agents          [2]metrics.AgentConfig
	NumCellsMin     int // Board size is drawn from [NumCellsMin, NumCellsMax)
	NumCellsMax     int // Not above NumCellsMin for a fixed board size
	Density         float64
	HoleProbability float64
	Sims            int
	MaxRounds       int
	TimeLimit       time.Duration
	Seed            uint64
	Agent2First     bool // Agents[1] plays as player 1 in the first game
	Swap            bool // Alternate the starting agent after each game
	OutputDir       string
}

// FromConfig builds the series described by c. The second agent is seeded with c.Seed+1.
func FromConfig(c config.Config) Series {
	var agents [2]metrics.AgentConfig
	for i, name := range []string{c.Agent1, c.Agent2} {
		agents[i] = metrics.AgentConfig{ID: i + 1, Name: name, Seed: c.Seed + uint64(i)}
		if name == "sampler" {
			agents[i].Goroutines = c.Sampler.Goroutines
			agents[i].Duration = c.Sampler.Duration
			agents[i].Episodes = c.Sampler.Episodes
			agents[i].Cutoff = c.Sampler.Cutoff
			agents[i].Eval = c.Sampler.Eval
		}
	}

	return Series{
		Name:            "series",
		Agents:          agents,
		NumCellsMin:     c.NumCellsMin,
		NumCellsMax:     c.NumCellsMax,
		Density:         c.Density,
		HoleProbability: c.HoleProbability,
		Sims:            c.Sims,
		MaxRounds:       c.MaxRounds,
		TimeLimit:       c.TimeLimit,
		Seed:            c.Seed,
		Agent2First:     c.Agent2First,
		Swap:            c.Swap,
		OutputDir:       c.OutputDir,
	}
}

// Summary tallies a series. Arrays are indexed by agent, 1 for Agents[0] and 2 for
// Agents[1]; Wins[0] counts draws.
type Summary struct {
	Games        int
	Wins         [3]int
	Timeouts     [3]int
	ThinkTime    [3]time.Duration
	Rounds       [3]int
	MaxThinkTime [3]time.Duration
	Dir          string // Directory of the CSV records, empty when none were written
}

// WinRate returns the share of games won by agent, draws for agent 0.
func (s Summary) WinRate(agent int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[agent]) / float64(s.Games)
}

// TimePerRound returns the average think time of agent per move it made.
func (s Summary) TimePerRound(agent int) time.Duration {
	if s.Rounds[agent] == 0 {
		return 0
	}
	return s.ThinkTime[agent] / time.Duration(s.Rounds[agent])
}

// RunSeries plays the series, logs a summary and writes the records when OutputDir is set.
func RunSeries(s Series) (Summary, error) {
	summary, configs, records, err := playSeries(s, 0)
	if err != nil {
		return summary, err
	}
	summary.log(s)

	if s.OutputDir != "" {
		dir, err := writeRecords(s.OutputDir, s.Name, configs, records)
		if err != nil {
			return summary, err
		}
		summary.Dir = dir
	}
	return summary, nil
}

type records struct {
	games []metrics.GameRecord
	moves []metrics.MoveRecord
}

// playSeries plays all games of s. Game records are numbered from offset+1.
func playSeries(s Series, offset int) (Summary, []metrics.AgentConfig, records, error) {
	var (
		summary = Summary{Games: s.Sims}
		recs    records
	)
	if s.Sims < 1 {
		return summary, nil, recs, fmt.Errorf("series %s: invalid number of games %d", s.Name, s.Sims)
	}

	agents := [3]agent.Agent{} // By agent index
	for i, config := range s.Agents {
		a, err := createAgent(config)
		if err != nil {
			return summary, nil, recs, fmt.Errorf("series %s: %w", s.Name, err)
		}
		if seeder, ok := a.(agent.Seeder); ok {
			seeder.InitRandom(config.Seed)
		}
		agents[i+1] = a
	}

	nextNumCells := numCells(s)
	g := game.New(s.Seed, s.MaxRounds)
	order := [3]int{game.Draw, 1, 2} // Agent index by player
	if s.Agent2First {
		order[1], order[2] = order[2], order[1]
	}

	cells := 0
	for gi := 0; gi < s.Sims; gi++ {
		// Swapped pairs of games are played on boards of the same size
		if !s.Swap || gi%2 == 0 {
			cells = nextNumCells()
		}
		if err := g.NewGame(cells, s.Density, s.HoleProbability); err != nil {
			return summary, nil, recs, fmt.Errorf("series %s game %d: %w", s.Name, gi+1, err)
		}

		e := engine.NewLocalEngine(g, agents[order[1]], agents[order[2]], engine.WithTimeLimit(s.TimeLimit))
		winner, gameMetric, moveMetrics := e.Run()

		summary.Wins[order[winner]]++
		if gameMetric.TimedOut != 0 {
			summary.Timeouts[order[gameMetric.TimedOut]]++
		}
		for player := 1; player <= 2; player++ {
			a := order[player]
			summary.ThinkTime[a] += gameMetric.ThinkTimes[player]
			summary.Rounds[a] += g.PlayerRound(player)
			summary.MaxThinkTime[a] = max(summary.MaxThinkTime[a], gameMetric.MaxThinkTime[player])
		}

		id := func(player int) int {
			if player == game.Draw {
				return 0
			}
			return s.Agents[order[player]-1].ID
		}
		recs.games = append(recs.games, metrics.GameRecord{
			Game:          offset + gi + 1,
			Agent1:        s.Agents[0].ID,
			Agent2:        s.Agents[1].ID,
			StartingAgent: id(1),
			WinnerAgent:   id(winner),
			GameMetric:    gameMetric,
		})
		for _, mm := range moveMetrics {
			recs.moves = append(recs.moves, metrics.MoveRecord{
				Game:       gameMetric.ID,
				Agent:      id(mm.Player),
				MoveMetric: mm,
			})
		}

		logGame(s, gi, order, winner, gameMetric)

		if s.Swap {
			order[1], order[2] = order[2], order[1]
		}
	}

	return summary, s.Agents[:], recs, nil
}

// numCells returns a source of board sizes, drawn with its own generator so the boards of
// a series only depend on its seed.
func numCells(s Series) func() int {
	if s.NumCellsMax <= s.NumCellsMin {
		return func() int { return s.NumCellsMin }
	}
	rng := rand.New(rand.NewSource(s.Seed))
	return func() int {
		return s.NumCellsMin + rng.Intn(s.NumCellsMax-s.NumCellsMin)
	}
}

func names(s Series) [3]string {
	n := [3]string{"draw", s.Agents[0].Name, s.Agents[1].Name}
	if n[1] == n[2] {
		n[1] += "1"
		n[2] += "2"
	}
	return n
}

func logGame(s Series, gi int, order [3]int, winner int, m metrics.GameMetric) {
	n := names(s)
	event := log.Debug().
		Int("game", gi+1).
		Str("id", m.ID.String()).
		Int("cells", m.NumCells).
		Int("rounds", m.Rounds)

	switch {
	case m.TimedOut != 0:
		event.Msgf("agent %s exceeded time at round %d", n[order[m.TimedOut]], m.Rounds)
	case winner == game.Draw:
		event.Msgf("draw in %d rounds", m.Rounds)
	default:
		event.Msgf("agent %s won in %d rounds", n[order[winner]], m.Rounds)
	}
}

func (s Summary) log(series Series) {
	n := names(series)
	log.Info().Msgf("results from %d games", s.Games)
	for a := 1; a <= 2; a++ {
		log.Info().
			Str("agent", n[a]).
			Int("wins", s.Wins[a]).
			Int("timeouts", s.Timeouts[a]).
			Dur("per_round", s.TimePerRound(a)).
			Dur("max_think_time", s.MaxThinkTime[a]).
			Msgf("%s won %d games (%.0f%%), had %d timeouts, with average %v per round, max %v",
				n[a], s.Wins[a], s.WinRate(a)*100, s.Timeouts[a], s.TimePerRound(a), s.MaxThinkTime[a])
	}
	log.Info().Int("draws", s.Wins[0]).Msgf("draw %dx (%.0f%%)", s.Wins[0], s.WinRate(0)*100)
}

// writeRecords stores the agent configs and the records under dir/name and returns the
// directory written to.
func writeRecords(dir, name string, configs []metrics.AgentConfig, recs records) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(recs.games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Int("games", len(recs.games)).Msg("stored game records")

	err = writer.WriteMoveRecords(recs.moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Int("moves", len(recs.moves)).Msg("stored move records")

	return writer.Dir(), nil
}
