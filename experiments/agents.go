package experiments

import (
	"fmt"
	"strings"

	"cellwars/agent"
	"cellwars/experiments/metrics"
	"cellwars/game"
	"cellwars/searcher"
)

// AgentNames lists the agents a series can be played with.
var AgentNames = []string{"dummy", "support", "destroyer", "sampler"}

// createAgent builds the agent named by config and seeds it.
func createAgent(config metrics.AgentConfig) (agent.Agent, error) {
	var a agent.Agent
	switch strings.ToLower(config.Name) {
	case "dummy":
		a = agent.NewDummy(config.Seed)
	case "support":
		a = agent.NewSupport(config.Seed)
	case "destroyer":
		a = agent.NewDestroyer()
	case "sampler":
		if _, ok := game.Evaluations[config.Eval]; config.Eval != "" && !ok {
			return nil, fmt.Errorf("unknown evaluation %q", config.Eval)
		}
		a = createSampler(config)
	default:
		return nil, fmt.Errorf("unknown agent %q, choose from %v", config.Name, AgentNames)
	}
	return a, nil
}

func createSampler(config metrics.AgentConfig) *searcher.Sampler {
	options := []searcher.Option{}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Eval != "" {
		options = append(options, searcher.WithEvaluationFn(game.Evaluations[config.Eval]))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewSampler(config.Seed, options...)
}
