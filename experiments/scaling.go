package experiments

import (
	"fmt"
	"time"

	"cellwars/experiments/metrics"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 10 * time.Millisecond
)

var scalingConfigs = []metrics.AgentConfig{
	{ID: 2, Name: "sampler", Goroutines: 1, Duration: TimeBudget}, // Baseline equivalent
	{ID: 3, Name: "sampler", Goroutines: 2, Duration: TimeBudget},
	{ID: 4, Name: "sampler", Goroutines: 4, Duration: TimeBudget},
	{ID: 5, Name: "sampler", Goroutines: 8, Duration: TimeBudget},
	{ID: 6, Name: "sampler", Goroutines: 16, Duration: TimeBudget},
}

// RunSamplerScaling pairs samplers with more and more goroutines against a sequential
// sampler with the same time budget. Boards and limits come from template; its agents are
// ignored and every match up plays with swapped starts.
func RunSamplerScaling(template Series) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 1, Name: "sampler", Seed: template.Seed, Goroutines: 1, Duration: TimeBudget}
	if template.Sims < 1 {
		template.Sims = NumGames
	}
	template.Swap = true

	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, config := range scalingConfigs {
		config.Seed = template.Seed + uint64(i) + 1
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment("sampler_scaling", template, configs, matchUps)
}

// runExperiment plays a series per match up on the boards of template.
func runExperiment(name string, template Series, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) ([]Summary, error) {
	summaries := make([]Summary, 0, len(matchUps))
	all := records{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		s := template
		s.Name = fmt.Sprintf("%s_%d", name, mi+1)
		s.Agents = matchUp
		summary, _, recs, err := playSeries(s, len(all.games))
		if err != nil {
			return summaries, err
		}
		summary.log(s)
		summaries = append(summaries, summary)
		all.games = append(all.games, recs.games...)
		all.moves = append(all.moves, recs.moves...)

		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	if template.OutputDir != "" {
		dir, err := writeRecords(template.OutputDir, name, configs, all)
		if err != nil {
			return summaries, err
		}
		for i := range summaries {
			summaries[i].Dir = dir
		}
	}
	return summaries, nil
}
