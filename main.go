package main

import (
	"os"
	"time"

	"cellwars/config"
	"cellwars/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	c, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if c.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	s := experiments.FromConfig(c)
	switch c.Experiment {
	case "scaling":
		_, err = experiments.RunSamplerScaling(s)
	default:
		_, err = experiments.RunSeries(s)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
