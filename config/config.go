// Package config loads the settings of a series of games from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"cellwars/game"
	"cellwars/generator"
	"cellwars/meta"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrInvalidConfig = errors.New("invalid config")

// SamplerConfig tunes agents named "sampler".
type SamplerConfig struct {
	Goroutines int
	Episodes   int
	Duration   time.Duration
	Cutoff     int
	Eval       string // One of game.Evaluations
}

// Config holds the settings of a series of games.
type Config struct {
	Agent1          string        // Name of the first agent
	Agent2          string        // Name of the second agent
	NumCellsMin     int           // Board size is drawn from [NumCellsMin, NumCellsMax)
	NumCellsMax     int           // Equal to NumCellsMin for a fixed board size
	Density         float64       // Density of cells on the grid
	HoleProbability float64       // Probability that distant cells won't be connected
	Sims            int           // Number of games
	MaxRounds       int           // Rounds before a draw
	TimeLimit       time.Duration // Per-turn thinking limit, 0 for none
	Seed            uint64        // Seed of the boards and agents
	Agent2First     bool          // Agent2 plays as player 1 in the first game
	Swap            bool          // Alternate the starting agent after each game
	Verbose         bool          // Log every game
	OutputDir       string        // Directory of the CSV records, empty to skip them
	Experiment      string        // "series" or "scaling"
	Sampler         SamplerConfig
}

// Load reads the given .env files, or .env in the working directory, then the environment.
// Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg(".env file not found or could not be loaded")
	}

	var (
		c   Config
		err error
	)
	c.Agent1 = strings.ToLower(getEnvWithDefault("CELLS_AGENT1", "destroyer"))
	c.Agent2 = strings.ToLower(getEnvWithDefault("CELLS_AGENT2", "support"))
	c.OutputDir = getEnvWithDefault("CELLS_OUTPUT_DIR", "")
	c.Experiment = strings.ToLower(getEnvWithDefault("CELLS_EXPERIMENT", "series"))
	c.Sampler.Eval = strings.ToLower(getEnvWithDefault("CELLS_SAMPLER_EVAL", "all"))

	ints := []struct {
		key   string
		value *int
		def   int
	}{
		{"CELLS_NUM_CELLS_MIN", &c.NumCellsMin, meta.NUM_CELLS_MIN},
		{"CELLS_NUM_CELLS_MAX", &c.NumCellsMax, meta.NUM_CELLS_MAX},
		{"CELLS_SIMS", &c.Sims, 1},
		{"CELLS_MAX_ROUNDS", &c.MaxRounds, meta.MAX_ROUNDS},
		{"CELLS_SAMPLER_GOROUTINES", &c.Sampler.Goroutines, meta.GO_ROUTINES},
		{"CELLS_SAMPLER_EPISODES", &c.Sampler.Episodes, meta.EPISODES},
		{"CELLS_SAMPLER_CUTOFF", &c.Sampler.Cutoff, meta.WITH_CUTOFF},
	}
	for _, i := range ints {
		if *i.value, err = getEnvAsInt(i.key, i.def); err != nil {
			return Config{}, err
		}
	}

	if c.Density, err = getEnvAsFloat("CELLS_DENSITY", meta.DENSITY); err != nil {
		return Config{}, err
	}
	if c.HoleProbability, err = getEnvAsFloat("CELLS_HOLE_PROBABILITY", meta.HOLE_PROBABILITY); err != nil {
		return Config{}, err
	}
	if c.TimeLimit, err = getEnvAsDuration("CELLS_TIME_LIMIT", meta.TIME_LIMIT); err != nil {
		return Config{}, err
	}
	if c.Sampler.Duration, err = getEnvAsDuration("CELLS_SAMPLER_DURATION", 0); err != nil {
		return Config{}, err
	}
	if c.Seed, err = getEnvAsUint("CELLS_SEED", uint64(time.Now().UnixNano())); err != nil {
		return Config{}, err
	}

	bools := []struct {
		key   string
		value *bool
	}{
		{"CELLS_AGENT2_FIRST", &c.Agent2First},
		{"CELLS_SWAP", &c.Swap},
		{"CELLS_VERBOSE", &c.Verbose},
	}
	for _, b := range bools {
		if *b.value, err = getEnvAsBool(b.key); err != nil {
			return Config{}, err
		}
	}

	return c, c.Validate()
}

// Validate checks the ranges the generator and the series runner accept.
func (c Config) Validate() error {
	switch {
	case c.Density < generator.MinDensity || c.Density > generator.MaxDensity:
		return errors.Wrapf(ErrInvalidConfig, "density %v should be from [%v, %v]", c.Density, generator.MinDensity, generator.MaxDensity)
	case c.HoleProbability < 0 || c.HoleProbability > 1:
		return errors.Wrapf(ErrInvalidConfig, "hole probability %v should be from [0, 1]", c.HoleProbability)
	case c.MaxRounds <= 0:
		return errors.Wrapf(ErrInvalidConfig, "invalid number of rounds %d", c.MaxRounds)
	case c.Sims < 1:
		return errors.Wrapf(ErrInvalidConfig, "invalid number of simulations %d", c.Sims)
	case c.TimeLimit < 0:
		return errors.Wrapf(ErrInvalidConfig, "invalid time limit %v", c.TimeLimit)
	case c.NumCellsMin < generator.MinCells:
		return errors.Wrapf(ErrInvalidConfig, "at least %d cells are needed, got %d", generator.MinCells, c.NumCellsMin)
	case c.NumCellsMax < c.NumCellsMin:
		return errors.Wrapf(ErrInvalidConfig, "num cells range [%d, %d) is empty", c.NumCellsMin, c.NumCellsMax)
	case c.Agent1 == "" || c.Agent2 == "":
		return errors.Wrap(ErrInvalidConfig, "both agents have to be specified")
	case c.Experiment != "series" && c.Experiment != "scaling":
		return errors.Wrapf(ErrInvalidConfig, "unknown experiment %q", c.Experiment)
	case game.Evaluations[c.Sampler.Eval] == nil:
		return errors.Wrapf(ErrInvalidConfig, "unknown sampler evaluation %q", c.Sampler.Eval)
	case c.Sampler.Episodes <= 0 && c.Sampler.Duration <= 0:
		return errors.Wrap(ErrInvalidConfig, "sampler needs episodes or a duration")
	}
	return nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable %s must be an integer", key)
	}
	return value, nil
}

func getEnvAsUint(key string, defaultValue uint64) (uint64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable %s must be a non negative integer", key)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable %s must be a number", key)
	}
	return value, nil
}

// getEnvAsDuration accepts Go durations ("250ms") or plain seconds ("0.5").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	if seconds, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, errors.Wrapf(err, "environment variable %s must be a duration", key)
	}
	return value, nil
}

func getEnvAsBool(key string) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, errors.Wrapf(err, "environment variable %s must be a boolean", key)
	}
	return value, nil
}
