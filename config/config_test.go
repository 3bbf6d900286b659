package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cellwars/meta"

	"github.com/stretchr/testify/require"
)

// noEnvFile points Load at a file that does not exist so a local .env cannot interfere.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CELLS_SEED", "5")
		c, err := Load(noEnvFile(t))
		require.NoError(t, err)

		require.Equal(t, "destroyer", c.Agent1)
		require.Equal(t, "support", c.Agent2)
		require.Equal(t, meta.NUM_CELLS_MIN, c.NumCellsMin)
		require.Equal(t, meta.NUM_CELLS_MAX, c.NumCellsMax)
		require.Equal(t, meta.DENSITY, c.Density)
		require.Equal(t, meta.HOLE_PROBABILITY, c.HoleProbability)
		require.Equal(t, meta.MAX_ROUNDS, c.MaxRounds)
		require.Equal(t, 1, c.Sims)
		require.Zero(t, c.TimeLimit)
		require.Equal(t, uint64(5), c.Seed)
		require.False(t, c.Swap)
		require.Equal(t, meta.EPISODES, c.Sampler.Episodes)
		require.Equal(t, "series", c.Experiment)
		require.Equal(t, "all", c.Sampler.Eval)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CELLS_AGENT1", "Dummy")
		t.Setenv("CELLS_NUM_CELLS_MIN", "30")
		t.Setenv("CELLS_NUM_CELLS_MAX", "30")
		t.Setenv("CELLS_DENSITY", "0.5")
		t.Setenv("CELLS_SIMS", "10")
		t.Setenv("CELLS_TIME_LIMIT", "0.25")
		t.Setenv("CELLS_SAMPLER_DURATION", "15ms")
		t.Setenv("CELLS_SAMPLER_EVAL", "Border")
		t.Setenv("CELLS_SWAP", "true")
		t.Setenv("CELLS_AGENT2_FIRST", "1")
		c, err := Load(noEnvFile(t))
		require.NoError(t, err)

		require.Equal(t, "dummy", c.Agent1, "Agent names are case insensitive")
		require.Equal(t, 30, c.NumCellsMin)
		require.Equal(t, 30, c.NumCellsMax)
		require.Equal(t, 0.5, c.Density)
		require.Equal(t, 10, c.Sims)
		require.Equal(t, 250*time.Millisecond, c.TimeLimit)
		require.Equal(t, 15*time.Millisecond, c.Sampler.Duration)
		require.Equal(t, "border", c.Sampler.Eval)
		require.True(t, c.Swap)
		require.True(t, c.Agent2First)
	})

	t.Run("reads .env files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CELLS_AGENT2=sampler\nCELLS_MAX_ROUNDS=42\n"), 0644))
		t.Cleanup(func() {
			os.Unsetenv("CELLS_AGENT2")
			os.Unsetenv("CELLS_MAX_ROUNDS")
		})

		c, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "sampler", c.Agent2)
		require.Equal(t, 42, c.MaxRounds)
	})

	t.Run("malformed values are reported", func(t *testing.T) {
		t.Setenv("CELLS_SIMS", "many")
		_, err := Load(noEnvFile(t))
		require.ErrorContains(t, err, "CELLS_SIMS")
	})

	t.Run("out of range values are rejected", func(t *testing.T) {
		t.Setenv("CELLS_DENSITY", "1.5")
		_, err := Load(noEnvFile(t))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		Agent1: "dummy", Agent2: "support",
		NumCellsMin: 20, NumCellsMax: 50,
		Density: 0.75, HoleProbability: 0.8,
		Sims: 1, MaxRounds: 200,
		Experiment: "series",
		Sampler: SamplerConfig{Episodes: 10, Eval: "all"},
	}
	require.NoError(t, valid.Validate())

	invalid := map[string]func(c *Config){
		"density too low":        func(c *Config) { c.Density = 0.1 },
		"hole probability":       func(c *Config) { c.HoleProbability = -0.5 },
		"no rounds":              func(c *Config) { c.MaxRounds = 0 },
		"no simulations":         func(c *Config) { c.Sims = 0 },
		"negative time limit":    func(c *Config) { c.TimeLimit = -time.Second },
		"too few cells":          func(c *Config) { c.NumCellsMin = 10 },
		"empty cell range":       func(c *Config) { c.NumCellsMin = 60 },
		"missing agent":          func(c *Config) { c.Agent2 = "" },
		"sampler without budget": func(c *Config) { c.Sampler = SamplerConfig{Eval: "all"} },
		"unknown experiment":     func(c *Config) { c.Experiment = "tournament" },
		"unknown evaluation":     func(c *Config) { c.Sampler.Eval = "material" },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
