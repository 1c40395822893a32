package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

// Config holds all configuration for the simulator
type Config struct {
	Redis      RedisConfig
	Simulation SimulationConfig
}

// RedisConfig holds snapshot storage configuration
type RedisConfig struct {
	URL         string        `env:"REDIS_URL"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`
}

// SimulationConfig holds defaults for simulation runs
type SimulationConfig struct {
	Turns    int    `env:"SIM_TURNS" envDefault:"10"`
	Scenario string `env:"SIM_SCENARIO"`
}

// Enabled reports whether snapshots go to Redis instead of memory
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, engineerr.WrapWithCode(err, engineerr.CodeConfiguration, "parse env")
	}

	if cfg.Simulation.Turns < 0 {
		return nil, engineerr.Configurationf("SIM_TURNS must not be negative, got %d", cfg.Simulation.Turns)
	}
	if cfg.Redis.SnapshotTTL < 0 {
		return nil, engineerr.Configurationf("SNAPSHOT_TTL must not be negative, got %s", cfg.Redis.SnapshotTTL)
	}

	return cfg, nil
}
