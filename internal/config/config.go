package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all stability configuration, loaded from the environment.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Engine    EngineConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Bind string `env:"STABILITY_BIND" envDefault:"127.0.0.1"`
	Port int    `env:"STABILITY_PORT" envDefault:"38800"`
}

type DatabaseConfig struct {
	Path string `env:"STABILITY_DB"` // resolved at runtime via store.DefaultDBPath()
}

type EngineConfig struct {
	DecayPerDay        float64 `env:"STABILITY_DECAY_PER_DAY" envDefault:"15"`
	DayStartHour       int     `env:"STABILITY_DAY_START_HOUR" envDefault:"0"`
	Timezone           string  `env:"STABILITY_TZ"` // empty = system local
	UsagePenaltyPerMin float64 `env:"STABILITY_USAGE_PENALTY_PER_MIN" envDefault:"1"`
	HistoryDays        int     `env:"STABILITY_HISTORY_DAYS" envDefault:"7"`
}

type TelemetryConfig struct {
	SnapshotPath string        `env:"STABILITY_USAGE_SNAPSHOT"` // resolved at runtime via telemetry.DefaultSnapshotPath()
	PollInterval time.Duration `env:"STABILITY_USAGE_POLL" envDefault:"5m"`
}

// Load reads configuration from environment variables, filling defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with the stock defaults, for tests and for
// callers that don't want environment overrides.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38800,
		},
		Engine: EngineConfig{
			DecayPerDay:        15,
			DayStartHour:       0,
			UsagePenaltyPerMin: 1,
			HistoryDays:        7,
		},
		Telemetry: TelemetryConfig{
			PollInterval: 5 * time.Minute,
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// Location resolves the configured time zone, falling back to the system
// local zone when unset or unknown.
func (c *Config) Location() *time.Location {
	if c.Engine.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
