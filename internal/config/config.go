// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the simulator server.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures the optional PostgreSQL connection.
// An empty URL disables run persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// SimulationConfig carries server-side defaults applied to incoming
// run requests when the client omits them.
type SimulationConfig struct {
	Iterations       int `mapstructure:"iterations"`
	Turns            int `mapstructure:"turns"`
	HandSize         int `mapstructure:"hand_size"`
	ProgressInterval int `mapstructure:"progress_interval"`
	ExampleGames     int `mapstructure:"example_games"`
}

// Load reads configuration from the given path. Environment variables
// prefixed with MANASIM_ override file values (MANASIM_SERVER_ADDRESS,
// MANASIM_DATABASE_URL, and so on). A missing file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8089")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.url", "")
	v.SetDefault("simulation.iterations", 10000)
	v.SetDefault("simulation.turns", 10)
	v.SetDefault("simulation.hand_size", 7)
	v.SetDefault("simulation.progress_interval", 250)
	v.SetDefault("simulation.example_games", 3)

	v.SetEnvPrefix("MANASIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format)
	}
	if c.Simulation.Iterations <= 0 {
		return fmt.Errorf("simulation.iterations must be positive")
	}
	if c.Simulation.Turns <= 0 {
		return fmt.Errorf("simulation.turns must be positive")
	}
	return nil
}

func isNotExist(err error) bool {
	return strings.Contains(err.Error(), "no such file")
}
