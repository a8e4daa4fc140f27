// Package config loads server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the HTTP/websocket listener settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the deck-store connection. An empty URL runs the
// server against the built-in static deck store (sandbox deployments
// and local development without postgres).
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig carries the room-scoped game tunables.
type GameConfig struct {
	MultiZoneWidth int `mapstructure:"multi_zone_width"`
	OpeningHand    int `mapstructure:"opening_hand"`
	StartingHealth int `mapstructure:"starting_health"`
	StartingAP     int `mapstructure:"starting_ap"`
}

// Load reads configuration from the given path, falling back to
// defaults, with LEGION_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.multi_zone_width", 5)
	v.SetDefault("game.opening_hand", 6)
	v.SetDefault("game.starting_health", 20)
	v.SetDefault("game.starting_ap", 1)

	v.SetEnvPrefix("LEGION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
		// A missing file is fine; defaults and env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
