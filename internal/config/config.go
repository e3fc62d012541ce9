// Package config provides YAML-based configuration loading, environment
// overrides and difficulty presets for t2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete application configuration.
type Config struct {
	Game        GameConfig        `yaml:"game"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// GameConfig defines board rules.
type GameConfig struct {
	Size                 int              `yaml:"size"`
	Difficulty           DifficultyPreset `yaml:"difficulty"`
	SpawnFourProbability float64          `yaml:"spawn_four_probability"`
	HistoryLimit         int              `yaml:"history_limit"`
}

// LeaderboardConfig defines score storage.
type LeaderboardConfig struct {
	Capacity int    `yaml:"capacity"`
	DBPath   string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks value ranges.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.Size < engine.MinSize || g.Size > engine.MaxSize:
		return fmt.Errorf("%w: game.size %d out of range [%d, %d]",
			ErrInvalidConfig, g.Size, engine.MinSize, engine.MaxSize)
	case g.SpawnFourProbability < 0 || g.SpawnFourProbability > 1:
		return fmt.Errorf("%w: game.spawn_four_probability %v out of range [0, 1]",
			ErrInvalidConfig, g.SpawnFourProbability)
	case g.HistoryLimit < 0:
		return fmt.Errorf("%w: game.history_limit must not be negative", ErrInvalidConfig)
	case c.Leaderboard.Capacity < 1:
		return fmt.Errorf("%w: leaderboard.capacity must be at least 1", ErrInvalidConfig)
	case c.Server.IdleTimeout < 0:
		return fmt.Errorf("%w: server.idle_timeout must not be negative", ErrInvalidConfig)
	}
	if g.Difficulty != "" {
		if _, err := ParseDifficulty(string(g.Difficulty)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Runtime builds the per-game runtime configuration.
func (c Config) Runtime(screenW, screenH int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:         screenW,
		ScreenH:         screenH,
		Seed:            seed,
		Size:            c.Game.Size,
		FourProbability: c.Game.SpawnFourProbability,
		HistoryLimit:    c.Game.HistoryLimit,
	}
}
