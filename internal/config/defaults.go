package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It matches defaults/t2048.yaml and backs up a broken embed.
func Default() Config {
	return Config{
		Game: GameConfig{
			Size:                 4,
			Difficulty:           DifficultyNormal,
			SpawnFourProbability: 0.1,
		},
		Leaderboard: LeaderboardConfig{
			Capacity: 5,
			DBPath:   "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: "",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
