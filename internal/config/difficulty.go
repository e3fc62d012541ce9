package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
// Presets only change how often a spawned tile is a 4.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a name into a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// FourProbabilityForPreset returns the spawn-four probability for a preset.
func FourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.20
	default:
		return 0.10
	}
}

// ApplyPreset sets the difficulty and its spawn-four probability.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Game.Difficulty = preset
	cfg.Game.SpawnFourProbability = FourProbabilityForPreset(preset)
}
