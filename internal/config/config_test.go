package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v, want %+v", cfg, Default())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() is invalid: %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("game:\n  size: 5\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Game.Size != 5 {
		t.Errorf("size = %d, want 5", cfg.Game.Size)
	}
	if cfg.Leaderboard.Capacity != 5 || cfg.Server.IdleTimeout != 30*time.Minute {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestParseDifficultySetsProbability(t *testing.T) {
	cfg, err := Parse([]byte("game:\n  difficulty: hard\n  spawn_four_probability: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Game.SpawnFourProbability != 0.20 {
		t.Errorf("probability = %v, want 0.20 from the hard preset", cfg.Game.SpawnFourProbability)
	}

	custom, err := Parse([]byte("game:\n  difficulty: \"\"\n  spawn_four_probability: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if custom.Game.SpawnFourProbability != 0.5 {
		t.Errorf("custom probability = %v, want 0.5", custom.Game.SpawnFourProbability)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size too small", func(c *Config) { c.Game.Size = 1 }},
		{"size too large", func(c *Config) { c.Game.Size = 7 }},
		{"negative probability", func(c *Config) { c.Game.SpawnFourProbability = -0.1 }},
		{"probability above one", func(c *Config) { c.Game.SpawnFourProbability = 1.5 }},
		{"negative history", func(c *Config) { c.Game.HistoryLimit = -1 }},
		{"zero capacity", func(c *Config) { c.Leaderboard.Capacity = 0 }},
		{"negative idle timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }},
		{"unknown difficulty", func(c *Config) { c.Game.Difficulty = "insane" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"T2048_SIZE":                   "6",
		"T2048_SPAWN_FOUR_PROBABILITY": "0.3",
		"T2048_LEADERBOARD_CAPACITY":   "10",
		"T2048_IDLE_TIMEOUT":           "5m",
		"T2048_DB_PATH":                "/tmp/scores.db",
		"T2048_LOG_LEVEL":              "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv error: %v", err)
	}

	if cfg.Game.Size != 6 || cfg.Leaderboard.Capacity != 10 {
		t.Errorf("numeric overrides not applied: %+v", cfg)
	}
	if cfg.Game.SpawnFourProbability != 0.3 || cfg.Game.Difficulty != "" {
		t.Errorf("probability override should switch to custom difficulty: %+v", cfg.Game)
	}
	if cfg.Server.IdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v, want 5m", cfg.Server.IdleTimeout)
	}
	if cfg.Leaderboard.DBPath != "/tmp/scores.db" || cfg.Log.Level != "debug" {
		t.Errorf("string overrides not applied: %+v", cfg)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "T2048_SIZE" {
			return "four", true
		}
		return "", false
	}
	cfg := Default()
	if err := applyEnv(&cfg, lookup); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("applyEnv error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	data := "game:\n  size: 3\n  difficulty: easy\nleaderboard:\n  capacity: 3\n  db_path: ~/scores.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("T2048_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Game.Size != 3 || cfg.Game.SpawnFourProbability != 0.05 {
		t.Errorf("game = %+v", cfg.Game)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, env override missing", cfg.Log.Level)
	}
	if strings.HasPrefix(cfg.Leaderboard.DBPath, "~") {
		t.Errorf("db path %q was not expanded", cfg.Leaderboard.DBPath)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing explicit config")
	}
}

func TestParseDifficultyNames(t *testing.T) {
	for _, name := range []string{"easy", "Normal", " HARD "} {
		if _, err := ParseDifficulty(name); err != nil {
			t.Errorf("ParseDifficulty(%q) error: %v", name, err)
		}
	}
	if FourProbabilityForPreset(DifficultyEasy) >= FourProbabilityForPreset(DifficultyHard) {
		t.Error("easy should spawn fewer 4s than hard")
	}
}
