package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "T2048_"

// Load reads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default.
// A .env file in the working directory is loaded first, then T2048_*
// variables override file values. The result is validated.
func Load(customPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := finish(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Environment variables are not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := finish(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(), filepath.Join("configs", "t2048.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// finish applies the difficulty preset, expands paths and validates.
func finish(cfg *Config) error {
	if cfg.Game.Difficulty != "" {
		preset, err := ParseDifficulty(string(cfg.Game.Difficulty))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		ApplyPreset(cfg, preset)
	}
	cfg.Leaderboard.DBPath = ExpandHome(cfg.Leaderboard.DBPath)
	cfg.Server.HostKeyPath = ExpandHome(cfg.Server.HostKeyPath)
	return cfg.Validate()
}

// applyEnv overrides cfg with T2048_* variables found by lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	if err := num("SIZE", &cfg.Game.Size); err != nil {
		return err
	}
	if err := num("HISTORY_LIMIT", &cfg.Game.HistoryLimit); err != nil {
		return err
	}
	if err := num("LEADERBOARD_CAPACITY", &cfg.Leaderboard.Capacity); err != nil {
		return err
	}

	if v, ok := lookup(EnvPrefix + "SPAWN_FOUR_PROBABILITY"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %sSPAWN_FOUR_PROBABILITY: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Game.SpawnFourProbability = p
		cfg.Game.Difficulty = ""
	}
	if v, ok := lookup(EnvPrefix + "DIFFICULTY"); ok {
		cfg.Game.Difficulty = DifficultyPreset(v)
	}

	if v, ok := lookup(EnvPrefix + "IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sIDLE_TIMEOUT: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Server.IdleTimeout = d
	}

	str("DB_PATH", &cfg.Leaderboard.DBPath)
	str("SSH_ADDRESS", &cfg.Server.Address)
	str("HOST_KEY_PATH", &cfg.Server.HostKeyPath)
	str("LOG_LEVEL", &cfg.Log.Level)
	return nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "config.yaml")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
