// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048 list               - List available board variants
//	t2048 play [variant]     - Play a variant, or pick one from the menu
//	t2048 scores [variant]   - Show the leaderboard
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.t2048/scores.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "github.com/vovakirdan/tui-2048/internal/games/t2048" // registers variants

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// appConfig is loaded before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board in one of four directions; equal tiles merge into their
sum. A new tile appears after every move. The game ends when no move can
change the board.

Available commands:
  list     - Show all board variants
  play     - Play a variant (menu when none is given)
  scores   - View the leaderboard
  serve    - Start SSH server for remote play

Examples:
  t2048 play
  t2048 play 2048_large
  t2048 play --size 5 --difficulty hard
  t2048 scores 2048
  t2048 serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Leaderboard.DBPath = config.ExpandHome(flagDBPath)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	appConfig = cfg
	return nil
}

// newLogger builds a logger at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(appConfig.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.t2048/t2048.log so log lines do not tear the
// alternate screen. It falls back to discarding output.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "t2048"), func() {}
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "t2048"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, "t2048"), func() {}
	}
	return newLogger(f, "t2048"), func() { f.Close() }
}

// openStore opens the leaderboard database; on failure it warns and
// returns nil so play can continue without scores.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Leaderboard.DBPath, appConfig.Leaderboard.Capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
