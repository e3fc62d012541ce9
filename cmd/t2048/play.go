package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSize       int
	flagDifficulty string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play 2048",
	Long: `Start a game of 2048. Without a variant, a menu lets you pick one.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  U/Z               - Undo last move
  R                 - Restart
  P                 - Pause
  Esc/B             - Back (saves an unfinished game)
  Q/Ctrl+C          - Quit (saves an unfinished game)
  ?                 - Toggle help

Difficulty options (chance that a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 20%

Examples:
  t2048 play
  t2048 play 2048_mini
  t2048 play --size 5
  t2048 play 2048 --difficulty hard
  t2048 play 2048 --resume`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, fmt.Sprintf("Board size for the '2048' variant (%d-%d)", engine.MinSize, engine.MaxSize))
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved game for this variant")
}

func runPlay(_ *cobra.Command, args []string) {
	if err := applyPlayFlags(&appConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	cfg := appConfig.Runtime(width, height, flagSeed)

	if len(args) == 0 {
		runMenuLoop(store, logger, cfg)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("game started", "game", gameID, "resume", flagResume)
	err = tui.Run(game, tui.Options{
		Store:  store,
		Logger: logger,
		Config: cfg,
		Resume: flagResume,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// applyPlayFlags layers the play flags over the loaded config.
func applyPlayFlags(cfg *config.Config) error {
	if flagSize != 0 {
		cfg.Game.Size = flagSize
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyPreset(cfg, preset)
	}
	return cfg.Validate()
}

// runMenuLoop shows the variant picker until the user quits.
func runMenuLoop(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) {
	lastGame := ""
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, lastGame, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		lastGame = result.GameID

		// A fixed seed replays the same game; otherwise every game differs.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("game started", "game", result.GameID, "resume", result.Resume)
		model, err := tui.RunModel(game, tui.Options{
			Store:  store,
			Logger: logger,
			Config: cfg,
			Resume: result.Resume,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if model.IsQuitting() {
			return
		}
	}
}
