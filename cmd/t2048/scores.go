package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard for a variant, or a summary of every variant.

Only the best runs are kept; the capacity comes from leaderboard.capacity
in the config (default 5).

Examples:
  t2048 scores
  t2048 scores 2048
  t2048 scores 2048_mini --clear
  t2048 scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the variant")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard in a table")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
			os.Exit(1)
		}
	}
	if flagClear && gameID == "" {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a variant")
		os.Exit(1)
	}

	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)

	case flagInteractive:
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case gameID == "":
		printSummary(store)

	default:
		printLeaderboard(store, gameID)
	}
}

// printLeaderboard prints the ranked entries for one variant.
func printLeaderboard(store *storage.Store, gameID string) {
	info, _ := registry.Info(gameID)
	entries, err := store.TopScores(gameID, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %s\n", "Rank", "Score", "Best tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %s\n", "----", "-----", "---------", "-----", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-8d  %-9d  %-6d  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printSummary prints one line of statistics per variant.
func printSummary(store *storage.Store) {
	stats, err := store.AllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("Leaderboards:")
	fmt.Println()
	fmt.Printf("  %-12s  %-7s  %-8s  %-9s  %s\n", "Variant", "Entries", "Best", "Best tile", "Last played")
	fmt.Printf("  %-12s  %-7s  %-8s  %-9s  %s\n", "-------", "-------", "----", "---------", "-----------")

	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-12s  %-7d  %-8s  %-9s  %s\n", g.ID, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-12s  %-7d  %-8d  %-9d  %s\n",
			g.ID, s.Entries, s.HighScore, s.BestTile, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
