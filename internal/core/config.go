package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay; 0 means time-based

	// Board options. A zero Size falls back to the game's default;
	// FourProbability is used as given, so 0 spawns only 2s.
	Size            int     // Board side length
	FourProbability float64 // Chance that a spawned tile is a 4
	HistoryLimit    int     // Undo depth, 0 = unbounded
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:         80,
		ScreenH:         24,
		Seed:            0,
		Size:            4,
		FourProbability: 0.1,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	MaxTile  int  // Largest tile on the board
	Moves    int  // Accepted moves this run
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	CanUndo  bool // Whether undo history is available
	Won      bool // Whether a 2048 tile has been reached this run
}

// StepResult is returned by Game.Step() after each input.
type StepResult struct {
	State   GameState
	Changed bool  // Whether the board changed
	Err     error // Non-nil when recording a finished run failed
}
