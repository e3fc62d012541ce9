package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the state of a game.
type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
)

// FinalScore is reported to a ScoreSink when a game ends.
type FinalScore struct {
	RunID   string
	Size    int
	Score   int
	MaxTile int
	Moves   int
}

// ScoreSink receives final scores. It is called once per transition into
// StateGameOver.
type ScoreSink interface {
	RecordScore(FinalScore) error
}

// Config holds the engine parameters.
type Config struct {
	Size            int     // board dimension, 0 means DefaultSize
	FourProbability float64 // chance a spawned tile is a 4
	HistoryLimit    int     // max undo depth, 0 means unbounded
}

// DefaultConfig returns the classic 4x4 configuration.
func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		FourProbability: DefaultFourProbability,
	}
}

// Outcome describes what a call to Move did.
type Outcome struct {
	Changed  bool
	Gained   int
	GameOver bool
}

// Game is the 2048 state machine. It is not safe for concurrent use.
type Game struct {
	cfg     Config
	spawner *Spawner
	sink    ScoreSink

	runID    string
	board    Board
	history  []Board
	state    State
	score    int
	moves    int
	lastGain int
}

// NewGame starts a game: an empty board with two spawned tiles.
// sink may be nil.
func NewGame(cfg Config, rng Rand, sink ScoreSink) *Game {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	checkSize(cfg.Size)

	g := &Game{
		cfg:     cfg,
		spawner: NewSpawner(rng, cfg.FourProbability),
		sink:    sink,
	}
	g.Restart()
	return g
}

// Restart discards the current run and starts a new one.
func (g *Game) Restart() {
	g.runID = newRunID()
	g.history = nil
	g.state = StatePlaying
	g.moves = 0
	g.lastGain = 0

	b, _ := g.spawner.Spawn(NewBoard(g.cfg.Size))
	b, _ = g.spawner.Spawn(b)
	g.adopt(b)
}

// Move applies dir. If the board changes, the previous board is pushed onto
// history and a new tile is spawned. Moves on a finished game and moves that
// change nothing are no-ops.
//
// A non-nil error comes only from the score sink; the move has been applied.
func (g *Game) Move(dir Direction) (Outcome, error) {
	if g.state == StateGameOver {
		return Outcome{GameOver: true}, nil
	}

	res := ApplyMove(g.board, dir)
	if !res.Changed {
		return Outcome{}, nil
	}

	g.pushHistory(g.board)
	next, _ := g.spawner.Spawn(res.Board)
	g.adopt(next)
	g.moves++
	g.lastGain = res.Gained

	out := Outcome{Changed: true, Gained: res.Gained}
	if IsGameOver(g.board) {
		g.state = StateGameOver
		out.GameOver = true
		return out, g.report()
	}
	return out, nil
}

// Undo restores the previous board and returns to StatePlaying.
// Returns false when there is nothing to undo.
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}

	last := len(g.history) - 1
	prev := g.history[last]
	g.history[last] = Board{}
	g.history = g.history[:last]

	g.adopt(prev)
	g.state = StatePlaying
	if g.moves > 0 {
		g.moves--
	}
	g.lastGain = 0
	return true
}

func newRunID() string {
	return uuid.NewString()
}

func (g *Game) pushHistory(b Board) {
	g.history = append(g.history, b.Clone())
	if g.cfg.HistoryLimit > 0 && len(g.history) > g.cfg.HistoryLimit {
		drop := len(g.history) - g.cfg.HistoryLimit
		g.history = append([]Board(nil), g.history[drop:]...)
	}
}

// adopt replaces the live board and recomputes the derived score.
func (g *Game) adopt(b Board) {
	g.board = b
	g.score = Score(b)
}

func (g *Game) report() error {
	if g.sink == nil {
		return nil
	}
	err := g.sink.RecordScore(FinalScore{
		RunID:   g.runID,
		Size:    g.cfg.Size,
		Score:   g.score,
		MaxTile: MaxTile(g.board),
		Moves:   g.moves,
	})
	if err != nil {
		return fmt.Errorf("engine: record score: %w", err)
	}
	return nil
}

// Board returns the current board.
func (g *Game) Board() Board { return g.board }

// Score returns the sum of the current board.
func (g *Game) Score() int { return g.score }

// State returns the current state.
func (g *Game) State() State { return g.state }

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool { return g.state == StateGameOver }

// Size returns the board dimension.
func (g *Game) Size() int { return g.cfg.Size }

// Moves returns the number of accepted moves in this run, net of undos.
func (g *Game) Moves() int { return g.moves }

// LastGain returns the merge points produced by the last accepted move.
func (g *Game) LastGain() int { return g.lastGain }

// HistoryLen returns the undo depth.
func (g *Game) HistoryLen() int { return len(g.history) }

// CanUndo reports whether Undo would do anything.
func (g *Game) CanUndo() bool { return len(g.history) > 0 }

// RunID identifies the current run. It changes on Restart.
func (g *Game) RunID() string { return g.runID }
