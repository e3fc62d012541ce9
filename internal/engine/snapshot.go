package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned by Restore for malformed snapshots.
var ErrInvalidSnapshot = errors.New("engine: invalid snapshot")

// Snapshot captures a game for save and resume.
type Snapshot struct {
	RunID   string    `json:"run_id"`
	Size    int       `json:"size"`
	Board   [][]int   `json:"board"`
	History [][][]int `json:"history,omitempty"`
	Moves   int       `json:"moves"`
}

// Snapshot returns a deep copy of the game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		RunID: g.runID,
		Size:  g.cfg.Size,
		Board: g.board.Rows(),
		Moves: g.moves,
	}
	for _, h := range g.history {
		s.History = append(s.History, h.Rows())
	}
	return s
}

// Restore replaces the game state with s. The state is derived from the
// restored board. On error the game is left untouched.
func (g *Game) Restore(s Snapshot) error {
	if s.Size < MinSize || s.Size > MaxSize {
		return fmt.Errorf("%w: size %d", ErrInvalidSnapshot, s.Size)
	}
	if s.Moves < 0 {
		return fmt.Errorf("%w: negative move count", ErrInvalidSnapshot)
	}
	if err := validateRows(s.Board, s.Size); err != nil {
		return fmt.Errorf("%w: board: %v", ErrInvalidSnapshot, err)
	}
	for i, h := range s.History {
		if err := validateRows(h, s.Size); err != nil {
			return fmt.Errorf("%w: history[%d]: %v", ErrInvalidSnapshot, i, err)
		}
	}

	history := make([]Board, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, FromRows(h))
	}

	g.cfg.Size = s.Size
	g.runID = s.RunID
	if g.runID == "" {
		g.runID = newRunID()
	}
	g.history = history
	g.moves = s.Moves
	g.lastGain = 0
	g.adopt(FromRows(s.Board))

	g.state = StatePlaying
	if IsGameOver(g.board) {
		g.state = StateGameOver
	}
	return nil
}

func validateRows(rows [][]int, n int) error {
	if len(rows) != n {
		return fmt.Errorf("%d rows, want %d", len(rows), n)
	}
	for r, row := range rows {
		if len(row) != n {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), n)
		}
		for c, v := range row {
			if !isTileValue(v) {
				return fmt.Errorf("cell (%d,%d) = %d is not a tile value", r, c, v)
			}
		}
	}
	return nil
}

// isTileValue reports whether v is empty or a power of two >= 2.
func isTileValue(v int) bool {
	return v == 0 || (v >= 2 && v&(v-1) == 0)
}
