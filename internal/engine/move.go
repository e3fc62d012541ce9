package engine

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name (up, down, left, right).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// MoveResult is the outcome of applying a direction to a board, before any
// tile is spawned.
type MoveResult struct {
	Board   Board
	Changed bool
	Gained  int // sum of values produced by merges
}

// ApplyMove slides and merges b in the given direction.
// Every direction is reduced to a left slide:
//
//	right: reverse rows, slide, reverse rows
//	up:    transpose, slide, transpose
//	down:  transpose then reverse rows, slide, reverse rows then transpose
//
// The input board is never modified.
func ApplyMove(b Board, dir Direction) MoveResult {
	var out Board
	var gained int

	switch dir {
	case DirLeft:
		out, gained = slideLeft(b)
	case DirRight:
		out, gained = slideLeft(ReverseRows(b))
		out = ReverseRows(out)
	case DirUp:
		out, gained = slideLeft(Transpose(b))
		out = Transpose(out)
	case DirDown:
		out, gained = slideLeft(ReverseRows(Transpose(b)))
		out = Transpose(ReverseRows(out))
	default:
		return MoveResult{Board: b}
	}

	return MoveResult{Board: out, Changed: !out.Equal(b), Gained: gained}
}
