// Package engine implements the rules of the 2048 sliding-tile puzzle.
// It has no UI or storage dependencies: randomness and score reporting are
// injected so that every operation is deterministic under test.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	DefaultSize = 4
	MinSize     = 2
	// MaxSize keeps the largest reachable tile (2^(N*N+1)) within int64.
	MaxSize = 6
)

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// Board is an immutable N×N grid of tile values. Zero means empty.
// Every operation that changes a cell returns a new Board, so boards can be
// shared freely without aliasing.
type Board struct {
	n     int
	cells []int // row-major
}

// NewBoard returns an empty n×n board.
// Panics if n is outside [MinSize, MaxSize].
func NewBoard(n int) Board {
	checkSize(n)
	return Board{n: n, cells: make([]int, n*n)}
}

// FromRows builds a board from a square matrix. The input is copied.
// Panics if rows is not square or its size is out of range.
func FromRows(rows [][]int) Board {
	n := len(rows)
	checkSize(n)
	b := Board{n: n, cells: make([]int, n*n)}
	for r, row := range rows {
		if len(row) != n {
			panic(fmt.Sprintf("engine: row %d has %d cells, want %d", r, len(row), n))
		}
		copy(b.cells[r*n:(r+1)*n], row)
	}
	return b
}

func checkSize(n int) {
	if n < MinSize || n > MaxSize {
		panic(fmt.Sprintf("engine: board size %d out of range [%d, %d]", n, MinSize, MaxSize))
	}
}

// Size returns N.
func (b Board) Size() int {
	return b.n
}

// At returns the value at (row, col).
func (b Board) At(row, col int) int {
	b.checkCell(row, col)
	return b.cells[row*b.n+col]
}

// With returns a copy of the board with (row, col) set to v.
func (b Board) With(row, col, v int) Board {
	b.checkCell(row, col)
	out := b.Clone()
	out.cells[row*b.n+col] = v
	return out
}

func (b Board) checkCell(row, col int) {
	if row < 0 || row >= b.n || col < 0 || col >= b.n {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d board", row, col, b.n, b.n))
	}
}

// Row returns a copy of row r.
func (b Board) Row(r int) []int {
	b.checkCell(r, 0)
	row := make([]int, b.n)
	copy(row, b.cells[r*b.n:(r+1)*b.n])
	return row
}

// Rows returns a deep copy of the board as a matrix.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.n)
	for r := range b.n {
		rows[r] = b.Row(r)
	}
	return rows
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return Board{n: b.n, cells: cells}
}

// Equal reports whether both boards have the same size and cells.
func (b Board) Equal(other Board) bool {
	if b.n != other.n {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// EmptyCells returns the empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Cell{Row: i / b.n, Col: i % b.n})
		}
	}
	return cells
}

// String renders the board as space-separated rows.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b.n {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.n {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(b.cells[r*b.n+c]))
		}
	}
	return sb.String()
}

// fromCells wraps cells without copying. Callers must own cells.
func fromCells(n int, cells []int) Board {
	return Board{n: n, cells: cells}
}
