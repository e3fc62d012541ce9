package engine

// Score returns the sum of all cells.
func Score(b Board) int {
	total := 0
	for _, v := range b.cells {
		total += v
	}
	return total
}

// MaxTile returns the largest tile on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// HasEmptyCell reports whether at least one cell is empty.
func HasEmptyCell(b Board) bool {
	for _, v := range b.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge reports whether two horizontally or vertically adjacent
// cells hold the same non-zero value.
func HasPossibleMerge(b Board) bool {
	n := b.n
	for r := range n {
		for c := range n {
			val := b.cells[r*n+c]
			if val == 0 {
				continue
			}
			if c < n-1 && b.cells[r*n+c+1] == val {
				return true
			}
			if r < n-1 && b.cells[(r+1)*n+c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove reports whether any direction would change the board.
// Emptiness is checked first: any empty cell means a move remains.
func CanMove(b Board) bool {
	return HasEmptyCell(b) || HasPossibleMerge(b)
}

// IsGameOver reports whether the board is full with no equal neighbours.
func IsGameOver(b Board) bool {
	return !CanMove(b)
}
