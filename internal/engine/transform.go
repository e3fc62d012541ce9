package engine

// Transpose returns a new board where cell (r,c) becomes (c,r).
func Transpose(b Board) Board {
	n := b.n
	cells := make([]int, n*n)
	for r := range n {
		for c := range n {
			cells[c*n+r] = b.cells[r*n+c]
		}
	}
	return fromCells(n, cells)
}

// ReverseRows returns a new board with every row reversed.
func ReverseRows(b Board) Board {
	n := b.n
	cells := make([]int, 0, n*n)
	for r := range n {
		cells = append(cells, reverseRow(b.cells[r*n:(r+1)*n])...)
	}
	return fromCells(n, cells)
}

// reverseRow returns a reversed copy of row.
func reverseRow(row []int) []int {
	out := make([]int, len(row))
	for i, v := range row {
		out[len(row)-1-i] = v
	}
	return out
}
