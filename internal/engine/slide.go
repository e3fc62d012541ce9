package engine

// slideRow slides a row toward index 0 and merges equal neighbours.
// Each tile merges at most once: a pair produced by a merge is never merged
// again in the same pass, so 2,2,2,2 becomes 4,4,0,0.
// Returns the new row and the sum of the merged values.
func slideRow(row []int) (result []int, gained int) {
	filtered := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			filtered = append(filtered, v)
		}
	}

	result = make([]int, 0, len(row))
	for i := 0; i < len(filtered); i++ {
		if i+1 < len(filtered) && filtered[i] == filtered[i+1] {
			merged := filtered[i] * 2
			result = append(result, merged)
			gained += merged
			i++ // consumed neighbour
			continue
		}
		result = append(result, filtered[i])
	}

	for len(result) < len(row) {
		result = append(result, 0)
	}
	return result, gained
}

// slideLeft applies slideRow to every row of b.
func slideLeft(b Board) (Board, int) {
	n := b.n
	cells := make([]int, 0, n*n)
	total := 0
	for r := range n {
		row, gained := slideRow(b.cells[r*n : (r+1)*n])
		cells = append(cells, row...)
		total += gained
	}
	return fromCells(n, cells), total
}
