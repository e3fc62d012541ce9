package engine

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestApplyMoveLeft(t *testing.T) {
	board := FromRows([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := FromRows([][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	res := ApplyMove(board, DirLeft)

	if !res.Board.Equal(expected) {
		t.Errorf("left: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("left should report the board changed")
	}
	if res.Gained != 4+8+8 {
		t.Errorf("left gained = %d, want 20", res.Gained)
	}
}

func TestApplyMoveRight(t *testing.T) {
	board := FromRows([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := FromRows([][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})

	res := ApplyMove(board, DirRight)

	if !res.Board.Equal(expected) {
		t.Errorf("right: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("right should report the board changed")
	}
}

func TestApplyMoveUp(t *testing.T) {
	board := FromRows([][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})
	expected := FromRows([][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := ApplyMove(board, DirUp)

	if !res.Board.Equal(expected) {
		t.Errorf("up: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestApplyMoveDown(t *testing.T) {
	board := FromRows([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})
	expected := FromRows([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})

	res := ApplyMove(board, DirDown)

	if !res.Board.Equal(expected) {
		t.Errorf("down: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestApplyMoveDoesNotMutateInput(t *testing.T) {
	board := FromRows([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 4},
		{0, 0, 0, 0},
	})
	before := board.Clone()

	for _, dir := range Directions {
		ApplyMove(board, dir)
	}

	if !board.Equal(before) {
		t.Errorf("ApplyMove mutated its input:\n%v", board)
	}
}

func TestApplyMoveNoChange(t *testing.T) {
	board := FromRows([][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := ApplyMove(board, DirLeft)
	if res.Changed {
		t.Error("left should not change already left-aligned tiles")
	}
	if !res.Board.Equal(board) {
		t.Errorf("unchanged move returned a different board:\n%v", res.Board)
	}
}

func TestApplyMoveUnknownDirection(t *testing.T) {
	board := FromRows([][]int{{2, 2}, {0, 0}})

	res := ApplyMove(board, Direction(42))
	if res.Changed || !res.Board.Equal(board) {
		t.Errorf("unknown direction should be a no-op, got %+v", res)
	}
}

func TestSingleMergePerTilePerMove(t *testing.T) {
	board := FromRows([][]int{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	got := ApplyMove(board, DirLeft).Board.Row(0)
	want := []int{4, 4, 0, 0}
	if !slices.Equal(got, want) {
		t.Errorf("row = %v, want %v (never [8 0 0 0])", got, want)
	}
}

// randomBoard fills an n×n board with empties and small powers of two.
func randomBoard(rng *rand.Rand, n int) Board {
	values := []int{0, 0, 2, 2, 4, 8, 16}
	rows := make([][]int, n)
	for r := range rows {
		rows[r] = make([]int, n)
		for c := range rows[r] {
			rows[r][c] = values[rng.IntN(len(values))]
		}
	}
	return FromRows(rows)
}

func TestDirectionalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := range 200 {
		b := randomBoard(rng, 2+i%4)

		right := ApplyMove(b, DirRight).Board
		mirrored := ReverseRows(ApplyMove(ReverseRows(b), DirLeft).Board)
		if !right.Equal(mirrored) {
			t.Fatalf("right != mirror(left(mirror(b))) for\n%v", b)
		}

		up := ApplyMove(b, DirUp).Board
		viaTranspose := Transpose(ApplyMove(Transpose(b), DirLeft).Board)
		if !up.Equal(viaTranspose) {
			t.Fatalf("up != transpose(left(transpose(b))) for\n%v", b)
		}

		down := ApplyMove(b, DirDown).Board
		viaTransposeRight := Transpose(ApplyMove(Transpose(b), DirRight).Board)
		if !down.Equal(viaTransposeRight) {
			t.Fatalf("down != transpose(right(transpose(b))) for\n%v", b)
		}
	}
}

func TestMoveConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for i := range 200 {
		b := randomBoard(rng, 4)
		inputs := make(map[int]bool)
		for _, row := range b.Rows() {
			for _, v := range row {
				inputs[v] = true
			}
		}

		for _, dir := range Directions {
			res := ApplyMove(b, dir)

			if Score(res.Board) != Score(b) {
				t.Fatalf("case %d %s: sum changed %d -> %d", i, dir, Score(b), Score(res.Board))
			}

			for _, row := range res.Board.Rows() {
				for _, v := range row {
					if v != 0 && !inputs[v] && !inputs[v/2] {
						t.Fatalf("case %d %s: value %d is neither an input nor a doubled input", i, dir, v)
					}
				}
			}

			if len(res.Board.EmptyCells()) < len(b.EmptyCells()) {
				t.Fatalf("case %d %s: tile count grew", i, dir)
			}
		}
	}
}

func TestSettledMoveIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))

	for range 100 {
		b := randomBoard(rng, 4)
		for _, dir := range Directions {
			settled := b
			for {
				res := ApplyMove(settled, dir)
				if !res.Changed {
					break
				}
				settled = res.Board
			}

			first := ApplyMove(settled, dir)
			second := ApplyMove(first.Board, dir)
			if first.Changed || second.Changed {
				t.Fatalf("%s: settled board reported a change", dir)
			}
			if !second.Board.Equal(settled) {
				t.Fatalf("%s: settled board changed on re-application", dir)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"DOWN", DirDown},
		{" left ", DirLeft},
		{"r", DirRight},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}
