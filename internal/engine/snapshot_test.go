package engine

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	g := NewGame(DefaultConfig(), rand.New(rand.NewPCG(21, 21)), nil)
	for i := range 10 {
		g.Move(Directions[i%len(Directions)])
	}
	snap := g.Snapshot()

	other := NewGame(Config{Size: 3, FourProbability: 0.1}, rand.New(rand.NewPCG(1, 1)), nil)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore error: %v", err)
	}

	if !other.Board().Equal(g.Board()) {
		t.Errorf("restored board:\n%v\nwant\n%v", other.Board(), g.Board())
	}
	if other.Size() != 4 || other.Score() != g.Score() || other.Moves() != g.Moves() {
		t.Errorf("restored size/score/moves = %d/%d/%d", other.Size(), other.Score(), other.Moves())
	}
	if other.RunID() != g.RunID() {
		t.Error("Restore should keep the run ID")
	}
	if other.HistoryLen() != g.HistoryLen() {
		t.Errorf("HistoryLen = %d, want %d", other.HistoryLen(), g.HistoryLen())
	}

	// Undo works through restored history.
	g.Undo()
	other.Undo()
	if !other.Board().Equal(g.Board()) {
		t.Error("undo after restore diverged from the original game")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	g := NewGame(DefaultConfig(), &scriptedRand{}, nil)
	snap := g.Snapshot()
	snap.Board[0][0] = 2048

	if g.Board().At(0, 0) == 2048 {
		t.Error("mutating a snapshot changed the game")
	}
}

func TestRestoreDerivesGameOver(t *testing.T) {
	g := NewGame(DefaultConfig(), &scriptedRand{}, nil)
	err := g.Restore(Snapshot{
		Size: 2,
		Board: [][]int{
			{2, 4},
			{4, 2},
		},
	})
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if g.State() != StateGameOver {
		t.Errorf("State = %s, want game_over", g.State())
	}
	if g.RunID() == "" {
		t.Error("Restore should assign a run ID when the snapshot has none")
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"size too small", Snapshot{Size: 1, Board: [][]int{{2}}}},
		{"size too large", Snapshot{Size: 7}},
		{"wrong row count", Snapshot{Size: 2, Board: [][]int{{2, 0}}}},
		{"ragged row", Snapshot{Size: 2, Board: [][]int{{2, 0}, {0}}}},
		{"not a power of two", Snapshot{Size: 2, Board: [][]int{{3, 0}, {0, 0}}}},
		{"one is not a tile", Snapshot{Size: 2, Board: [][]int{{1, 0}, {0, 0}}}},
		{"negative", Snapshot{Size: 2, Board: [][]int{{-2, 0}, {0, 0}}}},
		{"bad history", Snapshot{Size: 2, Board: [][]int{{2, 0}, {0, 0}}, History: [][][]int{{{2, 0, 0}}}}},
		{"negative moves", Snapshot{Size: 2, Board: [][]int{{2, 0}, {0, 0}}, Moves: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame(DefaultConfig(), &scriptedRand{}, nil)
			before := g.Board()

			err := g.Restore(tt.snap)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("Restore error = %v, want ErrInvalidSnapshot", err)
			}
			if !g.Board().Equal(before) {
				t.Error("failed Restore changed the game")
			}
		})
	}
}
