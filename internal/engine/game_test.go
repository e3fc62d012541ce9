package engine

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// recordingSink collects reported scores.
type recordingSink struct {
	scores []FinalScore
	err    error
}

func (s *recordingSink) RecordScore(f FinalScore) error {
	s.scores = append(s.scores, f)
	return s.err
}

// nearlyOver moving right leaves one empty cell; a spawned 4 ends the game.
var nearlyOver = [][]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{8, 16, 8, 0},
}

func newTestGame(t *testing.T, rng Rand, sink ScoreSink, rows [][]int) *Game {
	t.Helper()
	g := NewGame(DefaultConfig(), rng, sink)
	if rows != nil {
		g.adopt(FromRows(rows))
	}
	return g
}

func TestNewGameStartsWithTwoTiles(t *testing.T) {
	g := NewGame(DefaultConfig(), rand.New(rand.NewPCG(1, 1)), nil)

	if g.State() != StatePlaying {
		t.Errorf("State = %s, want playing", g.State())
	}
	if got := len(g.Board().EmptyCells()); got != 14 {
		t.Errorf("empty cells = %d, want 14", got)
	}
	if g.Score() != Score(g.Board()) {
		t.Errorf("Score = %d, want sum of board %d", g.Score(), Score(g.Board()))
	}
	if g.CanUndo() {
		t.Error("new game should have no history")
	}
	if g.RunID() == "" {
		t.Error("new game should have a run ID")
	}
}

func TestNewGameZeroSizeUsesDefault(t *testing.T) {
	g := NewGame(Config{FourProbability: 0.1}, &scriptedRand{}, nil)
	if g.Size() != DefaultSize {
		t.Errorf("Size = %d, want %d", g.Size(), DefaultSize)
	}
}

func TestMoveScenario(t *testing.T) {
	rows := [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	tests := []struct {
		name  string
		roll  float64
		score int
	}{
		{"spawns 2", 0.5, 6},
		{"spawns 4", 0.05, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{}
			g := newTestGame(t, rng, nil, rows)
			rng.ints = []int{0}
			rng.floats = []float64{tt.roll}

			pre := ApplyMove(g.Board(), DirLeft)
			want := FromRows([][]int{
				{4, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			})
			if !pre.Board.Equal(want) || !pre.Changed {
				t.Fatalf("pre-spawn board:\n%v\nwant\n%v", pre.Board, want)
			}

			out, err := g.Move(DirLeft)
			if err != nil {
				t.Fatalf("Move error: %v", err)
			}
			if !out.Changed || out.Gained != 4 {
				t.Errorf("Outcome = %+v, want changed with gain 4", out)
			}
			if g.Score() != tt.score {
				t.Errorf("Score = %d, want %d", g.Score(), tt.score)
			}
			// first empty cell after the merge is (0,1)
			if g.Board().At(0, 0) != 4 || g.Board().At(0, 1) == 0 {
				t.Errorf("unexpected board after move:\n%v", g.Board())
			}
		})
	}
}

func TestNoOpMoveLeavesHistoryAlone(t *testing.T) {
	rows := [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	g := newTestGame(t, &scriptedRand{}, nil, rows)
	before := g.Board()

	out, err := g.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if out.Changed {
		t.Error("left on a left-aligned board should not change it")
	}
	if g.CanUndo() {
		t.Error("no-op move should not push history")
	}
	if !g.Board().Equal(before) {
		t.Error("no-op move should not spawn a tile")
	}
	if g.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", g.Moves())
	}
}

func TestUndoRestoresExactBoard(t *testing.T) {
	rows := [][]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{8, 0, 8, 0},
		{0, 0, 0, 2},
	}
	g := newTestGame(t, rand.New(rand.NewPCG(5, 5)), nil, rows)
	original := g.Board()

	if _, err := g.Move(DirLeft); err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if g.Board().Equal(original) {
		t.Fatal("move should have changed the board")
	}

	if !g.Undo() {
		t.Fatal("Undo should succeed after a move")
	}
	if !g.Board().Equal(FromRows(rows)) {
		t.Errorf("Undo board:\n%v\nwant\n%v", g.Board(), FromRows(rows))
	}
	if g.Score() != Score(FromRows(rows)) {
		t.Errorf("Score after undo = %d, want %d", g.Score(), Score(FromRows(rows)))
	}
	if g.CanUndo() {
		t.Error("history should be empty after undoing the only move")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	g := NewGame(DefaultConfig(), &scriptedRand{}, nil)
	before := g.Board()

	if g.Undo() {
		t.Error("Undo with empty history should report false")
	}
	if !g.Board().Equal(before) {
		t.Error("Undo with empty history should not change the board")
	}
}

func TestHistoryIsNotAliased(t *testing.T) {
	g := newTestGame(t, rand.New(rand.NewPCG(8, 8)), nil, [][]int{
		{2, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(DirLeft)
	afterOne := g.Board()
	rows := afterOne.Rows()

	if out, _ := g.Move(DirDown); !out.Changed {
		t.Fatalf("down should move the merged tile:\n%v", afterOne)
	}
	if !afterOne.Equal(FromRows(rows)) {
		t.Error("a later move changed an earlier board")
	}

	g.Undo()
	if !g.Board().Equal(FromRows(rows)) {
		t.Errorf("Undo returned\n%v\nwant\n%v", g.Board(), FromRows(rows))
	}
}

func TestGameOverTransitionReportsOnce(t *testing.T) {
	rng := &scriptedRand{}
	sink := &recordingSink{}
	g := newTestGame(t, rng, sink, nearlyOver)
	rng.floats = []float64{0.05}

	out, err := g.Move(DirRight)
	if err != nil {
		t.Fatalf("Move error: %v", err)
	}
	if !out.GameOver || g.State() != StateGameOver {
		t.Fatalf("expected game over, board:\n%v", g.Board())
	}
	if len(sink.scores) != 1 {
		t.Fatalf("sink called %d times, want 1", len(sink.scores))
	}

	final := sink.scores[0]
	if final.Score != 72 || final.Score != g.Score() {
		t.Errorf("reported score = %d, want 72", final.Score)
	}
	if final.RunID != g.RunID() || final.Size != 4 || final.Moves != 1 || final.MaxTile != 16 {
		t.Errorf("unexpected final score %+v", final)
	}

	// Further moves are no-ops and do not report again.
	before := g.Board()
	for _, dir := range Directions {
		if out, _ := g.Move(dir); out.Changed {
			t.Errorf("%s changed a finished game", dir)
		}
	}
	if !g.Board().Equal(before) {
		t.Error("moves after game over changed the board")
	}
	if len(sink.scores) != 1 {
		t.Errorf("sink called %d times after extra moves, want 1", len(sink.scores))
	}
}

func TestUndoLeavesGameOver(t *testing.T) {
	rng := &scriptedRand{}
	sink := &recordingSink{}
	g := newTestGame(t, rng, sink, nearlyOver)
	rng.floats = []float64{0.05, 0.05}

	g.Move(DirRight)
	if !g.IsGameOver() {
		t.Fatal("expected game over")
	}

	if !g.Undo() {
		t.Fatal("Undo should succeed")
	}
	if g.State() != StatePlaying {
		t.Errorf("State after undo = %s, want playing", g.State())
	}
	if !g.Board().Equal(FromRows(nearlyOver)) {
		t.Errorf("Undo board:\n%v", g.Board())
	}

	// Reaching game over again is a new transition.
	g.Move(DirRight)
	if !g.IsGameOver() {
		t.Fatal("expected game over again")
	}
	if len(sink.scores) != 2 {
		t.Errorf("sink called %d times, want 2", len(sink.scores))
	}
	if sink.scores[0].RunID != sink.scores[1].RunID {
		t.Error("undo should not start a new run")
	}
}

func TestSinkErrorIsReturned(t *testing.T) {
	rng := &scriptedRand{}
	boom := errors.New("disk full")
	g := newTestGame(t, rng, &recordingSink{err: boom}, nearlyOver)
	rng.floats = []float64{0.05}

	out, err := g.Move(DirRight)
	if !errors.Is(err, boom) {
		t.Fatalf("Move error = %v, want %v", err, boom)
	}
	if !out.GameOver || !g.IsGameOver() {
		t.Error("move should still be applied when the sink fails")
	}
}

func TestRestart(t *testing.T) {
	rng := &scriptedRand{}
	g := newTestGame(t, rng, nil, nearlyOver)
	rng.floats = []float64{0.05}
	g.Move(DirRight)
	oldRun := g.RunID()

	g.Restart()

	if g.State() != StatePlaying {
		t.Errorf("State = %s, want playing", g.State())
	}
	if g.CanUndo() {
		t.Error("Restart should clear history")
	}
	if g.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", g.Moves())
	}
	if got := len(g.Board().EmptyCells()); got != 14 {
		t.Errorf("empty cells after restart = %d, want 14", got)
	}
	if g.RunID() == oldRun {
		t.Error("Restart should start a new run")
	}
}

func TestHistoryLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryLimit = 2
	g := NewGame(cfg, rand.New(rand.NewPCG(4, 4)), nil)

	moves := 0
	for i := 0; moves < 5 && i < 100; i++ {
		if out, _ := g.Move(Directions[i%len(Directions)]); out.Changed {
			moves++
		}
	}

	if g.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2", g.HistoryLen())
	}
	if !g.Undo() || !g.Undo() {
		t.Fatal("two undos should succeed")
	}
	if g.Undo() {
		t.Error("third undo should fail with a limit of 2")
	}
}

func TestDeterministicGames(t *testing.T) {
	play := func() Board {
		g := NewGame(DefaultConfig(), rand.New(rand.NewPCG(99, 1)), nil)
		for i := range 50 {
			g.Move(Directions[i%len(Directions)])
		}
		return g.Board()
	}

	a, b := play(), play()
	if !a.Equal(b) {
		t.Errorf("same seed should produce the same game:\n%v\nvs\n%v", a, b)
	}
}
