package t2048

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// WinTile is the tile value that triggers the "2048 reached" banner.
const WinTile = 2048

// Game implements registry.Game on top of engine.Game.
type Game struct {
	variant Variant
	eng     *engine.Game
	sink    engine.ScoreSink

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused     bool
	tooSmall   bool
	won        bool // WinTile reached during the current run
	showBanner bool // Banner stays up until the next accepted move
	runID      string
}

// New creates a game for the given variant. Call Reset before use.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// SetScoreSink sets where finished runs are reported.
// It may be called before or after Reset.
func (g *Game) SetScoreSink(sink engine.ScoreSink) {
	g.sink = sink
}

// forwardSink passes finished runs to whatever sink the game holds at the time.
type forwardSink struct{ g *Game }

func (f forwardSink) RecordScore(s engine.FinalScore) error {
	if f.g.sink == nil {
		return nil
	}
	return f.g.sink.RecordScore(s)
}

// Reset starts a fresh run with the given configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	size := g.variant.Size
	if size == 0 {
		size = cfg.Size
	}
	if size == 0 {
		size = engine.DefaultSize
	}

	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g.eng = engine.NewGame(engine.Config{
		Size:            size,
		FourProbability: cfg.FourProbability,
		HistoryLimit:    cfg.HistoryLimit,
	}, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), forwardSink{g})

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.syncRun()
	g.checkScreenSize()
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// syncRun clears per-run flags when the engine has started a new run.
func (g *Game) syncRun() {
	if g.eng.RunID() == g.runID {
		return
	}
	g.runID = g.eng.RunID()
	g.won = engine.MaxTile(g.eng.Board()) >= WinTile
	g.showBanner = false
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.eng.Size())
	minW := max(boardW, hudMinWidth)
	minH := boardH + hudHeight + 1
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.eng.Restart()
		g.syncRun()
		return core.StepResult{State: g.State(), Changed: true}
	}

	if in.Has(core.ActionUndo) {
		changed := g.eng.Undo()
		if changed {
			g.showBanner = false
		}
		return core.StepResult{State: g.State(), Changed: changed}
	}

	dir, ok := directionOf(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	out, err := g.eng.Move(dir)
	if out.Changed {
		g.showBanner = false
		if !g.won && engine.MaxTile(g.eng.Board()) >= WinTile {
			g.won = true
			g.showBanner = true
		}
	}

	return core.StepResult{State: g.State(), Changed: out.Changed, Err: err}
}

// directionOf maps the first movement action in a frame to a direction.
func directionOf(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// RunID returns the identifier of the current run.
func (g *Game) RunID() string {
	if g.eng == nil {
		return ""
	}
	return g.eng.RunID()
}

// Engine exposes the underlying engine game.
func (g *Game) Engine() *engine.Game {
	return g.eng
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		MaxTile:  engine.MaxTile(g.eng.Board()),
		Moves:    g.eng.Moves(),
		GameOver: g.eng.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
		CanUndo:  g.eng.CanUndo(),
		Won:      g.won,
	}
}
