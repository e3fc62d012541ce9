package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// footerHeight is the number of rows reserved below the game screen.
const footerHeight = 2

// Options configures a game model.
type Options struct {
	Store  *storage.Store // May be nil; scores and saves are then skipped
	Logger *log.Logger
	Config core.RuntimeConfig
	Resume bool // Load the saved game for this variant if one exists

	// Owner keys saved games; empty means storage.LocalOwner.
	Owner string

	// Embedded keeps the program running on Back so a parent model can
	// switch views. Standalone programs exit on Back.
	Embedded bool
}

// runIdentifier is implemented by games that expose their run ID.
type runIdentifier interface {
	RunID() string
}

// resizer is implemented by games that can adapt to a new screen size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model for playing a registered game.
// Each key press is one Step; there is no tick loop.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	gameState  core.GameState
	status     string
	owner      string
	resume     bool
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, opts Options) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	cfg := opts.Config
	owner := opts.Owner
	if owner == "" {
		owner = storage.LocalOwner
	}
	if opts.Store != nil {
		if scored, ok := game.(registry.Scored); ok {
			scored.SetScoreSink(opts.Store.Sink(game.ID()))
		}
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		store:      opts.Store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		owner:      owner,
		resume:     opts.Resume,
		embedded:   opts.Embedded,
	}
	m.help.Width = cfg.ScreenW
	m.start()
	return m
}

// start resets the game and loads a saved run when asked to.
func (m *GameModel) start() {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)

	if m.resume {
		m.loadSaved()
	}
	m.gameState = m.game.State()
}

func (m *GameModel) loadSaved() {
	saveable, ok := m.game.(registry.Saveable)
	if !ok || m.store == nil {
		return
	}

	// Taking the save keeps a second session from resuming the same run.
	data, err := m.store.TakeSavedGame(m.owner, m.game.ID())
	if errors.Is(err, storage.ErrNoSavedGame) {
		m.status = "No saved game, starting fresh"
		return
	}
	if err == nil {
		err = saveable.Load(data)
	}
	if err != nil {
		m.logger.Warn("could not resume saved game", "error", err)
		m.status = "Saved game unreadable, starting fresh"
		return
	}
	m.status = "Resumed saved game"
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey maps a key to an action and applies it.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.persist()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.persist()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(core.FrameOf(action))
	m.gameState = result.State
	if result.Changed {
		m.status = ""
	}

	if result.Err != nil {
		m.logger.Error("could not record score", "error", result.Err)
		m.status = "Score could not be saved"
	} else if m.gameState.GameOver && !wasOver {
		m.onGameOver()
	}

	return m, nil
}

// onGameOver reports the run's leaderboard placement and drops its save.
func (m *GameModel) onGameOver() {
	m.logger.Info("game over", "score", m.gameState.Score, "max_tile", m.gameState.MaxTile, "moves", m.gameState.Moves)
	if m.store == nil {
		return
	}

	if err := m.store.DeleteSavedGame(m.owner, m.game.ID()); err != nil {
		m.logger.Warn("could not delete saved game", "error", err)
	}

	rid, ok := m.game.(runIdentifier)
	if !ok {
		return
	}
	top, err := m.store.TopScores(m.game.ID(), 0)
	if err != nil {
		m.logger.Warn("could not read leaderboard", "error", err)
		return
	}
	for i, e := range top {
		if e.RunID == rid.RunID() {
			m.status = fmt.Sprintf("New high score! Rank #%d", i+1)
			return
		}
	}
}

// persist saves an unfinished run so it can be resumed later.
func (m *GameModel) persist() {
	saveable, ok := m.game.(registry.Saveable)
	if !ok || m.store == nil || m.gameState.GameOver || m.gameState.Moves == 0 {
		return
	}

	data, err := saveable.Save()
	if err == nil {
		err = m.store.SaveGame(m.owner, m.game.ID(), data)
	}
	if err != nil {
		m.logger.Error("could not save game", "error", err)
		return
	}
	m.logger.Debug("saved game", "moves", m.gameState.Moves)
}

// handleResize adapts the screen without restarting the game.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-footerHeight, 1)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, h)
	}
	m.gameState = m.game.State()
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "Screenshot saved to " + path
}

// draw renders the game into a cleared screen buffer.
func (m GameModel) draw() {
	m.screen.Clear()
	m.game.Render(m.screen)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "\n" + footer
	} else {
		footer = "\n" + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the latest game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, opts Options) error {
	_, err := RunModel(game, opts)
	return err
}

// RunModel is like Run but returns the final model so callers can tell
// Back from Quit.
func RunModel(game registry.Game, opts Options) (GameModel, error) {
	opts.Embedded = false
	model := NewGameModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(GameModel); ok {
		return m, nil
	}
	return model, nil
}
