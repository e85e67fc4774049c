package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

// Model is the Bubble Tea model for a Falldown session: the game plus the
// settings screen layered on top of it.
type Model struct {
	app        *settings.App
	game       *falldown.Game
	scores     *storage.Store
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	settings   *SettingsScreen
	motion     *MotionInput
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	highScore  int
	scoreSaved bool // Whether score has been saved for current game over
	quitting   bool
}

// NewModel creates a session model. scores may be nil when the score
// database is unavailable.
func NewModel(app *settings.App, scores *storage.Store, cfg core.RuntimeConfig, gameCfg config.FalldownConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	m := Model{
		app:        app,
		game:       falldown.New(app, gameCfg),
		scores:     scores,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       keys,
		settings:   NewSettingsScreen(app, keys),
		motion:     NewMotionInput(app.Store),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}

	if scores != nil {
		if best, err := scores.HighScore(); err == nil {
			m.highScore = best
		} else {
			logger.Warn("could not read high score", "error", err)
		}
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(
		tea.SetWindowTitle(m.game.Title()),
		tickCmd(m.config.TickRate),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.motion.Subscribed() {
			m.inputFrame.Tilt = m.motion.Tilt(msg, m.config.ScreenW)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		// Leaving through the settings screen flushes the record
		m.settings.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.settings.IsOpen() {
		m.settings.Handle(action)
		return m, nil
	}

	switch action {
	case core.ActionSettings:
		m.settings.Open()
	case core.ActionLeft, core.ActionRight, core.ActionPause:
		m.inputFrame.Set(action)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The playfield depends on the screen size, so start over
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	// Follow the control mode: read motion only while tilt steering is on
	if m.motion.Pending() {
		cmds = append(cmds, m.motion.Sync())
		if !m.motion.Subscribed() {
			m.inputFrame.Tilt = 0
		}
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tea.Batch(cmds...)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tea.Batch(cmds...)
}

// saveScore records the finished run. Best-effort: the game continues
// regardless.
func (m *Model) saveScore() {
	score := m.gameState.Score
	if score > m.highScore {
		m.highScore = score
	}
	if m.scores == nil || score == 0 {
		return
	}

	control := falldown.ControlName(m.app.Store.Settings())
	if _, err := m.scores.SaveScore(score, control); err != nil {
		m.logger.Warn("could not save score", "score", score, "error", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "score", score, "control", control)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.settings.IsOpen() {
		return m.settings.View(m.config.ScreenW, m.config.ScreenH)
	}

	m.game.Render(m.screen)
	if m.highScore > 0 {
		best := fmt.Sprintf(" Best: %d ", m.highScore)
		m.screen.DrawTextCentered(0, best)
	}
	return RenderScreen(m.screen)
}

// SettingsOpen reports whether the settings screen is shown.
func (m Model) SettingsOpen() bool {
	return m.settings.IsOpen()
}

// Close releases the session: the settings screen is dismissed (flushing
// its record) and the game and motion source stop following settings.
func (m Model) Close() {
	m.settings.Close()
	m.motion.Close()
	m.game.Close()
}

// Run starts the Bubble Tea program for a local session.
func Run(app *settings.App, scores *storage.Store, cfg core.RuntimeConfig, gameCfg config.FalldownConfig, logger *log.Logger) error {
	model := NewModel(app, scores, cfg, gameCfg, logger)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
