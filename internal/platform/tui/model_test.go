package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, scores *storage.Store) (Model, *settings.App, *storage.Memory) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // Ignore any user config

	backend := storage.NewMemory()
	app := settings.NewApp(settings.NewStore(backend, nil))
	app.Store.InitSettings()

	m := NewModel(app, scores, core.RuntimeConfig{
		ScreenW:  40,
		ScreenH:  20,
		TickRate: 60,
		Seed:     42,
	}, config.DefaultFalldownConfig(), nil)
	m.Init()
	t.Cleanup(m.Close)
	return m, app, backend
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelTabOpensSettings(t *testing.T) {
	m, app, _ := newTestModel(t, nil)

	m, _ = update(t, m, keyTab)

	assert.True(t, m.SettingsOpen())
	assert.True(t, app.Mode.InMenu())
	assert.Contains(t, m.View(), "Accelerometer")
}

func TestModelSettingsVisitPersists(t *testing.T) {
	m, app, backend := newTestModel(t, nil)

	m, _ = update(t, m, keyTab)
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keyEsc)

	assert.False(t, m.SettingsOpen())
	assert.False(t, app.Mode.InMenu())
	assert.True(t, app.Store.Settings().AccelerometerControl)

	data, err := backend.Read(settings.KeyAccelerometerControl)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)
}

func TestModelKeysGoToSettingsWhileOpen(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, _ = update(t, m, keyTab)
	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, runeKey('p'))

	assert.False(t, m.inputFrame.Has(core.ActionRight))
	assert.False(t, m.inputFrame.Has(core.ActionPause))
}

func TestModelQuitClosesSettings(t *testing.T) {
	m, app, _ := newTestModel(t, nil)

	m, _ = update(t, m, keyTab)
	m, cmd := update(t, m, runeKey('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.SettingsOpen())
	assert.False(t, app.Mode.InMenu())
	assert.Empty(t, m.View())
}

func TestModelTickSyncsMotion(t *testing.T) {
	m, app, _ := newTestModel(t, nil)

	// First tick syncs the initial mode: buttons, no motion
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.False(t, m.motion.Subscribed())

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 5})
	assert.Zero(t, m.inputFrame.Tilt, "motion ignored while unsubscribed")

	app.Store.AccelerometerControlCallback(settings.RowAccelerometerControl, nil)
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.True(t, m.motion.Subscribed())

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 5})
	assert.Equal(t, -1.0, m.inputFrame.Tilt)

	app.Store.AccelerometerControlCallback(settings.RowAccelerometerControl, nil)
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.False(t, m.motion.Subscribed())
	assert.Zero(t, m.inputFrame.Tilt)
}

func TestModelButtonInputReachesFrame(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, _ = update(t, m, runeKey('a'))
	assert.True(t, m.inputFrame.Has(core.ActionLeft))

	m, _ = update(t, m, TickMsg(time.Now()))
	assert.False(t, m.inputFrame.Has(core.ActionLeft), "frame cleared after tick")
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m, _ = update(t, m, runeKey('r'))
	assert.False(t, m.inputFrame.Has(core.ActionRestart))

	m.gameState.GameOver = true
	m, _ = update(t, m, runeKey('r'))
	assert.True(t, m.inputFrame.Has(core.ActionRestart))
}

func TestModelSavesScoreWithControl(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "falldown.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, app, _ := newTestModel(t, db)
	app.Store.AccelerometerControlCallback(settings.RowAccelerometerControl, nil)

	m.gameState = core.GameState{Score: 7, GameOver: true}
	m.saveScore()

	entries, err := db.TopScores(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].Score)
	assert.Equal(t, "tilt", entries[0].Control)
	assert.Equal(t, 7, m.highScore)
}

func TestModelZeroScoreNotSaved(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "falldown.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, _, _ := newTestModel(t, db)
	m.gameState = core.GameState{GameOver: true}
	m.saveScore()

	entries, err := db.TopScores(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestModelViewShowsGame(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	view := m.View()

	assert.Contains(t, view, "Score: 0")
	assert.Contains(t, view, "Tab: settings")
}
