package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	cases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('k'), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{runeKey('j'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionSettings},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, keys.Action(tc.msg), "key %q", tc.msg.String())
	}
}

func TestSettingsHelpBindings(t *testing.T) {
	h := settingsHelp{keys: DefaultKeyMap()}

	assert.NotEmpty(t, h.ShortHelp())
	assert.Len(t, h.FullHelp(), 2)
}

func TestMotionTilt(t *testing.T) {
	m := NewMotionInput(settings.NewStore(storage.NewMemory(), nil))
	defer m.Close()

	assert.Equal(t, -1.0, m.Tilt(tea.MouseMsg{X: 0}, 40))
	assert.Equal(t, 0.0, m.Tilt(tea.MouseMsg{X: 20}, 40))
	assert.Equal(t, 0.5, m.Tilt(tea.MouseMsg{X: 30}, 40))
	assert.Equal(t, 1.0, m.Tilt(tea.MouseMsg{X: 80}, 40))
	assert.Equal(t, 0.0, m.Tilt(tea.MouseMsg{X: 5}, 0))
}

func TestMotionFollowsControlSetting(t *testing.T) {
	store := settings.NewStore(storage.NewMemory(), nil)
	store.InitSettings()
	m := NewMotionInput(store)
	defer m.Close()

	assert.True(t, m.Pending(), "first sync is always pending")
	assert.False(t, m.Pending())

	cmd := m.Sync()
	assert.IsType(t, tea.DisableMouse(), cmd())
	assert.False(t, m.Subscribed())

	store.AccelerometerControlCallback(settings.RowAccelerometerControl, nil)
	assert.True(t, m.Pending())

	cmd = m.Sync()
	assert.IsType(t, tea.EnableMouseAllMotion(), cmd())
	assert.True(t, m.Subscribed())
}

func TestMotionCloseStopsFollowing(t *testing.T) {
	store := settings.NewStore(storage.NewMemory(), nil)
	store.InitSettings()
	m := NewMotionInput(store)
	m.Pending()

	m.Close()
	store.AccelerometerControlCallback(settings.RowAccelerometerControl, nil)

	assert.False(t, m.Pending())
}
