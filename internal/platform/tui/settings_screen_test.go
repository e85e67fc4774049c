package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

func newTestScreen(t *testing.T) (*SettingsScreen, *settings.App, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	app := settings.NewApp(settings.NewStore(backend, nil))
	return NewSettingsScreen(app, DefaultKeyMap()), app, backend
}

func TestSettingsScreenOpenEntersMenu(t *testing.T) {
	s, app, _ := newTestScreen(t)

	assert.False(t, s.IsOpen())
	s.Open()

	assert.True(t, s.IsOpen())
	assert.True(t, app.Mode.InMenu())
	assert.True(t, app.Store.Initialized())
	require.Len(t, s.Rows(), settings.RowCount())
	assert.Equal(t, "Off", s.Rows()[0].Subtitle)
	assert.Equal(t, "settings", s.Name())
}

func TestSettingsScreenConfirmTogglesAndRedraws(t *testing.T) {
	s, app, backend := newTestScreen(t)
	s.Open()

	closed := s.Handle(core.ActionConfirm)

	assert.False(t, closed)
	assert.True(t, app.Store.Settings().AccelerometerControl)
	assert.Equal(t, "On", s.Rows()[0].Subtitle)
	assert.True(t, s.Rows()[0].On)

	data, err := backend.Read(settings.KeyAccelerometerControl)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)
}

func TestSettingsScreenBackCloses(t *testing.T) {
	for _, action := range []core.Action{core.ActionBack, core.ActionSettings} {
		t.Run(action.String(), func(t *testing.T) {
			s, app, _ := newTestScreen(t)
			s.Open()

			assert.True(t, s.Handle(action))
			assert.False(t, s.IsOpen())
			assert.False(t, app.Mode.InMenu())
		})
	}
}

func TestSettingsScreenCursorStaysInRange(t *testing.T) {
	s, _, _ := newTestScreen(t)
	s.Open()

	s.Handle(core.ActionUp)
	assert.Equal(t, 0, s.Cursor())

	for i := 0; i < settings.RowCount()+2; i++ {
		s.Handle(core.ActionDown)
	}
	assert.Equal(t, settings.RowCount()-1, s.Cursor())
}

func TestSettingsScreenCloseWhenClosedIsNoop(t *testing.T) {
	s, app, backend := newTestScreen(t)

	s.Close()

	assert.False(t, app.Store.Initialized())
	_, err := backend.Read(settings.KeyAccelerometerControl)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSettingsScreenRedrawIgnoresBadIndex(t *testing.T) {
	s, _, _ := newTestScreen(t)
	s.Open()
	before := append([]settings.Row(nil), s.Rows()...)

	assert.NotPanics(t, func() {
		s.RedrawRow(-1)
		s.RedrawRow(settings.RowCount())
	})
	assert.Equal(t, before, s.Rows())
}

func TestSettingsScreenView(t *testing.T) {
	s, _, _ := newTestScreen(t)
	s.Open()

	view := s.View(60, 20)

	assert.Contains(t, view, "S E T T I N G S")
	assert.Contains(t, view, "Accelerometer")
	assert.Contains(t, view, "Off")

	s.Handle(core.ActionConfirm)
	assert.Contains(t, s.View(60, 20), "On")
}
