package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
)

// MotionInput stands in for the accelerometer: the mouse column relative
// to the screen centre is read as tilt. Mouse motion reporting is only
// enabled while accelerometer control is on.
type MotionInput struct {
	store      *settings.Store
	pending    atomic.Bool
	subscribed bool
	cancel     func()
}

// NewMotionInput creates a motion source that follows the control setting.
// The first Pending call always reports true so the terminal gets synced.
func NewMotionInput(store *settings.Store) *MotionInput {
	m := &MotionInput{store: store}
	m.pending.Store(true)
	m.cancel = store.Subscribe(func(settings.Settings) {
		m.pending.Store(true)
	})
	return m
}

// Pending reports, once, that the control mode changed since the last sync.
func (m *MotionInput) Pending() bool {
	return m.pending.Swap(false)
}

// Sync subscribes to or unsubscribes from mouse motion to match the setting.
func (m *MotionInput) Sync() tea.Cmd {
	if m.store.Settings().AccelerometerControl {
		m.subscribed = true
		return tea.EnableMouseAllMotion
	}
	m.subscribed = false
	return tea.DisableMouse
}

// Subscribed reports whether motion events are currently being read.
func (m *MotionInput) Subscribed() bool {
	return m.subscribed
}

// Tilt converts a mouse position into a reading in [-1, 1].
func (m *MotionInput) Tilt(msg tea.MouseMsg, width int) float64 {
	half := float64(width) / 2
	if half <= 0 {
		return 0
	}
	return core.ClampF((float64(msg.X)-half)/half, -1, 1)
}

// Close stops following the control setting.
func (m *MotionInput) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
