package settings

import "sync/atomic"

// Window is the screen handed to the lifecycle handlers.
type Window interface {
	Name() string
}

// Mode holds the in_menu flag: true while the settings screen is open.
// Gameplay reads it to suppress input and physics.
type Mode struct {
	inMenu atomic.Bool
}

// InMenu reports whether the settings screen is currently shown.
func (m *Mode) InMenu() bool {
	return m.inMenu.Load()
}

// App is the context object passed to window, menu and gameplay code.
// It replaces process globals: one App per screen owner, sharing a Store.
type App struct {
	Store *Store
	Mode  *Mode
}

// NewApp creates an application context around store.
func NewApp(store *Store) *App {
	return &App{
		Store: store,
		Mode:  &Mode{},
	}
}

// HandleAppear is called when the settings window is shown.
// It enters menu mode and loads the persisted settings.
func (a *App) HandleAppear(w Window) {
	a.Mode.inMenu.Store(true)
	a.Store.InitSettings()
	a.Store.logger.Debug("settings window appeared", "window", windowName(w))
}

// HandleUnload is called when the settings window is dismissed.
// Settings are flushed before menu mode ends so gameplay never races a save.
func (a *App) HandleUnload(w Window) {
	a.Store.DeinitSettings()
	a.Mode.inMenu.Store(false)
	a.Store.logger.Debug("settings window unloaded", "window", windowName(w))
}

// Close flushes the settings at process teardown.
func (a *App) Close() {
	if a.Store.Initialized() {
		a.Store.DeinitSettings()
	}
}

func windowName(w Window) string {
	if w == nil {
		return ""
	}
	return w.Name()
}
