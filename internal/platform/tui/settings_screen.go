package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
)

var (
	settingsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	settingsRowStyle   = lipgloss.NewStyle().Padding(0, 1)
	settingsCursor     = lipgloss.NewStyle().Padding(0, 1).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
	settingsOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	settingsOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// SettingsScreen is the modal settings list. It is the window handed to
// the settings lifecycle and the redraw capability handed to toggle rows.
// Rows are rendered from a cache that only changes through RedrawRow.
type SettingsScreen struct {
	app    *settings.App
	rows   []settings.Row
	cursor int
	open   bool
	help   help.Model
	keys   KeyMap
}

// NewSettingsScreen creates a closed settings screen for app.
func NewSettingsScreen(app *settings.App, keys KeyMap) *SettingsScreen {
	return &SettingsScreen{
		app:  app,
		help: help.New(),
		keys: keys,
	}
}

// Name identifies the window in lifecycle logs.
func (s *SettingsScreen) Name() string {
	return "settings"
}

// Open shows the screen: enters menu mode, loads settings, builds the rows.
func (s *SettingsScreen) Open() {
	if s.open {
		return
	}
	s.app.HandleAppear(s)
	s.rows = s.app.Store.DisplaySettings()
	s.cursor = 0
	s.open = true
}

// Close dismisses the screen, flushing settings before leaving menu mode.
func (s *SettingsScreen) Close() {
	if !s.open {
		return
	}
	s.app.HandleUnload(s)
	s.open = false
}

// IsOpen reports whether the screen is shown.
func (s *SettingsScreen) IsOpen() bool {
	return s.open
}

// Cursor returns the highlighted row.
func (s *SettingsScreen) Cursor() int {
	return s.cursor
}

// Rows returns the cached render data.
func (s *SettingsScreen) Rows() []settings.Row {
	return s.rows
}

// RedrawRow refreshes one cached row from the store.
func (s *SettingsScreen) RedrawRow(index int) {
	fresh := s.app.Store.DisplaySettings()
	if index < 0 || index >= len(fresh) || index >= len(s.rows) {
		return
	}
	s.rows[index] = fresh[index]
}

// Handle applies a navigation action. It returns true when the screen closed.
func (s *SettingsScreen) Handle(action core.Action) bool {
	switch action {
	case core.ActionUp:
		if s.cursor > 0 {
			s.cursor--
		}
	case core.ActionDown:
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case core.ActionConfirm:
		s.app.Store.Select(s.cursor, s)
	case core.ActionBack, core.ActionSettings:
		s.Close()
		return true
	}
	return false
}

// View renders the list centered in a width x height area.
func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(settingsTitleStyle.Render("S E T T I N G S"), width))
	b.WriteString("\n\n")

	for i, row := range s.rows {
		state := settingsOffStyle.Render(row.Subtitle)
		if row.On {
			state = settingsOnStyle.Render(row.Subtitle)
		}

		style := settingsRowStyle
		if i == s.cursor {
			style = settingsCursor
		}
		line := style.Render(fmt.Sprintf("%-16s", row.Title)) + " " + state
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	s.help.Width = width
	b.WriteString(centerText(helpStyle.Render(s.help.View(settingsHelp{keys: s.keys})), width))
	b.WriteString("\n")

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, b.String())
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
